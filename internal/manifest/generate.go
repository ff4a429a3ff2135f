package manifest

// Result holds both rendered documents and the model they came from.
type Result struct {
	Entries  []FileEntry
	Groups   []Group
	Manifest []byte
	Filters  []byte
}

// Files returns the number of entries that made it into the project.
func (r *Result) Files() int {
	n := 0
	for _, e := range r.Entries {
		if e.Included() {
			n++
		}
	}
	return n
}

// Generate classifies raw, rejects duplicates, derives groups and renders
// both documents.
func Generate(raw []RawEntry, settings Settings) (*Result, error) {
	renderer, err := NewRenderer(settings)
	if err != nil {
		return nil, err
	}

	entries := Classify(raw)
	if err := CheckDuplicates(entries); err != nil {
		return nil, err
	}

	groups, err := DeriveGroups(entries)
	if err != nil {
		return nil, err
	}

	project, err := renderer.RenderManifest(entries)
	if err != nil {
		return nil, err
	}
	filters, err := renderer.RenderGroupDocument(entries, groups)
	if err != nil {
		return nil, err
	}

	return &Result{Entries: entries, Groups: groups, Manifest: project, Filters: filters}, nil
}
