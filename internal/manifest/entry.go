package manifest

// Role says how a file takes part in the project.
type Role int

const (
	Ignored Role = iota
	CompileSource
	HeaderInterface
	BuildScript
)

func (r Role) String() string {
	switch r {
	case CompileSource:
		return "compile"
	case HeaderInterface:
		return "header"
	case BuildScript:
		return "build-script"
	default:
		return "ignored"
	}
}

// ItemType is the MSBuild item name used for the role.
func (r Role) ItemType() string {
	switch r {
	case CompileSource:
		return "ClCompile"
	case HeaderInterface:
		return "ClInclude"
	case BuildScript:
		return "None"
	default:
		return ""
	}
}

// RawEntry is one discovered file before classification.
type RawEntry struct {
	AbsolutePath string // only used by discovery, never rendered
	RelativePath string
}

// FileEntry is a classified file.
type FileEntry struct {
	AbsolutePath string
	RelativePath string
	Role         Role
	GroupKey     string // directory part of RelativePath, "" at the root
}

// Included reports whether the entry is rendered at all.
func (e FileEntry) Included() bool {
	return e.Role != Ignored
}

// Group is a directory shown as a filter in the IDE.
type Group struct {
	Key        string
	Identifier string
}
