package manifest

import (
	"sort"
	"strings"

	"github.com/google/uuid"
)

var (
	groupNamespace   = uuid.MustParse("8a3c5f2e-6d1b-5e4a-9c7f-2b1d0e4f6a93")
	projectNamespace = uuid.MustParse("4e7b9d10-3a2c-5f8e-b6d4-91c0a8e5f273")
)

// DeriveGroups returns one group per distinct non-empty group key of the
// included entries, sorted by key.
func DeriveGroups(entries []FileEntry) ([]Group, error) {
	keys := make(map[string]struct{})
	for _, e := range entries {
		if e.Included() && e.GroupKey != "" {
			keys[e.GroupKey] = struct{}{}
		}
	}

	sorted := make([]string, 0, len(keys))
	for k := range keys {
		sorted = append(sorted, k)
	}
	sort.Strings(sorted)

	groups := make([]Group, 0, len(sorted))
	owners := make(map[string]string, len(sorted))
	for _, key := range sorted {
		id := GroupIdentifier(key)
		if other, ok := owners[id]; ok {
			return nil, &InconsistentGroupingError{
				Key:    key,
				Reason: "identifier " + id + " already used by group " + other,
			}
		}
		owners[id] = key
		groups = append(groups, Group{Key: key, Identifier: id})
	}
	return groups, nil
}

// GroupIdentifier is the filter UniqueIdentifier for a group key.
func GroupIdentifier(key string) string {
	return braced(uuid.NewSHA1(groupNamespace, []byte(key)))
}

// ProjectIdentifier is the ProjectGuid for a project name.
func ProjectIdentifier(name string) string {
	return braced(uuid.NewSHA1(projectNamespace, []byte(name)))
}

// braced formats like Visual Studio does: {UPPERCASE-HEX}.
func braced(id uuid.UUID) string {
	return "{" + strings.ToUpper(id.String()) + "}"
}
