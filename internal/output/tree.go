package output

import (
	"github.com/disiqueira/gotree/v3"
	"github.com/simonhull/firebird-suite/wren/internal/manifest"
)

// GroupTree renders how the IDE will show the project: one node per
// filter with its files, root-level files directly under the project.
func GroupTree(project string, entries []manifest.FileEntry, groups []manifest.Group) string {
	root := gotree.New(project)

	nodes := make(map[string]gotree.Tree, len(groups))
	for _, g := range groups {
		nodes[g.Key] = root.Add(g.Key + "/")
	}

	for _, e := range entries {
		if !e.Included() {
			continue
		}
		label := e.RelativePath + " [" + e.Role.String() + "]"
		if node, ok := nodes[e.GroupKey]; ok {
			node.Add(label)
			continue
		}
		root.Add(label)
	}

	return root.Print()
}
