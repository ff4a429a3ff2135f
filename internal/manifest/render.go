package manifest

import (
	"fmt"
	"strings"

	"github.com/simonhull/firebird-suite/wren/internal/generator"
	"github.com/simonhull/firebird-suite/wren/internal/xmldoc"
)

const msbuildNamespace = "http://schemas.microsoft.com/developer/msbuild/2003"

// itemOrder is the order item types appear in both documents.
var itemOrder = []Role{CompileSource, HeaderInterface, BuildScript}

// Renderer produces the .vcxproj and .vcxproj.filters documents.
type Renderer struct {
	settings  Settings
	templates *generator.Renderer
}

// NewRenderer validates settings and returns a renderer for them.
func NewRenderer(settings Settings) (*Renderer, error) {
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	return &Renderer{settings: settings, templates: generator.NewRenderer()}, nil
}

// RenderManifest renders the project document.
func (r *Renderer) RenderManifest(entries []FileEntry) ([]byte, error) {
	s := r.settings
	root := xmldoc.NewElement("Project",
		xmldoc.A("DefaultTargets", "Build"),
		xmldoc.A("ToolsVersion", "15.0"),
		xmldoc.A("xmlns", msbuildNamespace),
	)

	configs := root.Add("ItemGroup", xmldoc.A("Label", "ProjectConfigurations"))
	for _, c := range s.Configurations {
		configs.Add("ProjectConfiguration", xmldoc.A("Include", c.Name+"|"+s.Platform)).
			AddText("Configuration", c.Name).
			AddText("Platform", s.Platform)
	}

	root.Add("PropertyGroup", xmldoc.A("Label", "Globals")).
		AddText("ProjectGuid", s.GUID).
		AddText("RootNamespace", s.RootNamespace).
		AddText("Keyword", "MakeFileProj").
		AddText("Platform", s.Platform).
		AddText("ProjectName", s.Name)

	root.Add("Import", xmldoc.A("Project", `$(VCTargetsPath)\Microsoft.Cpp.Default.props`))

	makefile := primaryMakefile(entries)
	for _, c := range s.Configurations {
		group, err := r.configurationGroup(c, makefile)
		if err != nil {
			return nil, err
		}
		root.Append(group)
	}

	root.Add("Import", xmldoc.A("Project", `$(VCTargetsPath)\Microsoft.Cpp.targets`))

	root.Append(itemGroup(entries, nil))

	root.Add("Target",
		xmldoc.A("Name", "Build"),
		xmldoc.A("Inputs", "@(ClCompile)"),
		xmldoc.A("Outputs", "$(OutDir)$(TargetName).exe"),
	).Add("Exec", xmldoc.A("Command", "$(BuildCommandLine)"))
	root.Add("Target", xmldoc.A("Name", "Clean")).
		Add("Exec", xmldoc.A("Command", "$(CleanCommandLine)"))
	root.Add("Target", xmldoc.A("Name", "Rebuild"), xmldoc.A("DependsOnTargets", "Clean;Build")).
		Add("Exec", xmldoc.A("Command", "$(RebuildCommandLine)"))

	return xmldoc.New(root).Bytes(), nil
}

// RenderGroupDocument renders the filters document. Every included entry
// with a group key must have its group declared in groups.
func (r *Renderer) RenderGroupDocument(entries []FileEntry, groups []Group) ([]byte, error) {
	declared := make(map[string]string, len(groups))
	owners := make(map[string]string, len(groups))
	for _, g := range groups {
		if _, ok := declared[g.Key]; ok {
			return nil, &InconsistentGroupingError{Key: g.Key, Reason: "group declared twice"}
		}
		if other, ok := owners[g.Identifier]; ok {
			return nil, &InconsistentGroupingError{Key: g.Key, Reason: "identifier shared with group " + other}
		}
		declared[g.Key] = g.Identifier
		owners[g.Identifier] = g.Key
	}

	for _, e := range entries {
		if !e.Included() || e.GroupKey == "" {
			continue
		}
		if _, ok := declared[e.GroupKey]; !ok {
			return nil, &InconsistentGroupingError{Key: e.GroupKey, Path: e.RelativePath, Reason: "group not declared"}
		}
	}

	root := xmldoc.NewElement("Project",
		xmldoc.A("ToolsVersion", "4.0"),
		xmldoc.A("xmlns", msbuildNamespace),
	)

	if len(groups) > 0 {
		filters := root.Add("ItemGroup")
		for _, g := range groups {
			filters.Add("Filter", xmldoc.A("Include", g.Key)).
				AddText("UniqueIdentifier", g.Identifier)
		}
	}

	root.Append(itemGroup(entries, func(e FileEntry, item *xmldoc.Element) bool {
		if e.GroupKey == "" {
			return false
		}
		item.AddText("Filter", e.GroupKey)
		return true
	}))

	return xmldoc.New(root).Bytes(), nil
}

func (r *Renderer) configurationGroup(c Configuration, makefile string) (*xmldoc.Element, error) {
	s := r.settings
	data := CommandData{
		ProjectName:   s.Name,
		Makefile:      makefile,
		Configuration: c.Name,
		Platform:      s.Platform,
	}

	build, err := r.command("build", s.BuildCommand, data)
	if err != nil {
		return nil, err
	}
	clean, err := r.command("clean", s.CleanCommand, data)
	if err != nil {
		return nil, err
	}
	rebuild, err := r.command("rebuild", s.RebuildCommand, data)
	if err != nil {
		return nil, err
	}

	group := xmldoc.NewElement("PropertyGroup",
		xmldoc.A("Condition", fmt.Sprintf("'$(Configuration)|$(Platform)'=='%s|%s'", c.Name, s.Platform)),
		xmldoc.A("Label", "Configuration"),
	)
	group.AddText("ConfigurationType", "Makefile")
	if s.Toolset != "" {
		group.AddText("PlatformToolset", s.Toolset)
	}
	group.AddText("BuildCommandLine", build).
		AddText("CleanCommandLine", clean).
		AddText("RebuildCommandLine", rebuild)
	if c.OutDir != "" {
		group.AddText("OutDir", c.OutDir)
	}
	if s.IntDir != "" {
		group.AddText("IntDir", s.IntDir)
	}
	if s.TargetName != "" {
		group.AddText("TargetName", s.TargetName)
	}
	group.AddText("UseDebugLibraries", fmt.Sprintf("%t", c.Debug))
	return group, nil
}

func (r *Renderer) command(name, tmpl string, data CommandData) (string, error) {
	out, err := r.templates.RenderString(name+"_command", tmpl, data)
	if err != nil {
		return "", fmt.Errorf("%s command: %w", name, err)
	}
	return strings.TrimSpace(string(out)), nil
}

// itemGroup lists included entries by item type, keeping input order within
// each type. decorate may add children and returns false to drop the item.
// Returns nil when nothing is listed.
func itemGroup(entries []FileEntry, decorate func(FileEntry, *xmldoc.Element) bool) *xmldoc.Element {
	group := xmldoc.NewElement("ItemGroup")
	for _, role := range itemOrder {
		for _, e := range entries {
			if e.Role != role {
				continue
			}
			item := xmldoc.NewElement(role.ItemType(), xmldoc.A("Include", e.RelativePath))
			if decorate != nil && !decorate(e, item) {
				continue
			}
			group.Append(item)
		}
	}
	if len(group.ChildElements()) == 0 {
		return nil
	}
	return group
}

// primaryMakefile picks the build script closest to the project root,
// first one wins on ties.
func primaryMakefile(entries []FileEntry) string {
	best, depth := "", -1
	for _, e := range entries {
		if e.Role != BuildScript {
			continue
		}
		d := strings.Count(e.RelativePath, "/") + strings.Count(e.RelativePath, `\`)
		if depth < 0 || d < depth {
			best, depth = e.RelativePath, d
		}
	}
	if best == "" {
		return "Makefile"
	}
	return best
}
