// Package xmldoc builds XML documents as a tree of typed nodes on top of
// etree and serializes them with one set of write settings.
//
// Documents are assembled top-down and rendered once:
//
//	root := xmldoc.NewElement("Project", xmldoc.A("ToolsVersion", "4.0"))
//	group := root.Add("ItemGroup")
//	group.Add("ClCompile", xmldoc.A("Include", `src\main.c`))
//
//	var buf bytes.Buffer
//	_, err := xmldoc.New(root).WriteTo(&buf)
//
// Empty elements are self-closed and attributes keep the order they were
// added in. Text escapes markup characters but leaves quotes alone, which
// keeps command lines readable. Characters XML cannot carry are replaced,
// so output always parses; callers that need exact values must reject
// such input first.
package xmldoc
