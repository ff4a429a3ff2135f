package generator

import (
	"bytes"
	"fmt"
	"strings"
	"sync"
	"text/template"
)

// Renderer handles template parsing and rendering with caching
type Renderer struct {
	funcMap template.FuncMap
	cache   map[string]*template.Template
	mu      sync.RWMutex // Protect cache for concurrent access
}

// NewRenderer creates a renderer with built-in helper functions
func NewRenderer() *Renderer {
	return &Renderer{
		funcMap: defaultFuncMap(),
		cache:   make(map[string]*template.Template),
	}
}

// RenderString renders a template from a string.
// The name and the template text together form the cache key, so callers
// can reuse a name for differently configured templates.
func (r *Renderer) RenderString(name, templateStr string, data any) ([]byte, error) {
	cacheKey := name + "\x00" + templateStr

	r.mu.RLock()
	if tmpl, ok := r.cache[cacheKey]; ok {
		r.mu.RUnlock()
		return r.executeTemplate(tmpl, data)
	}
	r.mu.RUnlock()

	tmpl, err := template.New(name).Funcs(r.funcMap).Option("missingkey=error").Parse(templateStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse template '%s': %w", name, err)
	}

	r.mu.Lock()
	r.cache[cacheKey] = tmpl
	r.mu.Unlock()

	return r.executeTemplate(tmpl, data)
}

// ClearCache clears the template cache (useful for testing)
func (r *Renderer) ClearCache() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.cache = make(map[string]*template.Template)
}

func (r *Renderer) executeTemplate(tmpl *template.Template, data any) ([]byte, error) {
	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("failed to render template '%s': %w", tmpl.Name(), err)
	}
	return buf.Bytes(), nil
}

func defaultFuncMap() template.FuncMap {
	return template.FuncMap{
		"quote":     Quote,
		"upper":     strings.ToUpper,
		"lower":     strings.ToLower,
		"trim":      strings.TrimSpace,
		"join":      strings.Join,
		"replace":   strings.ReplaceAll,
		"hasSuffix": strings.HasSuffix,
		"winPath":   WindowsPath, // src/a.c → src\a.c
		"posixPath": PosixPath,   // src\a.c → src/a.c
		"default":   Default,
	}
}

// Quote wraps a string in double quotes without Go escaping, which is what
// shell and MSBuild command lines expect.
func Quote(s string) string {
	return `"` + s + `"`
}

// WindowsPath converts forward slashes to backslashes
func WindowsPath(s string) string {
	return strings.ReplaceAll(s, "/", `\`)
}

// PosixPath converts backslashes to forward slashes
func PosixPath(s string) string {
	return strings.ReplaceAll(s, `\`, "/")
}

// Default returns the default value if the given value is nil or an empty string
func Default(defaultVal, val any) any {
	if val == nil {
		return defaultVal
	}
	if s, ok := val.(string); ok && s == "" {
		return defaultVal
	}
	return val
}
