// Package render maps titles and page state to HTML fragments. Every
// function here is pure: the same input always yields the same fragment and
// nothing performs network access.
package render

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"path"
	"strings"

	"github.com/eknkc/pug"
)

//go:embed templates/*.pug
var templateFS embed.FS

// Template names
const (
	tplCard       = "card"
	tplGrid       = "grid"
	tplHero       = "hero"
	tplModal      = "modal"
	tplSkeleton   = "skeleton"
	tplError      = "error"
	tplNoResults  = "noresults"
	tplHeader     = "header"
	tplCategories = "categories"
	tplPage       = "page"
)

var templateNames = []string{
	tplCard, tplGrid, tplHero, tplModal, tplSkeleton,
	tplError, tplNoResults, tplHeader, tplCategories, tplPage,
}

// Renderer holds the compiled templates and the image CDN base
type Renderer struct {
	imageBase string
	templates map[string]*template.Template
}

// New compiles the embedded templates. imageBase is the CDN prefix that
// image size segments and paths are appended to.
func New(imageBase string) (*Renderer, error) {
	r := &Renderer{
		imageBase: strings.TrimRight(imageBase, "/"),
		templates: make(map[string]*template.Template, len(templateNames)),
	}
	for _, name := range templateNames {
		src, err := templateFS.ReadFile(path.Join("templates", name+".pug"))
		if err != nil {
			return nil, fmt.Errorf("read template %s: %w", name, err)
		}
		tpl, err := pug.CompileString(string(src), pug.Options{})
		if err != nil {
			return nil, fmt.Errorf("compile template %s: %w", name, err)
		}
		r.templates[name] = tpl
	}
	return r, nil
}

func (r *Renderer) execute(name string, data any) (template.HTML, error) {
	tpl, ok := r.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %s", name)
	}
	var buf bytes.Buffer
	if err := tpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("execute template %s: %w", name, err)
	}
	return template.HTML(buf.String()), nil
}
