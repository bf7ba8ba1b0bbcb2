// Package report renders decoded records as plain-text summaries using pongo2
// templates.
package report

import (
	"bytes"
	"embed"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"

	"github.com/botandrose/red-cap/pkg/fields"
	"github.com/botandrose/red-cap/pkg/form"
)

//go:embed templates/*.tpl
var embedded embed.FS

const defaultTemplate = "record.tpl"

// Option configures a Renderer.
type Option func(*config)

type config struct {
	templates fs.FS
	name      string
	title     string
}

// WithTemplateFS loads templates from files instead of the embedded set.
func WithTemplateFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templates = files
		}
	}
}

// WithTemplate selects the template rendered for each record.
func WithTemplate(name string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(name); trimmed != "" {
			cfg.name = trimmed
		}
	}
}

// WithTitle sets the heading line.
func WithTitle(title string) Option {
	return func(cfg *config) {
		cfg.title = title
	}
}

// Renderer turns a decoded Result into text.
type Renderer struct {
	mu       sync.Mutex
	set      *pongo2.TemplateSet
	name     string
	title    string
	template *pongo2.Template
}

// New constructs a Renderer.
func New(options ...Option) (*Renderer, error) {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		return nil, fmt.Errorf("report: embedded templates: %w", err)
	}
	cfg := &config{templates: sub, name: defaultTemplate, title: "Record"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}
	return &Renderer{
		set:   pongo2.NewSet("redcap-report", pongo2.NewFSLoader(cfg.templates)),
		name:  cfg.name,
		title: cfg.title,
	}, nil
}

// Render writes the report for result to out and returns it.
func (r *Renderer) Render(f *form.Form, result form.Result, out ...io.Writer) (string, error) {
	if r == nil || r.set == nil {
		return "", errors.New("report: renderer is nil")
	}
	if f == nil {
		return "", errors.New("report: form is required")
	}

	tmpl, err := r.load()
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	ctx := pongo2.Context{
		"title": r.title,
		"rows":  rows(f, result),
	}
	if err := tmpl.ExecuteWriter(ctx, &buf); err != nil {
		return "", fmt.Errorf("report: execute template %q: %w", r.name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := io.WriteString(w, rendered); err != nil {
			return "", fmt.Errorf("report: write output: %w", err)
		}
	}
	return rendered, nil
}

func (r *Renderer) load() (*pongo2.Template, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.template != nil {
		return r.template, nil
	}
	tmpl, err := r.set.FromFile(r.name)
	if err != nil {
		return nil, fmt.Errorf("report: load template %q: %w", r.name, err)
	}
	r.template = tmpl
	return tmpl, nil
}

func rows(f *form.Form, result form.Result) []map[string]any {
	out := make([]map[string]any, 0, len(result))
	for _, entry := range result {
		label := entry.Key
		if field, err := f.Field(entry.Key); err == nil {
			label = field.Label()
		}
		row := map[string]any{
			"name":  entry.Key,
			"label": label,
			"kind":  entry.Value.Kind().String(),
		}
		switch entry.Value.Kind() {
		case fields.KindBool:
			b, _ := entry.Value.AsBool()
			row["text"] = yesNo(b)
		case fields.KindList:
			items, _ := entry.Value.AsList()
			row["items"] = items
		case fields.KindMap:
			pairs, _ := entry.Value.AsMap()
			entries := make([]map[string]any, 0, len(pairs))
			for _, pair := range pairs {
				entries = append(entries, map[string]any{
					"label": pair.Key,
					"text":  pair.Value.String(),
				})
			}
			row["entries"] = entries
		default:
			row["text"] = entry.Value.String()
		}
		out = append(out, row)
	}
	return out
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
