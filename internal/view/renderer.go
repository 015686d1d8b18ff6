package view

import (
	"bytes"
	"context"
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"log/slog"
	"path/filepath"
	"sync"

	"github.com/Masterminds/sprig/v3"
	"github.com/fsnotify/fsnotify"
	"github.com/tdewolff/minify/v2"
	minhtml "github.com/tdewolff/minify/v2/html"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// Template names used by the handlers
const (
	IndexTemplate = "index.html.tmpl"
	ShowTemplate  = "show.html.tmpl"
	ErrorTemplate = "error.html.tmpl"
)

var ErrTemplateNotFound = errors.New("template not found")

// Options configures a Renderer
type Options struct {
	// TemplateDir overrides the embedded template set with files from disk.
	// Required for Watch; empty means embedded templates only.
	TemplateDir string

	// Minify passes rendered documents through an HTML minifier
	Minify bool

	Logger *slog.Logger
}

// Renderer renders HTML documents from named templates.
// Every template gets the sprig function map, and a value referenced by a
// template but absent from the data mapping fails the render rather than
// interpolating an empty string.
type Renderer struct {
	opts Options
	min  *minify.M

	mu   sync.RWMutex
	tmpl *template.Template
}

// NewRenderer creates a renderer and parses the template set
func NewRenderer(opts Options) (*Renderer, error) {
	if opts.Logger == nil {
		opts.Logger = slog.Default()
	}

	r := &Renderer{opts: opts}

	if opts.Minify {
		m := minify.New()
		m.AddFunc("text/html", minhtml.Minify)
		r.min = m
	}

	tmpl, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.tmpl = tmpl

	return r, nil
}

func (r *Renderer) parse() (*template.Template, error) {
	base := template.New("").Funcs(sprig.HtmlFuncMap()).Option("missingkey=error")

	if r.opts.TemplateDir != "" {
		tmpl, err := base.ParseGlob(filepath.Join(r.opts.TemplateDir, "*.tmpl"))
		if err != nil {
			return nil, fmt.Errorf("failed to parse templates from %s: %w", r.opts.TemplateDir, err)
		}
		return tmpl, nil
	}

	tmpl, err := base.ParseFS(embeddedTemplates, "templates/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse embedded templates: %w", err)
	}
	return tmpl, nil
}

// Render executes the named template with the given data and writes the
// result to w. The document is rendered into a buffer first so a failing
// render never leaves a partial response behind.
func (r *Renderer) Render(w io.Writer, name string, data map[string]interface{}) error {
	r.mu.RLock()
	tmpl := r.tmpl.Lookup(name)
	r.mu.RUnlock()

	if tmpl == nil {
		return fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return fmt.Errorf("failed to render %s: %w", name, err)
	}

	if r.min != nil {
		return r.min.Minify("text/html", w, &buf)
	}

	_, err := buf.WriteTo(w)
	return err
}

// Watch reloads the template set whenever a file in TemplateDir changes.
// It blocks until ctx is cancelled and is a no-op without a template
// directory. Intended for development only.
func (r *Renderer) Watch(ctx context.Context) error {
	if r.opts.TemplateDir == "" {
		return nil
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create template watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(r.opts.TemplateDir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", r.opts.TemplateDir, err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}

			tmpl, err := r.parse()
			if err != nil {
				// Keep serving the last good set
				r.opts.Logger.Error("template reload failed", "file", event.Name, "error", err)
				continue
			}

			r.mu.Lock()
			r.tmpl = tmpl
			r.mu.Unlock()
			r.opts.Logger.Info("templates reloaded", "file", event.Name)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			r.opts.Logger.Error("template watcher error", "error", err)
		}
	}
}
