package view

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/fruitstand/fruitstand/internal/models"
)

func newTestRenderer(t *testing.T, opts Options) *Renderer {
	t.Helper()
	r, err := NewRenderer(opts)
	if err != nil {
		t.Fatalf("failed to create renderer: %v", err)
	}
	return r
}

func TestRender_Index(t *testing.T) {
	r := newTestRenderer(t, Options{})

	fruits := []models.Fruit{
		{Name: "apple", Color: "red", ReadyToEat: true},
		{Name: "pear", Color: "green", ReadyToEat: false},
	}

	var buf bytes.Buffer
	err := r.Render(&buf, IndexTemplate, map[string]interface{}{"Fruits": fruits})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}

	body := buf.String()
	for _, want := range []string{"apple", "red", "pear", "green"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q", want)
		}
	}

	if strings.Index(body, "apple") > strings.Index(body, "pear") {
		t.Error("fruits rendered out of order")
	}
}

func TestRender_ShowReadiness(t *testing.T) {
	r := newTestRenderer(t, Options{})

	tests := []struct {
		name  string
		fruit models.Fruit
	}{
		{name: "ready", fruit: models.Fruit{Name: "apple", Color: "red", ReadyToEat: true}},
		{name: "not ready", fruit: models.Fruit{Name: "pear", Color: "green", ReadyToEat: false}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			err := r.Render(&buf, ShowTemplate, map[string]interface{}{"Fruit": tt.fruit})
			if err != nil {
				t.Fatalf("render failed: %v", err)
			}

			body := buf.String()
			if !strings.Contains(body, tt.fruit.Name) || !strings.Contains(body, tt.fruit.Color) {
				t.Errorf("body missing name or color: %s", body)
			}

			if tt.fruit.ReadyToEat {
				if !strings.Contains(body, "ready to eat") || strings.Contains(body, "not ready to eat") {
					t.Errorf("wrong readiness phrase for ready fruit: %s", body)
				}
			} else if !strings.Contains(body, "not ready to eat") {
				t.Errorf("wrong readiness phrase for unready fruit: %s", body)
			}
		})
	}
}

func TestRender_UnknownTemplate(t *testing.T) {
	r := newTestRenderer(t, Options{})

	var buf bytes.Buffer
	err := r.Render(&buf, "missing.html.tmpl", map[string]interface{}{})
	if !errors.Is(err, ErrTemplateNotFound) {
		t.Fatalf("expected ErrTemplateNotFound, got %v", err)
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on failed render, got %q", buf.String())
	}
}

func TestRender_MissingValueFails(t *testing.T) {
	r := newTestRenderer(t, Options{})

	// Show references .Fruit, which is absent from the mapping
	var buf bytes.Buffer
	err := r.Render(&buf, ShowTemplate, map[string]interface{}{})
	if err == nil {
		t.Fatal("expected render error for missing value")
	}
	if buf.Len() != 0 {
		t.Errorf("expected no output on failed render, got %q", buf.String())
	}
}

func TestRender_Minify(t *testing.T) {
	plain := newTestRenderer(t, Options{})
	minified := newTestRenderer(t, Options{Minify: true})

	data := map[string]interface{}{
		"Fruit": models.Fruit{Name: "banana", Color: "yellow", ReadyToEat: true},
	}

	var full, small bytes.Buffer
	if err := plain.Render(&full, ShowTemplate, data); err != nil {
		t.Fatalf("plain render failed: %v", err)
	}
	if err := minified.Render(&small, ShowTemplate, data); err != nil {
		t.Fatalf("minified render failed: %v", err)
	}

	if small.Len() >= full.Len() {
		t.Errorf("minified output (%d bytes) not smaller than plain (%d bytes)", small.Len(), full.Len())
	}
	for _, want := range []string{"banana", "yellow", "ready to eat"} {
		if !strings.Contains(small.String(), want) {
			t.Errorf("minified body missing %q", want)
		}
	}
}

func TestRender_TemplateDirOverride(t *testing.T) {
	dir := t.TempDir()
	tmpl := `greetings {{ .Fruit.Name }}`
	if err := os.WriteFile(filepath.Join(dir, ShowTemplate), []byte(tmpl), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	r := newTestRenderer(t, Options{TemplateDir: dir})

	var buf bytes.Buffer
	err := r.Render(&buf, ShowTemplate, map[string]interface{}{
		"Fruit": models.Fruit{Name: "apple", Color: "red"},
	})
	if err != nil {
		t.Fatalf("render failed: %v", err)
	}
	if !strings.Contains(buf.String(), "greetings apple") {
		t.Errorf("expected on-disk template to win, got %q", buf.String())
	}
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ShowTemplate)
	if err := os.WriteFile(path, []byte("before {{ .Fruit.Name }}"), 0o644); err != nil {
		t.Fatalf("failed to write template: %v", err)
	}

	r := newTestRenderer(t, Options{TemplateDir: dir})

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	go func() {
		_ = r.Watch(ctx)
	}()

	// Give the watcher time to register before touching the file
	time.Sleep(100 * time.Millisecond)

	if err := os.WriteFile(path, []byte("after {{ .Fruit.Name }}"), 0o644); err != nil {
		t.Fatalf("failed to rewrite template: %v", err)
	}

	data := map[string]interface{}{"Fruit": models.Fruit{Name: "apple", Color: "red"}}
	deadline := time.Now().Add(5 * time.Second)
	for time.Now().Before(deadline) {
		var buf bytes.Buffer
		if err := r.Render(&buf, ShowTemplate, data); err == nil && strings.Contains(buf.String(), "after apple") {
			return
		}
		time.Sleep(50 * time.Millisecond)
	}

	t.Fatal("template was not reloaded after change")
}
