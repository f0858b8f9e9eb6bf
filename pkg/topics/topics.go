// Package topics serves the usage examples shown by "clseek examples". Topics
// are markdown files embedded in the binary, one per tool.
package topics

import (
	"embed"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/arthur-debert/clseek/pkg/errors"
)

//go:embed examples/*.md
var embedded embed.FS

// Topic is one help document
type Topic struct {
	Name    string
	Content string
	// Format is the file extension, ".md" or ".txt"
	Format string
}

// Options configures a Manager
type Options struct {
	// Extensions lists the file extensions loaded as topics.
	// Defaults to [".txt", ".md"].
	Extensions []string

	// Renderer formats topic content. Defaults to PlainRenderer.
	Renderer Renderer
}

// Manager holds the topics found in one directory
type Manager struct {
	topics   map[string]*Topic
	renderer Renderer
}

// Default returns a manager over the embedded examples
func Default(opts Options) (*Manager, error) {
	return New(embedded, "examples", opts)
}

// New loads every topic file directly inside dir of fsys
func New(fsys fs.FS, dir string, opts Options) (*Manager, error) {
	m := &Manager{topics: make(map[string]*Topic), renderer: opts.Renderer}
	if m.renderer == nil {
		m.renderer = &PlainRenderer{}
	}
	extensions := opts.Extensions
	if len(extensions) == 0 {
		extensions = []string{".txt", ".md"}
	}

	entries, err := fs.ReadDir(fsys, dir)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read topics from %s", dir)
	}
	for _, entry := range entries {
		ext := path.Ext(entry.Name())
		if entry.IsDir() || !contains(extensions, ext) {
			continue
		}
		content, err := fs.ReadFile(fsys, path.Join(dir, entry.Name()))
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrNotFound, "cannot read topic %s", entry.Name())
		}
		name := strings.TrimSuffix(entry.Name(), ext)
		m.topics[name] = &Topic{Name: name, Content: string(content), Format: ext}
	}
	return m, nil
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}

// Get retrieves a topic by name
func (m *Manager) Get(name string) (*Topic, bool) {
	t, ok := m.topics[name]
	return t, ok
}

// List returns the topic names, sorted
func (m *Manager) List() []string {
	names := make([]string, 0, len(m.topics))
	for name := range m.topics {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Render returns the named topic formatted by the manager's renderer
func (m *Manager) Render(name string) (string, error) {
	t, ok := m.Get(name)
	if !ok {
		return "", errors.Newf(errors.ErrNotFound, "no examples for %q (available: %s)", name, strings.Join(m.List(), ", "))
	}
	return m.renderer.Render(t.Content, t.Format), nil
}
