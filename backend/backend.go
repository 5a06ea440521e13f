// Package backend manages the built-in and custom hosted player backends.
package backend

import (
	"fmt"
	"path/filepath"
	"sort"

	"github.com/hostplay/hostplay/backend/custom"
	"github.com/hostplay/hostplay/constant"
	"github.com/hostplay/hostplay/driver"
	"github.com/hostplay/hostplay/filesystem"
	"github.com/hostplay/hostplay/log"
	"github.com/hostplay/hostplay/probe"
	"github.com/hostplay/hostplay/where"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/samber/lo"
)

// Backend describes a hosted player: where it lives and how to drive it.
type Backend struct {
	Name      string
	URL       string
	Family    driver.Family
	Progress  probe.ProgressSource
	Selectors probe.Selectors

	// Path is the script of a custom backend, empty for built-ins.
	Path string
}

func (b *Backend) String() string {
	return b.Name
}

// IsCustom reports whether the backend is defined by a Lua script.
func (b *Backend) IsCustom() bool {
	return b.Path != ""
}

// Probe creates a DOM probe for the backend over page.
func (b *Backend) Probe(page probe.Page) *probe.DOM {
	return probe.NewDOM(page, b.Selectors, b.Progress)
}

// Customs loads every Lua backend from the backends directory.
// Scripts that fail to load are logged and skipped.
func Customs() ([]*Backend, error) {
	dir := where.Backends()

	files, err := filesystem.API().ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var backends []*Backend
	for _, f := range files {
		if f.IsDir() || filepath.Ext(f.Name()) != constant.CustomBackendExtension {
			continue
		}

		path := filepath.Join(dir, f.Name())
		definition, err := custom.Load(path)
		if err != nil {
			log.Warnf("skipping custom backend %s: %s", f.Name(), err)
			continue
		}

		backends = append(backends, &Backend{
			Name:      definition.Name,
			URL:       definition.URL,
			Family:    definition.Family,
			Progress:  definition.Progress,
			Selectors: definition.Selectors,
			Path:      path,
		})
	}

	return backends, nil
}

// All returns the built-ins followed by the custom backends, sorted by name.
// A custom backend shadows a built-in with the same name.
func All() []*Backend {
	customs, err := Customs()
	if err != nil {
		log.Warnf("reading custom backends: %s", err)
	}

	byName := make(map[string]*Backend)
	for _, b := range append(Builtins(), customs...) {
		byName[b.Name] = b
	}

	backends := lo.Values(byName)
	sort.Slice(backends, func(i, j int) bool {
		return backends[i].Name < backends[j].Name
	})

	return backends
}

// Get finds a backend by name.
func Get(name string) (*Backend, bool) {
	return lo.Find(All(), func(b *Backend) bool {
		return b.Name == name
	})
}

// Suggest returns the known backend names closest to name, best first.
func Suggest(name string) []string {
	names := lo.Map(All(), func(b *Backend, _ int) string {
		return b.Name
	})

	ranks := fuzzy.RankFindNormalizedFold(name, names)
	sort.Sort(ranks)

	return lo.Map(ranks, func(r fuzzy.Rank, _ int) string {
		return r.Target
	})
}

// Find is Get with an error suggesting the closest match.
func Find(name string) (*Backend, error) {
	if b, ok := Get(name); ok {
		return b, nil
	}

	if suggestions := Suggest(name); len(suggestions) > 0 {
		return nil, fmt.Errorf("backend %q not found, did you mean %q?", name, suggestions[0])
	}

	return nil, fmt.Errorf("backend %q not found", name)
}
