// Package custom loads backend definitions from Lua scripts.
package custom

import (
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/hostplay/hostplay/constant"
	"github.com/hostplay/hostplay/driver"
	"github.com/hostplay/hostplay/internal/luavm"
	"github.com/hostplay/hostplay/probe"
	"github.com/hostplay/hostplay/util"
	"github.com/samber/lo"
	lua "github.com/yuin/gopher-lua"
)

// Definition is a backend declared by a Lua script.
type Definition struct {
	Name      string
	URL       string
	Family    driver.Family
	Progress  probe.ProgressSource
	Selectors probe.Selectors
}

// Load executes the script at path and reads its backend table.
func Load(path string) (*Definition, error) {
	L := luavm.NewState()
	defer L.Close()

	if err := luavm.Run(L, path); err != nil {
		return nil, err
	}

	name := util.FileStem(path)

	global := L.GetGlobal(constant.BackendGlobal)
	table, ok := global.(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("%s: global %s must be a table, got %s", name, constant.BackendGlobal, global.Type())
	}

	definition, err := fromTable(table)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	definition.Name = name
	return definition, nil
}

func getString(table *lua.LTable, key string) string {
	val := table.RawGetString(key)
	if val.Type() == lua.LTString {
		return val.String()
	}
	return ""
}

func fromTable(table *lua.LTable) (*Definition, error) {
	url := getString(table, "url")
	if url == "" {
		return nil, fmt.Errorf("url is required")
	}

	family, err := driver.ParseFamily(getString(table, "family"))
	if err != nil {
		return nil, err
	}

	kind := probe.ProgressKind(getString(table, "progress"))
	if kind == "" {
		kind = probe.ProgressAria
	}

	if !lo.Contains(probe.ProgressKinds, kind) {
		return nil, fmt.Errorf("unknown progress kind %q", kind)
	}

	selectorsTable, ok := table.RawGetString("selectors").(*lua.LTable)
	if !ok {
		return nil, fmt.Errorf("selectors table is required")
	}

	selectors := probe.Selectors{
		Title:         getString(selectorsTable, "title"),
		Artist:        getString(selectorsTable, "artist"),
		Play:          getString(selectorsTable, "play"),
		Pause:         getString(selectorsTable, "pause"),
		Next:          getString(selectorsTable, "next"),
		Previous:      getString(selectorsTable, "previous"),
		StartPlaylist: getString(selectorsTable, "start_playlist"),
		Progress:      getString(selectorsTable, "progress"),
	}

	required := map[string]string{
		"title":    selectors.Title,
		"play":     selectors.Play,
		"pause":    selectors.Pause,
		"next":     selectors.Next,
		"progress": selectors.Progress,
	}

	if family != driver.Direct {
		required["previous"] = selectors.Previous
	}

	if family == driver.PeekArtist {
		required["artist"] = selectors.Artist
	}

	missing := lo.Filter(slices.Sorted(maps.Keys(required)), func(field string, _ int) bool {
		return required[field] == ""
	})
	if len(missing) > 0 {
		return nil, fmt.Errorf("selectors %s are required for %s backends", strings.Join(missing, ", "), family)
	}

	return &Definition{
		URL:    url,
		Family: family,
		Progress: probe.ProgressSource{
			Kind:     kind,
			Property: getString(table, "style_property"),
		},
		Selectors: selectors,
	}, nil
}
