// Package luavm runs Lua scripts with a compiled bytecode cache.
package luavm

import (
	"fmt"
	"sync"
	"time"

	"github.com/hostplay/hostplay/filesystem"
	libs "github.com/metafates/mangal-lua-libs"
	lua "github.com/yuin/gopher-lua"
	"github.com/yuin/gopher-lua/parse"
)

type cacheKey struct {
	path    string
	modTime time.Time
	size    int64
}

var bytecodeCache sync.Map

// NewState creates a Lua state with the bundled libraries preloaded.
func NewState() *lua.LState {
	L := lua.NewState()
	libs.Preload(L)
	return L
}

// Compile returns the bytecode of the script at path.
// Prototypes are cached until the file changes.
func Compile(path string) (*lua.FunctionProto, error) {
	info, err := filesystem.API().Stat(path)
	if err != nil {
		return nil, err
	}

	key := cacheKey{path: path, modTime: info.ModTime(), size: info.Size()}
	if cached, ok := bytecodeCache.Load(key); ok {
		return cached.(*lua.FunctionProto), nil
	}

	file, err := filesystem.API().Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	chunk, err := parse.Parse(file, path)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}

	proto, err := lua.Compile(chunk, path)
	if err != nil {
		return nil, fmt.Errorf("compile %s: %w", path, err)
	}

	bytecodeCache.Store(key, proto)
	return proto, nil
}

// Run executes the script at path in L.
func Run(L *lua.LState, path string) error {
	proto, err := Compile(path)
	if err != nil {
		return err
	}

	L.Push(L.NewFunctionFromProto(proto))
	return L.PCall(0, lua.MultRet, nil)
}
