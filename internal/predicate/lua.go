package predicate

import (
	"fmt"

	lua "github.com/yuin/gopher-lua"

	"github.com/dshills/seqmatch/internal/sequence"
)

// Script compiles Lua predicate expressions on one sandboxed Lua state.
//
// gopher-lua's LState is not goroutine-safe. A Script and every Match it
// produced must be used from a single goroutine.
type Script struct {
	L *lua.LState
}

// NewScript creates a Lua state with only the base, table, string and
// math libraries. Functions that load code from files or strings are
// removed.
func NewScript() *Script {
	L := lua.NewState(lua.Options{SkipOpenLibs: true})

	lua.OpenBase(L)
	lua.OpenTable(L)
	lua.OpenString(L)
	lua.OpenMath(L)

	for _, name := range []string{"dofile", "loadfile", "load", "loadstring", "require"} {
		L.SetGlobal(name, lua.LNil)
	}

	return &Script{L: L}
}

// Close releases the Lua state.
func (s *Script) Close() {
	s.L.Close()
}

// Match compiles expr once into a predicate. The element is bound to the
// local e, so `e:sub(1, 4) == "call"` or `#e > 80` are valid expressions.
// The element matches when expr is truthy. A runtime error counts as no
// match.
func (s *Script) Match(expr string) (Match, error) {
	fn, err := s.L.LoadString("local e = ...\nreturn " + expr)
	if err != nil {
		return Match{}, fmt.Errorf("lua %q: %w", expr, err)
	}

	return sequence.NewMatch(fmt.Sprintf("lua %q", expr), func(element string) bool {
		top := s.L.GetTop()
		defer s.L.SetTop(top)

		s.L.Push(fn)
		s.L.Push(lua.LString(element))
		if err := s.L.PCall(1, 1, nil); err != nil {
			return false
		}
		return lua.LVAsBool(s.L.Get(-1))
	}), nil
}
