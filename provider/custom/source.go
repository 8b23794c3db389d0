// Package custom provides a bridge between the Go core and Lua-based scraper scripts.
package custom

import (
	"fmt"
	"sync"
	"time"

	"github.com/mangasan-cli/mangasan/scraper"
	lua "github.com/yuin/gopher-lua"
)

// defaultQuota is the request budget for user-provided scripts. Their targets
// are unknown, so they get the conservative limit.
var defaultQuota = scraper.Quota{MaxRequests: 5, Per: time.Second}

type luaSource struct {
	name    string
	state   *lua.LState
	invoker *scraper.Invoker

	// The Lua VM is not safe for concurrent use, and a timed-out call may
	// still be running inside it. Calls are serialized here; an abandoned
	// call keeps the lock until it actually returns.
	mu sync.Mutex
}

// Name returns the provider name.
func (s *luaSource) Name() string {
	return s.name
}

// ID returns the provider ID.
func (s *luaSource) ID() string {
	return IDfromName(s.name) // Defined in loader.go
}

func newLuaSource(name string, state *lua.LState) (*luaSource, error) {
	opts := scraper.DefaultOptions()
	opts.RateLimit = opts.RateLimit.Or(defaultQuota)

	s := &luaSource{
		name:    name,
		state:   state,
		invoker: scraper.NewInvoker(IDfromName(name), opts),
	}

	return s, nil
}

// call executes a global Lua function safely.
func (s *luaSource) call(fn string, retType lua.LValueType, args ...lua.LValue) (lua.LValue, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	luaFn := s.state.GetGlobal(fn)
	if luaFn.Type() != lua.LTFunction {
		return nil, fmt.Errorf("function %s is not defined", fn)
	}

	err := s.state.CallByParam(lua.P{
		Fn:      luaFn,
		NRet:    1,
		Protect: true,
	}, args...)

	if err != nil {
		return nil, err
	}

	retval := s.state.Get(-1)
	s.state.Pop(1) // Clean stack

	if retval.Type() != retType {
		return nil, fmt.Errorf("%s returned %s, expected %s", fn, retval.Type(), retType)
	}

	return retval, nil
}
