package records

import (
	"fmt"

	"github.com/mmynk/amigo/internal/storage"
)

// Scope decides where the two list records live.
type Scope string

const (
	// ScopeOrigin keeps every record in the origin's namespace, like browser storage.
	ScopeOrigin Scope = "origin"

	// ScopeShared keeps the user records per origin but the lists in one shared namespace,
	// so every participant sees the same hints and dinner suggestions.
	ScopeShared Scope = "shared"
)

// ParseScope validates a configured scope name.
func ParseScope(v string) (Scope, error) {
	switch Scope(v) {
	case ScopeOrigin, ScopeShared:
		return Scope(v), nil
	}
	return "", fmt.Errorf("unknown board scope %q (want %q or %q)", v, ScopeOrigin, ScopeShared)
}

// ForOrigin returns the store view an origin's Records should use.
func ForOrigin(base storage.Store, origin string, scope Scope) storage.Store {
	own := storage.Namespace(base, "origin:"+origin)
	if scope != ScopeShared {
		return own
	}
	board := storage.Namespace(base, "board")
	return storage.Route(own, map[string]storage.Store{
		KeyWishes:      board,
		KeySuggestions: board,
	})
}
