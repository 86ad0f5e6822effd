package player

import "sync"

// Registry incrementally clusters incoming records into distinct players.
// Each ingestion matches against the registry state left by the previous one,
// so ingestion order matters; the lock keeps scan-then-insert atomic.
type Registry struct {
	mu      sync.Mutex
	players []Player
}

func NewRegistry() *Registry {
	return &Registry{}
}

// Ingest merges p into its best match, or appends it as a new player.
// When a merge happened it returns the name of the player merged into.
func (r *Registry) Ingest(p Player) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := FindMatch(p.Name, r.players)
	if !ok {
		r.players = append(r.players, p.Clone())
		return "", false
	}

	r.players[idx].Merge(p)
	return r.players[idx].Name, true
}

// All returns a snapshot of the registered players in insertion order.
func (r *Registry) All() []Player {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Player, 0, len(r.players))
	for _, p := range r.players {
		out = append(out, p.Clone())
	}
	return out
}

// Lookup resolves a name to a registered player the same way Ingest does.
func (r *Registry) Lookup(name string) (Player, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := FindMatch(name, r.players)
	if !ok {
		return Player{}, false
	}
	return r.players[idx].Clone(), true
}

func (r *Registry) Len() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.players)
}
