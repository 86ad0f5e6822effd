package player

// Repository describes the player store the use cases merge into and read from.
type Repository interface {
	Ingest(p Player) (string, bool)
	All() []Player
	Lookup(name string) (Player, bool)
	Len() int
}

var _ Repository = (*Registry)(nil)
