package pages

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/draft-value/internal/domain/player"
)

// ErrNotFound is returned when a source has no page of the requested kind.
var ErrNotFound = errors.New("page not found")

type Kind string

const (
	KindRankings    Kind = "rankings"
	KindProjections Kind = "projections"
)

// Page is the raw HTML of one provider page.
type Page struct {
	Source player.Source
	Kind   Kind
	Name   string
	Body   []byte
}

// Loader fetches the raw pages of a source. Projections may span several
// pages, one per position group.
type Loader interface {
	Rankings(ctx context.Context, source player.Source) (Page, error)
	Projections(ctx context.Context, source player.Source) ([]Page, error)
}
