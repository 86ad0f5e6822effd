package pages

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/draft-value/internal/domain/player"
)

const (
	rankingsFile   = "Rankings.htm"
	projectionsDir = "Projections"
)

// FileLoader reads pages saved under <dir>/<source>/.
type FileLoader struct {
	dir string
}

func NewFileLoader(dir string) *FileLoader {
	return &FileLoader{dir: dir}
}

func (l *FileLoader) Rankings(_ context.Context, source player.Source) (Page, error) {
	path := filepath.Join(l.dir, string(source), rankingsFile)
	body, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Page{}, errors.Wrapf(ErrNotFound, "rankings file %s", path)
		}
		return Page{}, errors.Wrapf(err, "read rankings file %s", path)
	}

	return Page{Source: source, Kind: KindRankings, Name: path, Body: body}, nil
}

// Projections reads every .htm/.html file in the source's projections
// folder in name order.
func (l *FileLoader) Projections(ctx context.Context, source player.Source) ([]Page, error) {
	dir := filepath.Join(l.dir, string(source), projectionsDir)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, errors.Wrapf(ErrNotFound, "projections folder %s", dir)
		}
		return nil, errors.Wrapf(err, "list projections folder %s", dir)
	}

	out := make([]Page, 0, len(entries))
	for _, entry := range entries {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if entry.IsDir() || !isHTMLFile(entry.Name()) {
			continue
		}

		path := filepath.Join(dir, entry.Name())
		body, err := os.ReadFile(path)
		if err != nil {
			return nil, errors.Wrapf(err, "read projections file %s", path)
		}
		out = append(out, Page{Source: source, Kind: KindProjections, Name: path, Body: body})
	}
	return out, nil
}

func isHTMLFile(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	return ext == ".htm" || ext == ".html"
}
