package source

import (
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/draft-value/internal/domain/player"
)

var (
	ErrUnknownSource = errors.New("unknown source")
	ErrMalformedRow  = errors.New("malformed row")
)

var (
	positionRankPattern = regexp.MustCompile(`[A-Z]+(\d+)`)
	positionPattern     = regexp.MustCompile(`([A-Z]+)(\d+)`)
)

// Parser turns one provider's HTML pages into raw records.
type Parser interface {
	Source() player.Source
	ParseRankings(r io.Reader) (Result, error)
	ParsePPG(r io.Reader) (Result, error)
}

// Result is what a parser extracted from one page. Rows that could not be
// parsed are reported in Skipped instead of failing the page.
type Result struct {
	Records    []player.RawRecord
	Skipped    []RowError
	TableFound bool
}

type RowError struct {
	Row int
	Err error
}

func (e RowError) Error() string {
	return "row " + strconv.Itoa(e.Row) + ": " + e.Err.Error()
}

func (e RowError) Unwrap() error {
	return e.Err
}

// ForSource returns the parser registered for s.
func ForSource(s player.Source) (Parser, error) {
	switch s {
	case player.SourceESPN:
		return ESPNParser{}, nil
	case player.SourceFantasyPros:
		return FantasyProsParser{}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownSource, "source=%q", s)
	}
}

func newDocument(r io.Reader) (*goquery.Document, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, errors.Wrap(err, "parse html document")
	}
	return doc, nil
}

func (res *Result) add(rec player.RawRecord) {
	res.Records = append(res.Records, rec)
}

func (res *Result) skip(row int, err error) {
	res.Skipped = append(res.Skipped, RowError{Row: row, Err: err})
}

func cellText(s *goquery.Selection) string {
	return strings.TrimSpace(s.Text())
}

func parseInt(text string) (int, error) {
	v, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "parse int %q", text), ErrMalformedRow)
	}
	return v, nil
}

func parseFloat(text string) (float64, error) {
	v, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return 0, errors.Mark(errors.Wrapf(err, "parse float %q", text), ErrMalformedRow)
	}
	return v, nil
}

func parsePositionRank(text string) (int, error) {
	m := positionRankPattern.FindStringSubmatch(text)
	if m == nil {
		return 0, errors.Wrapf(ErrMalformedRow, "no position rank in %q", text)
	}
	return parseInt(m[1])
}

func intPtr(v int) *int {
	return &v
}

func floatPtr(v float64) *float64 {
	return &v
}
