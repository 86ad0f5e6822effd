package source

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/draft-value/internal/domain/player"
)

// ESPNParser reads the ESPN draft rankings page and its projection tables.
type ESPNParser struct{}

func (ESPNParser) Source() player.Source {
	return player.SourceESPN
}

// ParseRankings reads the second inline table. Each row is
// "<rank>. <name>", position, team and a position rank such as "RB12".
func (p ESPNParser) ParseRankings(r io.Reader) (Result, error) {
	doc, err := newDocument(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	table := doc.Find("table.inline-table").Eq(1)
	if table.Length() == 0 {
		return res, nil
	}
	res.TableFound = true

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i < 1 {
			return
		}
		rec, err := p.rankingsRow(row)
		if err != nil {
			res.skip(i, err)
			return
		}
		res.add(rec)
	})
	return res, nil
}

func (ESPNParser) rankingsRow(row *goquery.Selection) (player.RawRecord, error) {
	cells := row.Find("td")
	if cells.Length() < 4 {
		return player.RawRecord{}, errors.Wrapf(ErrMalformedRow, "expected 4 cells, got %d", cells.Length())
	}

	rankName := cellText(cells.Eq(0))
	rankText, name, ok := strings.Cut(rankName, ". ")
	if !ok || name == "" {
		return player.RawRecord{}, errors.Wrapf(ErrMalformedRow, "no rank prefix in %q", rankName)
	}
	rank, err := parseInt(rankText)
	if err != nil {
		return player.RawRecord{}, err
	}
	positionRank, err := parsePositionRank(cellText(cells.Eq(3)))
	if err != nil {
		return player.RawRecord{}, err
	}

	return player.RawRecord{
		Name:         name,
		Position:     cellText(cells.Eq(1)),
		Team:         cellText(cells.Eq(2)),
		Source:       player.SourceESPN,
		Rank:         intPtr(rank),
		PositionRank: intPtr(positionRank),
	}, nil
}

// ParsePPG reads a projections table. The first two rows are headers; the
// player cell holds "<name>, <team> <pos>" and the last cell is the PPG.
func (p ESPNParser) ParsePPG(r io.Reader) (Result, error) {
	doc, err := newDocument(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	table := doc.Find("table.playerTableTable.tableBody").First()
	if table.Length() == 0 {
		return res, nil
	}
	res.TableFound = true

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i < 2 {
			return
		}
		rec, err := p.ppgRow(row)
		if err != nil {
			res.skip(i, err)
			return
		}
		res.add(rec)
	})
	return res, nil
}

func (ESPNParser) ppgRow(row *goquery.Selection) (player.RawRecord, error) {
	cells := row.Find("td")
	if cells.Length() < 2 {
		return player.RawRecord{}, errors.Wrapf(ErrMalformedRow, "expected at least 2 cells, got %d", cells.Length())
	}

	name, _, _ := strings.Cut(Sanitize(cells.Eq(1).Text()), ",")
	name = strings.TrimSpace(name)
	if name == "" {
		return player.RawRecord{}, errors.Wrap(ErrMalformedRow, "empty player name")
	}
	ppg, err := parseFloat(cells.Last().Text())
	if err != nil {
		return player.RawRecord{}, err
	}

	return player.RawRecord{
		Name:         name,
		Source:       player.SourceESPN,
		ProjectedPPG: floatPtr(ppg),
	}, nil
}
