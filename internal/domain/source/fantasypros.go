package source

import (
	"io"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/cockroachdb/errors"

	"github.com/riskibarqy/draft-value/internal/domain/player"
)

const fantasyProsRankingsCells = 11

// FantasyProsParser reads the FantasyPros cheat sheet and projection pages.
type FantasyProsParser struct{}

func (FantasyProsParser) Source() player.Source {
	return player.SourceFantasyPros
}

// ParseRankings skips the two header rows, tier separator rows and any row
// that does not have the full set of cells.
func (p FantasyProsParser) ParseRankings(r io.Reader) (Result, error) {
	doc, err := newDocument(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	table := doc.Find("table.table-bordered").First()
	if table.Length() == 0 {
		return res, nil
	}
	res.TableFound = true

	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i < 2 {
			return
		}
		if strings.Contains(row.Text(), "Tier") || row.Find("td").Length() != fantasyProsRankingsCells {
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

func (FantasyProsParser) rankingsRow(row *goquery.Selection) (player.RawRecord, error) {
	cells := row.Find("td")

	rank, err := parseInt(cells.Eq(0).Text())
	if err != nil {
		return player.RawRecord{}, err
	}

	label := cells.Eq(1)
	nameTag := label.Find("span.full-name").First()
	if nameTag.Length() == 0 {
		return player.RawRecord{}, errors.Wrap(ErrMalformedRow, "no full-name span")
	}

	posText := cellText(cells.Eq(3))
	m := positionPattern.FindStringSubmatch(posText)
	if m == nil {
		return player.RawRecord{}, errors.Wrapf(ErrMalformedRow, "no position in %q", posText)
	}
	positionRank, err := parseInt(m[2])
	if err != nil {
		return player.RawRecord{}, err
	}

	var team string
	if teamTag := label.Find("small.grey").First(); teamTag.Length() > 0 {
		team = cellText(teamTag)
	}

	return player.RawRecord{
		Name:         cellText(nameTag),
		Position:     m[1],
		Team:         team,
		Source:       player.SourceFantasyPros,
		Rank:         intPtr(rank),
		PositionRank: intPtr(positionRank),
	}, nil
}

// ParsePPG ignores every row up to and including the one carrying the
// "Player" column header.
func (p FantasyProsParser) ParsePPG(r io.Reader) (Result, error) {
	doc, err := newDocument(r)
	if err != nil {
		return Result{}, err
	}

	var res Result
	table := doc.Find("table.table-bordered").First()
	if table.Length() == 0 {
		return res, nil
	}
	res.TableFound = true

	inBody := false
	table.Find("tr").Each(func(i int, row *goquery.Selection) {
		if i < 1 {
			return
		}
		if !inBody {
			inBody = strings.Contains(row.Text(), "Player")
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

func (FantasyProsParser) ppgRow(row *goquery.Selection) (player.RawRecord, error) {
	link := row.Find("td.player-label a").First()
	if link.Length() == 0 {
		return player.RawRecord{}, errors.Wrap(ErrMalformedRow, "no player link")
	}
	ppg, err := parseFloat(row.Find("td").Last().Text())
	if err != nil {
		return player.RawRecord{}, err
	}

	return player.RawRecord{
		Name:         cellText(link),
		Source:       player.SourceFantasyPros,
		ProjectedPPG: floatPtr(ppg),
	}, nil
}
