package player

import (
	"math"
	"regexp"
	"strings"
)

const (
	SimilarityExact     = 0.0
	SimilarityOneSided  = 1.0
	SimilarityBothSided = 2.0
	defenseSuffix       = " D/ST"
	doubleDefenseSuffix = " D/STD/ST"
)

var generationalSuffixRegex = regexp.MustCompile(` (Jr\.|Sr\.|II|III)$`)

// TeamNames are city/region prefixes stripped from team defense names, e.g.
// "Kansas City Chiefs" -> "Chiefs".
var TeamNames = []string{
	"Arizona",
	"Atlanta",
	"Baltimore",
	"Buffalo",
	"Carolina",
	"Chicago",
	"Cincinnati",
	"Cleveland",
	"Dallas",
	"Denver",
	"Detroit",
	"Green Bay",
	"Houston",
	"Indianapolis",
	"Jacksonville",
	"Kansas City",
	"Las Vegas",
	"Los Angeles",
	"Miami",
	"Minnesota",
	"New England",
	"New Orleans",
	"New York",
	"Oakland",
	"Philadelphia",
	"Pittsburgh",
	"San Francisco",
	"Seattle",
	"Tampa Bay",
	"Tennessee",
	"Washington",
}

// Simplify removes generational suffixes, defense markers and team city
// prefixes from a player name.
func Simplify(name string) string {
	name = generationalSuffixRegex.ReplaceAllString(name, "")
	name = strings.ReplaceAll(name, doubleDefenseSuffix, "")
	name = strings.ReplaceAll(name, defenseSuffix, "")
	for _, teamName := range TeamNames {
		name = strings.ReplaceAll(name, teamName+" ", "")
	}
	return name
}

// Similarity scores two names; lower is closer and +Inf means no match.
//
//	0: byte-exact
//	1: one side simplifies to the other's raw form
//	2: both sides simplify to the same string
func Similarity(a, b string) float64 {
	if a == b {
		return SimilarityExact
	}

	simplifiedA := Simplify(a)
	simplifiedB := Simplify(b)

	if simplifiedA == b || simplifiedB == a {
		return SimilarityOneSided
	}
	if simplifiedA == simplifiedB {
		return SimilarityBothSided
	}

	return math.Inf(1)
}

// FindMatch returns the index of the pool entry whose name is most similar to
// name. Ties go to the earliest entry. ok is false when the pool is empty or
// nothing matches.
func FindMatch(name string, pool []Player) (int, bool) {
	best := -1
	bestScore := math.Inf(1)
	for i := range pool {
		score := Similarity(name, pool[i].Name)
		if score < bestScore {
			best = i
			bestScore = score
		}
	}
	if best < 0 || math.IsInf(bestScore, 1) {
		return -1, false
	}
	return best, true
}
