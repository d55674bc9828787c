// Package namematch finds the closest player identifiers for a free-text
// name query.
package namematch

import (
	"sort"
	"strings"
)

// Match score thresholds.
const (
	exactScore     = 100
	fullNameScore  = 90
	partScore      = 60
	substringScore = 40
	minPartLen     = 3
)

// Match pairs a player identifier with its similarity score.
type Match struct {
	Player string `json:"player"`
	Score  int    `json:"score"`
}

// Best returns up to limit candidate players ordered by descending score.
// Names that share no significant part with the query are omitted.
func Best(names []string, query string, limit int) []Match {
	q := normalize(query)
	if q == "" {
		return []Match{}
	}

	matches := make([]Match, 0, limit)
	for _, name := range names {
		if s := score(normalize(name), q); s > 0 {
			matches = append(matches, Match{Player: name, Score: s})
		}
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Player < matches[j].Player
	})

	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}

// normalize lowercases and strips punctuation so that hyphenated and
// initialed names compare cleanly.
func normalize(name string) string {
	n := strings.ToLower(name)
	n = strings.ReplaceAll(n, "-", " ")
	n = strings.ReplaceAll(n, "'", "")
	n = strings.ReplaceAll(n, ".", " ")
	return strings.Join(strings.Fields(n), " ")
}

func score(name, query string) int {
	if name == query {
		return exactScore
	}

	nameParts := strings.Fields(name)
	queryParts := strings.Fields(query)

	// Full-name query: first and last part must both match.
	if len(nameParts) >= 2 && len(queryParts) >= 2 {
		firstMatch := partContains(nameParts[0], queryParts[0])
		lastMatch := partContains(nameParts[len(nameParts)-1], queryParts[len(queryParts)-1])
		if firstMatch && lastMatch {
			return fullNameScore
		}
	}

	// Single significant part matching a name part.
	for _, qp := range queryParts {
		if len(qp) < minPartLen {
			continue
		}
		for _, np := range nameParts {
			if np == qp {
				return partScore
			}
			if len(np) >= minPartLen && partContains(np, qp) {
				return substringScore
			}
		}
	}

	return 0
}

func partContains(a, b string) bool {
	return strings.Contains(a, b) || strings.Contains(b, a)
}
