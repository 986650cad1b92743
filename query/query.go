// Package query narrows program listings down to the names a user asked for.
package query

import (
	"strings"

	levenshtein "github.com/ka-weihe/fast-levenshtein"
	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mediathek-cli/mediathek/key"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
	"golang.org/x/exp/slices"
)

// Programs filters by name using the programs.fuzzy setting.
func Programs(programs []*source.Program, q string) []*source.Program {
	return Filter(programs, q, viper.GetBool(key.ProgramsFuzzy))
}

// Filter keeps the programs whose name matches q and orders them by edit distance
// to q, closest first. Programs at the same distance keep their listing order.
// An empty q keeps everything in listing order.
func Filter(programs []*source.Program, q string, fuzzyMatch bool) []*source.Program {
	q = sanitize(q)
	if q == "" {
		return programs
	}

	matched := lo.Filter(programs, func(p *source.Program, _ int) bool {
		name := sanitize(p.Name)
		if fuzzyMatch {
			return fuzzy.MatchNormalizedFold(q, name)
		}
		return strings.Contains(name, q)
	})

	distances := lo.SliceToMap(matched, func(p *source.Program) (*source.Program, int) {
		return p, levenshtein.Distance(q, sanitize(p.Name))
	})
	slices.SortStableFunc(matched, func(a, b *source.Program) int {
		return distances[a] - distances[b]
	})

	return matched
}

// Closest returns the candidate with the smallest edit distance to s.
func Closest(s string, candidates []string) mo.Option[string] {
	if len(candidates) == 0 {
		return mo.None[string]()
	}

	s = sanitize(s)
	return mo.Some(lo.MinBy(candidates, func(a, b string) bool {
		return levenshtein.Distance(s, sanitize(a)) < levenshtein.Distance(s, sanitize(b))
	}))
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
