package render

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/util"
	"github.com/samber/lo"
)

// Selector narrows the items of a feed.
type Selector func([]*source.ItemSummary) []*source.ItemSummary

var rangeSelector = regexp.MustCompile(`^(?P<from>\d+)-(?P<to>\d+)$`)

// ParseSelector understands "first", "last", "all", a position "N", an inclusive
// range "A-B" and a case-insensitive title substring "@text@". Positions are
// zero-based, as printed next to each feed item.
func ParseSelector(description string) (Selector, error) {
	switch description {
	case "", "all":
		return func(items []*source.ItemSummary) []*source.ItemSummary {
			return items
		}, nil
	case "first":
		return func(items []*source.ItemSummary) []*source.ItemSummary {
			return items[:util.Min(1, len(items))]
		}, nil
	case "last":
		return func(items []*source.ItemSummary) []*source.ItemSummary {
			return items[util.Max(0, len(items)-1):]
		}, nil
	}

	if groups := util.ReGroups(rangeSelector, description); len(groups) == 2 {
		from, err1 := strconv.Atoi(groups["from"])
		to, err2 := strconv.Atoi(groups["to"])
		if err1 == nil && err2 == nil {
			return func(items []*source.ItemSummary) []*source.ItemSummary {
				start := util.Min(from, len(items))
				end := util.Min(to+1, len(items))
				if start >= end {
					return []*source.ItemSummary{}
				}
				return items[start:end]
			}, nil
		}
	}

	if len(description) >= 2 && strings.HasPrefix(description, "@") && strings.HasSuffix(description, "@") {
		sub := strings.ToLower(description[1 : len(description)-1])
		return func(items []*source.ItemSummary) []*source.ItemSummary {
			return lo.Filter(items, func(item *source.ItemSummary, _ int) bool {
				return strings.Contains(strings.ToLower(item.Title), sub)
			})
		}, nil
	}

	if idx, err := strconv.Atoi(description); err == nil && idx >= 0 {
		return func(items []*source.ItemSummary) []*source.ItemSummary {
			if len(items) <= idx {
				return []*source.ItemSummary{}
			}
			return []*source.ItemSummary{items[idx]}
		}, nil
	}

	return nil, fmt.Errorf("invalid selector: %s", description)
}
