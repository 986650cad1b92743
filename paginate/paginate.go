// Package paginate walks paged listings sequentially.
package paginate

import (
	"context"
	"fmt"

	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/source"
)

// Page is one response of a paged listing.
type Page[T any] struct {
	Records       []T
	TotalElements int
}

// PageFunc fetches page number page (0-based) of the listing identified by key.
type PageFunc[T any] func(ctx context.Context, key string, page, pageSize int) (*Page[T], error)

// Walk fetches every page of every key in order and concatenates the records.
//
// The page count is recomputed from each response as ceil(TotalElements/pageSize).
// A response reporting no elements is a ParseError. The first failure aborts the walk
// and no partial result is returned.
func Walk[T any](ctx context.Context, keys []string, pageSize int, fetch PageFunc[T]) ([]T, error) {
	if pageSize <= 0 {
		return nil, fmt.Errorf("page size must be positive, got %d", pageSize)
	}

	var records []T
	for _, key := range keys {
		for page, totalPages := 0, 1; page < totalPages; page++ {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			log.WithFields(log.Fields{"key": key, "page": page + 1}).Debug("fetching listing page")

			p, err := fetch(ctx, key, page, pageSize)
			if err != nil {
				return nil, err
			}
			if p == nil || p.TotalElements <= 0 {
				return nil, source.Fail(source.ParseError, key, "listing page %d reports no elements", page)
			}

			totalPages = (p.TotalElements + pageSize - 1) / pageSize
			records = append(records, p.Records...)
		}
	}

	return records, nil
}
