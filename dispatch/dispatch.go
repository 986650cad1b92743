// Package dispatch routes URNs to publisher adapters and stamps the results.
package dispatch

import (
	"context"
	"sync"
	"time"

	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/provider"
	"github.com/mediathek-cli/mediathek/resolver"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/urn"
	"github.com/samber/lo"
)

// Dispatcher is safe for concurrent use.
type Dispatcher struct {
	// Clock supplies capture timestamps.
	Clock func() time.Time

	deps provider.Deps

	mu      sync.Mutex
	sources map[source.Publisher]source.Source
}

func New(deps provider.Deps) *Dispatcher {
	return &Dispatcher{
		Clock:   time.Now,
		deps:    deps,
		sources: make(map[source.Publisher]source.Source),
	}
}

func (d *Dispatcher) source(p source.Publisher) (source.Source, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if src, ok := d.sources[p]; ok {
		return src, nil
	}

	src, err := provider.For(p, d.deps)
	if err != nil {
		return nil, err
	}
	d.sources[p] = src
	return src, nil
}

func (d *Dispatcher) captured() *int64 {
	return lo.ToPtr(d.Clock().Unix())
}

// ResolveURLToURN maps a publisher page URL to the URN it addresses.
func (d *Dispatcher) ResolveURLToURN(rawURL string) (urn.URN, error) {
	return resolver.Resolve(rawURL)
}

// lookup parses s as a URN of the given kind and returns the adapter serving it.
func (d *Dispatcher) lookup(s string, kind source.Kind) (urn.URN, source.Source, error) {
	u, err := urn.ParseAs(s, kind)
	if err != nil {
		return urn.URN{}, nil, err
	}

	src, err := d.source(u.Publisher)
	if err != nil {
		return urn.URN{}, nil, err
	}

	log.WithFields(log.Fields{"urn": s, "publisher": u.Publisher}).Debug("dispatching")
	return u, src, nil
}

// MetadataForItem reads the item addressed by an item URN.
func (d *Dispatcher) MetadataForItem(ctx context.Context, s string) (*source.Item, error) {
	u, src, err := d.lookup(s, source.KindItem)
	if err != nil {
		return nil, err
	}

	item, err := src.ReadItemByID(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	item.URN = u.String()
	item.Captured = d.captured()
	return item, nil
}

// MetadataForProgram reads the program addressed by a program URN.
func (d *Dispatcher) MetadataForProgram(ctx context.Context, s string) (*source.Program, error) {
	u, src, err := d.lookup(s, source.KindProgram)
	if err != nil {
		return nil, err
	}

	program, err := src.ReadProgram(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	program.URN = u.String()
	program.Captured = d.captured()
	return program, nil
}

// ProgramFeed lists the current items of the program addressed by a program URN.
func (d *Dispatcher) ProgramFeed(ctx context.Context, s string) (*source.Feed, error) {
	u, src, err := d.lookup(s, source.KindProgram)
	if err != nil {
		return nil, err
	}

	descriptor, err := src.FeedDescriptorForProgram(ctx, u.ID)
	if err != nil {
		return nil, err
	}

	items, err := src.ReadProgramFeed(ctx, descriptor)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []*source.ItemSummary{}
	}

	return &source.Feed{Items: items}, nil
}

// ProgramList lists every program of publisher, each with its URN.
func (d *Dispatcher) ProgramList(ctx context.Context, publisher string) ([]*source.Program, error) {
	p, err := source.ParsePublisher(publisher)
	if err != nil {
		return nil, err
	}

	src, err := d.source(p)
	if err != nil {
		return nil, err
	}

	programs, err := src.ReadListOfPrograms(ctx)
	if err != nil {
		return nil, err
	}

	if programs == nil {
		programs = []*source.Program{}
	}
	for _, program := range programs {
		program.URN = urn.New(p, source.KindProgram, program.ID).String()
	}

	log.WithFields(log.Fields{"publisher": p, "programs": len(programs)}).Info("program list read")
	return programs, nil
}
