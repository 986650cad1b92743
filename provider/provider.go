// Package provider wires the built-in publisher adapters to their dependencies.
package provider

import (
	"fmt"
	"strings"

	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/provider/ard"
	"github.com/mediathek-cli/mediathek/provider/arte"
	"github.com/mediathek-cli/mediathek/provider/srf"
	"github.com/mediathek-cli/mediathek/provider/zdf"
	"github.com/mediathek-cli/mediathek/source"
	"github.com/mediathek-cli/mediathek/token"
)

// Deps are the shared services adapters are built from.
type Deps struct {
	Transport network.Transport
	Tokens    *token.Manager
}

// DepsFromConfig builds the configured HTTP client and token store.
func DepsFromConfig() (Deps, error) {
	transport := network.FromConfig()

	store, err := token.FromConfig()
	if err != nil {
		return Deps{}, err
	}

	return Deps{Transport: transport, Tokens: token.NewManager(store, transport)}, nil
}

// Provider describes one publisher adapter.
type Provider struct {
	ID   source.Publisher
	Name string
	// TokenName is the API token the adapter depends on, empty when it needs none.
	TokenName string
	// TokenSeedURL is the page the token is scraped from.
	TokenSeedURL string
	CreateSource func(Deps) source.Source
}

func (p *Provider) String() string {
	return p.Name
}

func zdfProvider(cfg zdf.Config) *Provider {
	return &Provider{
		ID:           cfg.Publisher,
		Name:         cfg.Publisher.Name(),
		TokenName:    cfg.TokenName,
		TokenSeedURL: cfg.TokenSeedURL,
		CreateSource: func(d Deps) source.Source {
			return zdf.New(cfg, d.Transport, d.Tokens)
		},
	}
}

// Builtins returns every provider in publisher order.
func Builtins() []*Provider {
	providers := make([]*Provider, 0, len(source.Publishers()))
	for _, p := range source.Publishers() {
		providers = append(providers, lookup(p))
	}
	return providers
}

func lookup(p source.Publisher) *Provider {
	switch p {
	case source.ARD:
		return &Provider{ID: p, Name: p.Name(), CreateSource: func(d Deps) source.Source {
			return ard.New(d.Transport)
		}}
	case source.Arte:
		return &Provider{ID: p, Name: p.Name(), CreateSource: func(d Deps) source.Source {
			return arte.New(d.Transport)
		}}
	case source.ZDF:
		return zdfProvider(zdf.ZDF)
	case source.SRF:
		return &Provider{ID: p, Name: p.Name(), CreateSource: func(d Deps) source.Source {
			return srf.New(d.Transport)
		}}
	case source.DreiSat:
		return zdfProvider(zdf.DreiSat)
	}
	return nil
}

// Get finds a provider by publisher id or display name, ignoring case.
func Get(name string) (*Provider, bool) {
	for _, p := range Builtins() {
		if strings.EqualFold(string(p.ID), name) || strings.EqualFold(p.Name, name) {
			return p, true
		}
	}
	return nil, false
}

// For returns the adapter of publisher.
func For(publisher source.Publisher, deps Deps) (source.Source, error) {
	p := lookup(publisher)
	if p == nil {
		return nil, source.Fail(source.SchemeError, string(publisher), "unknown publisher")
	}
	if deps.Transport == nil {
		return nil, fmt.Errorf("provider %s: no transport", p.Name)
	}
	if p.TokenName != "" && deps.Tokens == nil {
		return nil, fmt.Errorf("provider %s: no token manager", p.Name)
	}
	return p.CreateSource(deps), nil
}
