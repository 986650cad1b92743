package token

import (
	"context"
	"fmt"
	"sync"

	"github.com/mediathek-cli/mediathek/log"
	"github.com/mediathek-cli/mediathek/network"
	"github.com/mediathek-cli/mediathek/source"
)

// Manager reads tokens from a Store and replaces them by scraping a seed page.
// Refreshes of the same token are serialized.
type Manager struct {
	store     Store
	transport network.Transport

	mu    sync.Mutex
	locks map[string]*sync.Mutex
}

func NewManager(store Store, transport network.Transport) *Manager {
	return &Manager{
		store:     store,
		transport: transport,
		locks:     make(map[string]*sync.Mutex),
	}
}

// Current returns the stored token. An absent token is returned as "" and false.
func (m *Manager) Current(name string) (string, bool) {
	return m.store.Get(name)
}

func (m *Manager) lock(name string) *sync.Mutex {
	m.mu.Lock()
	defer m.mu.Unlock()
	l, ok := m.locks[name]
	if !ok {
		l = &sync.Mutex{}
		m.locks[name] = l
	}
	return l
}

// Refresh fetches seedURL, scrapes a token from it and stores it under name.
// Failures are AuthErrors.
func (m *Manager) Refresh(ctx context.Context, name, seedURL string) (string, error) {
	l := m.lock(name)
	l.Lock()
	defer l.Unlock()

	return m.fetch(ctx, name, seedURL)
}

// Renew replaces the rejected token. If another caller already stored a
// different token while this one waited for the lock, that token is returned
// and the seed page is not fetched again.
func (m *Manager) Renew(ctx context.Context, name, seedURL, rejected string) (string, error) {
	l := m.lock(name)
	l.Lock()
	defer l.Unlock()

	if cur, ok := m.store.Get(name); ok && cur != rejected {
		log.WithFields(log.Fields{"token": name}).Debug("token already renewed")
		return cur, nil
	}

	return m.fetch(ctx, name, seedURL)
}

// fetch expects the caller to hold the lock for name.
func (m *Manager) fetch(ctx context.Context, name, seedURL string) (string, error) {
	log.WithFields(log.Fields{"token": name, "seed": seedURL}).Info("fetching fresh api token")

	html, err := network.Get(ctx, m.transport, seedURL, nil)
	if err != nil {
		return "", source.Fail(source.AuthError, seedURL, "fetch token page: %w", err)
	}

	tok, err := Scrape(html)
	if err != nil {
		return "", err
	}

	if err := m.store.Set(name, tok); err != nil {
		return "", fmt.Errorf("store token %s: %w", name, err)
	}

	return tok, nil
}

// Forget deletes the stored token.
func (m *Manager) Forget(name string) error {
	return m.store.Delete(name)
}
