// Package token keeps publisher API tokens and obtains fresh ones by scraping the
// publisher's public web pages.
package token

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/mediathek-cli/mediathek/filesystem"
	"github.com/mediathek-cli/mediathek/key"
	"github.com/mediathek-cli/mediathek/where"
	"github.com/metafates/gache"
	"github.com/spf13/viper"
	"github.com/zalando/go-keyring"
)

// Store persists tokens by name (e.g. "api.zdf.de").
type Store interface {
	Get(name string) (string, bool)
	Set(name, value string) error
	Delete(name string) error
}

// Backend names accepted by token.store.
const (
	BackendMemory  = "memory"
	BackendFile    = "file"
	BackendKeyring = "keyring"
)

// FromConfig returns the store selected by token.store.
func FromConfig() (Store, error) {
	switch backend := viper.GetString(key.TokenStore); backend {
	case BackendMemory, "":
		return NewMemoryStore(), nil
	case BackendFile:
		return NewFileStore(where.Tokens()), nil
	case BackendKeyring:
		return NewKeyringStore(), nil
	default:
		return nil, fmt.Errorf("unknown token store %q", backend)
	}
}

// MemoryStore keeps tokens for the lifetime of the process.
type MemoryStore struct {
	mu     sync.RWMutex
	tokens map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{tokens: make(map[string]string)}
}

func (s *MemoryStore) Get(name string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.tokens[name]
	return v, ok
}

func (s *MemoryStore) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tokens[name] = value
	return nil
}

func (s *MemoryStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.tokens, name)
	return nil
}

// Record is a persisted token.
type Record struct {
	Value     string    `json:"value"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FileStore keeps tokens in a JSON file in the config directory.
type FileStore struct {
	mu    sync.Mutex
	cache *gache.Cache[map[string]Record]
}

func NewFileStore(path string) *FileStore {
	return &FileStore{
		cache: gache.New[map[string]Record](&gache.Options{
			Path:       path,
			FileSystem: &filesystem.GacheFs{},
		}),
	}
}

func (s *FileStore) load() map[string]Record {
	records, expired, err := s.cache.Get()
	if err != nil || expired || records == nil {
		return make(map[string]Record)
	}
	return records
}

func (s *FileStore) Get(name string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	r, ok := s.load()[name]
	return r.Value, ok
}

func (s *FileStore) Set(name, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.load()
	records[name] = Record{Value: value, UpdatedAt: time.Now()}
	return s.cache.Set(records)
}

func (s *FileStore) Delete(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	records := s.load()
	delete(records, name)
	return s.cache.Set(records)
}

// Records returns every stored token with its timestamp.
func (s *FileStore) Records() map[string]Record {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

const keyringService = "mediathek-cli"

// KeyringStore keeps tokens in the system keyring.
type KeyringStore struct{}

func NewKeyringStore() KeyringStore {
	return KeyringStore{}
}

func (KeyringStore) Get(name string) (string, bool) {
	v, err := keyring.Get(keyringService, name)
	if err != nil {
		return "", false
	}
	return v, true
}

func (KeyringStore) Set(name, value string) error {
	return keyring.Set(keyringService, name, value)
}

func (KeyringStore) Delete(name string) error {
	if err := keyring.Delete(keyringService, name); err != nil && !errors.Is(err, keyring.ErrNotFound) {
		return err
	}
	return nil
}
