// Package saved keeps the user's saved-recipes list.
//
// The list lives under a single key in a key/value Storage as a JSON array,
// most recently saved first, unique by URL and capped at MaxItems. Reads fail
// soft: a missing, unreadable or malformed value is an empty list.
package saved

import (
	"encoding/json"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/abelbrown/opskrifter/internal/catalog"
	"github.com/abelbrown/opskrifter/internal/logging"
	"github.com/abelbrown/opskrifter/internal/metrics"
	"github.com/abelbrown/opskrifter/internal/otel"
)

const (
	// StorageKey is the namespaced key holding the list.
	StorageKey = "opskrifter.saved.v1"

	// MaxItems caps the list; older entries are evicted silently.
	MaxItems = 200

	// DefaultTitle replaces a missing title.
	DefaultTitle = "Recipe"
)

// Item is a saved recipe reference.
type Item struct {
	Title string `json:"title"`
	URL   string `json:"url"`
	Image string `json:"image"`
}

// FromRecipe projects a catalog record onto a saved item.
func FromRecipe(r catalog.Recipe) Item {
	return Item{Title: r.Title, URL: r.URL, Image: r.Image}
}

// Snapshot is the list as read at one revision. The revision grows with
// every persisted write, so of two snapshots the larger Rev is newer.
type Snapshot struct {
	Items []Item
	Rev   uint64
}

// Storage is the browser-profile style key/value contract the list is
// persisted through. *store.Store satisfies it.
type Storage interface {
	GetItem(key string) (string, bool, error)
	SetItem(key, value string) error
	RemoveItem(key string) error
}

// Store is the saved-recipes list. Safe for concurrent use: each mutation
// is a serialized read-modify-write of the whole list.
type Store struct {
	mu      sync.Mutex
	rev     uint64 // guarded by mu
	storage Storage
	key     string
	max     int
	logger  *otel.Logger
	metrics *metrics.Metrics
}

// Option configures a Store.
type Option func(*Store)

// WithLogger attaches an event logger.
func WithLogger(l *otel.Logger) Option {
	return func(s *Store) { s.logger = l }
}

// WithMetrics attaches Prometheus collectors.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Store) { s.metrics = m }
}

// WithKey overrides StorageKey.
func WithKey(key string) Option {
	return func(s *Store) { s.key = key }
}

// New creates a Store backed by storage.
func New(storage Storage, opts ...Option) *Store {
	s := &Store{storage: storage, key: StorageKey, max: MaxItems}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// NormalizeURL is the identity used for comparisons: surrounding whitespace
// is trimmed and, for absolute URLs, scheme and host are lower-cased. Path,
// query and fragment stay case-sensitive.
func NormalizeURL(raw string) string {
	s := strings.TrimSpace(raw)
	if s == "" {
		return ""
	}
	u, err := url.Parse(s)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return s
	}
	u.Scheme = strings.ToLower(u.Scheme)
	u.Host = strings.ToLower(u.Host)
	return u.String()
}

func normalizeItem(it Item) Item {
	out := Item{
		Title: strings.TrimSpace(it.Title),
		URL:   NormalizeURL(it.URL),
		Image: strings.TrimSpace(it.Image),
	}
	if out.Title == "" {
		out.Title = DefaultTitle
	}
	return out
}

// List returns the persisted list. It never fails: absent, unreadable or
// malformed data yields an empty list.
func (s *Store) List() []Item {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.read()
}

// Snapshot returns the list together with the revision it was read at.
func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return Snapshot{Items: s.read(), Rev: s.rev}
}

// IsSaved reports whether an item with the normalized url is in the list.
func (s *Store) IsSaved(rawURL string) bool {
	return Contains(s.List(), rawURL)
}

// Add inserts item at the front unless its url is empty or already saved,
// then truncates to MaxItems. It returns the resulting list.
func (s *Store) Add(item Item) ([]Item, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.add(s.read(), item)
}

// add must be called with s.mu held.
func (s *Store) add(items []Item, item Item) ([]Item, error) {
	it := normalizeItem(item)
	if it.URL == "" || Contains(items, it.URL) {
		s.metrics.IncMutation("add", "noop")
		s.logger.Emit(otel.Event{Level: otel.LevelDebug, Kind: otel.KindSavedSkip, Comp: "saved", URL: it.URL})
		return items, nil
	}

	items = append([]Item{it}, items...)
	if len(items) > s.max {
		items = items[:s.max]
	}

	if err := s.write(items); err != nil {
		return s.read(), err
	}
	s.metrics.IncMutation("add", "applied")
	s.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSavedAdd, Comp: "saved", URL: it.URL, Count: len(items)})
	return items, nil
}

// Remove drops every entry with the normalized url and persists the rest,
// even when nothing matched. It returns the resulting snapshot.
func (s *Store) Remove(rawURL string) (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	items, err := s.remove(s.read(), rawURL)
	return Snapshot{Items: items, Rev: s.rev}, err
}

// remove must be called with s.mu held.
func (s *Store) remove(items []Item, rawURL string) ([]Item, error) {
	target := NormalizeURL(rawURL)
	kept := make([]Item, 0, len(items))
	for _, it := range items {
		if it.URL != target {
			kept = append(kept, it)
		}
	}

	if err := s.write(kept); err != nil {
		return s.read(), err
	}

	outcome := "applied"
	if len(kept) == len(items) {
		outcome = "noop"
	}
	s.metrics.IncMutation("remove", outcome)
	s.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSavedRemove, Comp: "saved", URL: target, Count: len(kept)})
	return kept, nil
}

// Clear deletes the stored list. An absent list is not an error.
func (s *Store) Clear() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.storage.RemoveItem(s.key); err != nil {
		s.metrics.IncMutation("clear", "error")
		s.logger.Error(otel.KindSavedWriteFail, "saved", err)
		return Snapshot{Items: s.read(), Rev: s.rev}, fmt.Errorf("clear saved list: %w", err)
	}
	s.rev++
	s.metrics.IncMutation("clear", "applied")
	s.metrics.SetSavedItems(0)
	s.logger.Emit(otel.Event{Level: otel.LevelInfo, Kind: otel.KindSavedRemove, Comp: "saved", Msg: "cleared"})
	return Snapshot{Items: []Item{}, Rev: s.rev}, nil
}

// Toggle removes the item when saved and adds it otherwise, under one lock.
// The bool is the saved state afterwards.
func (s *Store) Toggle(item Item) (Snapshot, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := s.read()
	if Contains(items, item.URL) {
		items, err := s.remove(items, item.URL)
		return Snapshot{Items: items, Rev: s.rev}, false, err
	}
	items, err := s.add(items, item)
	return Snapshot{Items: items, Rev: s.rev}, Contains(items, item.URL), err
}

// read must be called with s.mu held.
func (s *Store) read() []Item {
	raw, ok, err := s.storage.GetItem(s.key)
	if err != nil {
		s.readFailed(err)
		return []Item{}
	}
	if !ok || strings.TrimSpace(raw) == "" {
		return []Item{}
	}

	var stored []Item
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		s.readFailed(fmt.Errorf("decode saved list: %w", err))
		return []Item{}
	}

	items := make([]Item, 0, len(stored))
	for _, it := range stored {
		it.URL = NormalizeURL(it.URL)
		if it.URL == "" {
			continue
		}
		items = append(items, it)
	}
	return items
}

// write must be called with s.mu held.
func (s *Store) write(items []Item) error {
	data, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("encode saved list: %w", err)
	}
	if err := s.storage.SetItem(s.key, string(data)); err != nil {
		s.metrics.IncMutation("write", "error")
		s.logger.Error(otel.KindSavedWriteFail, "saved", err)
		logging.Error("saved list write failed", "error", err)
		return fmt.Errorf("persist saved list: %w", err)
	}
	s.rev++
	s.metrics.SetSavedItems(len(items))
	return nil
}

func (s *Store) readFailed(err error) {
	s.metrics.IncReadFailure()
	s.logger.Error(otel.KindSavedReadError, "saved", err)
	logging.Warn("saved list unreadable, treating as empty", "error", err)
}

// Contains reports whether items holds rawURL, comparing normalized urls.
// Render code uses it to reconcile toggles against a list snapshot.
func Contains(items []Item, rawURL string) bool {
	target := NormalizeURL(rawURL)
	if target == "" {
		return false
	}
	for _, it := range items {
		if NormalizeURL(it.URL) == target {
			return true
		}
	}
	return false
}
