package core

// loader.go owns the in-memory dataset.
//
// The dataset is loaded on first use and then cached for the life of the
// Loader. At most one fetch runs at a time: callers that arrive while a load
// is in flight wait for that load and share its result instead of starting
// another one. A completed load replaces the dataset in a single pointer
// swap, so readers see either the old snapshot or the new one, never a mix.
//
// A failed load leaves the previous dataset in place (nil on the first load)
// and is not retried automatically; the next EnsureLoaded or Reload call
// tries again.

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/JonMunkholm/alcheck/internal/sheet"
	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"
)

// Fetcher opens the source body. *fetch.Client satisfies it.
type Fetcher interface {
	Open(ctx context.Context, url string) (io.ReadCloser, error)
}

// LoaderConfig describes where a dataset comes from and how to decode it.
type LoaderConfig struct {
	URL      string
	Schema   Schema
	Read     sheet.ReadOptions
	Observer Observer
}

// Loader fetches, parses and caches one dataset.
type Loader struct {
	fetcher  Fetcher
	url      string
	schema   Schema
	read     sheet.ReadOptions
	observer Observer

	dataset atomic.Pointer[Dataset]
	group   singleflight.Group
	fetches atomic.Int64

	mu      sync.Mutex
	state   LoadState
	lastErr error
}

const loadKey = "dataset"

// NewLoader validates cfg and returns an idle Loader. No network access
// happens until the first EnsureLoaded or Reload.
func NewLoader(f Fetcher, cfg LoaderConfig) (*Loader, error) {
	if f == nil {
		return nil, errors.New("loader: fetcher is required")
	}
	if cfg.URL == "" {
		return nil, errors.New("loader: source URL is required")
	}
	if err := cfg.Schema.Validate(); err != nil {
		return nil, fmt.Errorf("loader: schema %q: %w", cfg.Schema.Name, err)
	}
	if cfg.Observer == nil {
		cfg.Observer = NopObserver{}
	}

	return &Loader{
		fetcher:  f,
		url:      cfg.URL,
		schema:   cfg.Schema,
		read:     cfg.Read,
		observer: cfg.Observer,
		state:    LoadStateIdle,
	}, nil
}

// EnsureLoaded returns immediately once a dataset is cached. Otherwise it
// starts a load, or joins the one already in flight, and waits for it.
//
// ctx bounds only this caller's wait. The fetch itself is not cancelled
// when a waiting caller gives up.
func (l *Loader) EnsureLoaded(ctx context.Context) error {
	if l.dataset.Load() != nil {
		return nil
	}
	return l.load(ctx, false)
}

// Reload fetches the source again even when a dataset is cached. On
// failure the cached dataset stays in place.
func (l *Loader) Reload(ctx context.Context) error {
	return l.load(ctx, true)
}

func (l *Loader) load(ctx context.Context, force bool) error {
	detached := context.WithoutCancel(ctx)

	ch := l.group.DoChan(loadKey, func() (any, error) {
		// A load may have completed between the caller's check and now.
		if !force && l.dataset.Load() != nil {
			return nil, nil
		}
		return nil, l.run(detached)
	})

	select {
	case res := <-ch:
		return res.Err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// run performs one fetch/parse/coerce cycle. It always settles the state,
// success or failure.
func (l *Loader) run(ctx context.Context) (err error) {
	loadID := uuid.New()
	start := time.Now()

	l.setState(LoadStateLoading, nil)
	l.observer.OnLoadState(ctx, LoadEvent{
		State:   LoadStateLoading,
		LoadID:  loadID,
		Source:  l.url,
		Entries: l.dataset.Load().Len(),
		At:      start,
	})

	var ds *Dataset
	defer func() {
		event := LoadEvent{
			LoadID:   loadID,
			Source:   l.url,
			Duration: time.Since(start),
			At:       time.Now(),
		}

		if err != nil {
			err = &LoadError{Source: l.url, LoadID: loadID, Err: err}
			event.State = LoadStateFailed
			event.Err = err
			event.Entries = l.dataset.Load().Len()

			// A reload failure keeps serving the previous snapshot.
			if l.dataset.Load() != nil {
				l.setState(LoadStateLoaded, err)
			} else {
				l.setState(LoadStateFailed, err)
			}
		} else {
			l.dataset.Store(ds)
			l.setState(LoadStateLoaded, nil)
			event.State = LoadStateLoaded
			event.Entries = ds.Len()
		}

		l.observer.OnLoadState(ctx, event)
	}()

	ds, err = l.fetch(ctx, loadID)
	return err
}

func (l *Loader) fetch(ctx context.Context, loadID uuid.UUID) (*Dataset, error) {
	l.fetches.Add(1)

	body, err := l.fetcher.Open(ctx, l.url)
	if err != nil {
		return nil, err
	}
	defer func() { _ = body.Close() }()

	records, err := sheet.Read(body, l.read)
	if err != nil {
		return nil, err
	}

	if len(records) > 0 && !hasColumn(records[0], l.schema.IdentifierColumn) {
		slog.Warn("identifier column missing from source header",
			"column", l.schema.IdentifierColumn,
			"header", records[0].Columns(),
			"load_id", loadID,
		)
	}

	entries := make([]Entry, len(records))
	blank := 0
	for i, rec := range records {
		entries[i] = l.schema.Coerce(rec)
		if entries[i].Identifier == "" {
			blank++
		}
	}
	if blank > 0 {
		slog.Debug("entries without identifier", "count", blank, "load_id", loadID)
	}

	return &Dataset{
		Schema:   l.schema,
		Entries:  entries,
		LoadID:   loadID,
		LoadedAt: time.Now(),
		Source:   l.url,
	}, nil
}

func hasColumn(rec sheet.Record, column string) bool {
	for _, c := range rec.Columns() {
		if strings.EqualFold(c, column) {
			return true
		}
	}
	return false
}

func (l *Loader) setState(s LoadState, err error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.state = s
	l.lastErr = err
}

// State returns the current lifecycle state.
func (l *Loader) State() LoadState {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.state
}

// LastError returns the error of the most recent load, nil after a success.
func (l *Loader) LastError() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.lastErr
}

// Dataset returns the cached snapshot, or nil before the first successful
// load. Callers must treat it as read-only.
func (l *Loader) Dataset() *Dataset {
	return l.dataset.Load()
}

// Schema returns the schema every entry is coerced with.
func (l *Loader) Schema() Schema {
	return l.schema
}

// Source returns the configured source URL.
func (l *Loader) Source() string {
	return l.url
}

// FetchCount returns how many fetches were issued so far.
func (l *Loader) FetchCount() int64 {
	return l.fetches.Load()
}
