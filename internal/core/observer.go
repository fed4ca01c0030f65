package core

// observer.go exposes load progress and lookup outcomes to whatever renders
// them. The core never reads these notifications back.

import (
	"context"
	"sync"
	"time"

	"github.com/JonMunkholm/alcheck/internal/logging"
	"github.com/google/uuid"
)

// Status strings shown to participants.
const (
	StatusIdle    = "Spreadsheet not loaded yet."
	StatusLoading = "Loading spreadsheet…"
	StatusLoaded  = "Spreadsheet loaded. Enter an email address to search."
	StatusFailed  = "Failed to load the spreadsheet. Check the URL and publish settings."
)

// LoadEvent is emitted when a load starts and when it settles.
type LoadEvent struct {
	State    LoadState
	LoadID   uuid.UUID
	Source   string
	Entries  int
	Err      error
	Duration time.Duration
	At       time.Time
}

// Status returns the human-readable line for the event.
func (e LoadEvent) Status() string {
	switch e.State {
	case LoadStateLoading:
		return StatusLoading
	case LoadStateLoaded:
		return StatusLoaded
	case LoadStateFailed:
		return StatusFailed
	default:
		return StatusIdle
	}
}

// LookupEvent is emitted once per Find call.
type LookupEvent struct {
	Result   Result
	Err      error
	ClientIP string
	Duration time.Duration
}

// Observer receives load and lookup notifications. Implementations must be
// safe for concurrent use and must not block.
type Observer interface {
	OnLoadState(ctx context.Context, e LoadEvent)
	OnLookup(ctx context.Context, e LookupEvent)
}

// Headline and Message describe a lookup result for display.
func (r Result) Headline() string {
	switch r.Outcome {
	case OutcomeMatched:
		return "Match found."
	case OutcomeNotFound:
		return "No match found."
	default:
		return ""
	}
}

func (r Result) Message() string {
	switch r.Outcome {
	case OutcomeMatched:
		return "Check ⭕ / ❌ for each item."
	case OutcomeNotFound:
		return "This email address is not registered in the sheet."
	case OutcomeInvalid:
		return "Please enter an email address."
	case OutcomeLoadError:
		return StatusFailed
	default:
		return ""
	}
}

// NopObserver discards all notifications.
type NopObserver struct{}

func (NopObserver) OnLoadState(context.Context, LoadEvent) {}
func (NopObserver) OnLookup(context.Context, LookupEvent)  {}

// MultiObserver fans notifications out in order.
type MultiObserver []Observer

func (m MultiObserver) OnLoadState(ctx context.Context, e LoadEvent) {
	for _, o := range m {
		o.OnLoadState(ctx, e)
	}
}

func (m MultiObserver) OnLookup(ctx context.Context, e LookupEvent) {
	for _, o := range m {
		o.OnLookup(ctx, e)
	}
}

// LogObserver writes notifications to the request-scoped slog logger.
type LogObserver struct{}

func (LogObserver) OnLoadState(ctx context.Context, e LoadEvent) {
	logger := logging.WithFields(ctx, "load_id", e.LoadID, "source", e.Source)

	switch e.State {
	case LoadStateLoading:
		logger.Info("dataset load started")
	case LoadStateLoaded:
		logger.Info("dataset loaded",
			"entries", e.Entries,
			"duration_ms", e.Duration.Milliseconds(),
		)
	case LoadStateFailed:
		msg := MapError(e.Err)
		logger.Error("dataset load failed",
			"error", e.Err,
			"code", msg.Code,
			"duration_ms", e.Duration.Milliseconds(),
		)
	}
}

func (LogObserver) OnLookup(ctx context.Context, e LookupEvent) {
	logger := logging.FromContext(ctx)
	args := []any{
		"lookup_id", e.Result.LookupID,
		"outcome", e.Result.Outcome,
		"duration_ms", e.Duration.Milliseconds(),
	}
	if e.ClientIP != "" {
		args = append(args, "ip", e.ClientIP)
	}

	if e.Err != nil && e.Result.Outcome == OutcomeLoadError {
		logger.Warn("lookup failed", append(args, "error", e.Err)...)
		return
	}
	logger.Debug("lookup", args...)
}

// StatusBoard keeps the latest load event and lookup counters for status
// endpoints.
type StatusBoard struct {
	mu       sync.RWMutex
	last     LoadEvent
	lastErr  error
	outcomes map[Outcome]int64
}

// NewStatusBoard creates an empty board in the idle state.
func NewStatusBoard() *StatusBoard {
	return &StatusBoard{
		last:     LoadEvent{State: LoadStateIdle},
		outcomes: make(map[Outcome]int64),
	}
}

func (b *StatusBoard) OnLoadState(_ context.Context, e LoadEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.last = e
	if e.State == LoadStateFailed {
		b.lastErr = e.Err
	} else if e.State == LoadStateLoaded {
		b.lastErr = nil
	}
}

func (b *StatusBoard) OnLookup(_ context.Context, e LookupEvent) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.outcomes[e.Result.Outcome]++
}

// BoardSnapshot is a copy of the board's state.
type BoardSnapshot struct {
	State   LoadState         `json:"state"`
	Status  string            `json:"status"`
	Entries int               `json:"entries"`
	LoadID  string            `json:"loadId,omitempty"`
	At      time.Time         `json:"at,omitempty"`
	Error   *UserMessage      `json:"error,omitempty"`
	Lookups map[Outcome]int64 `json:"lookups"`
}

// Snapshot returns the current state.
func (b *StatusBoard) Snapshot() BoardSnapshot {
	b.mu.RLock()
	defer b.mu.RUnlock()

	snap := BoardSnapshot{
		State:   b.last.State,
		Status:  b.last.Status(),
		Entries: b.last.Entries,
		At:      b.last.At,
		Lookups: make(map[Outcome]int64, len(b.outcomes)),
	}
	if b.last.LoadID != uuid.Nil {
		snap.LoadID = b.last.LoadID.String()
	}
	if b.lastErr != nil {
		msg := MapError(b.lastErr)
		snap.Error = &msg
	}
	for k, v := range b.outcomes {
		snap.Lookups[k] = v
	}
	return snap
}
