package core

import (
	"time"

	"github.com/google/uuid"
)

// FlagSpec maps one eligibility flag to its spreadsheet column.
type FlagSpec struct {
	Key    string `yaml:"key" json:"key"`       // Stable identifier: "chargeAL"
	Column string `yaml:"column" json:"column"` // Header name in the export: "ChargeAL"
	Label  string `yaml:"label" json:"label"`   // Display name: "Charge AL"
}

// Schema is the fixed field-name mapping applied to every record of a
// dataset. It is resolved once when a Loader is built.
type Schema struct {
	Name             string     `yaml:"name" json:"name"`
	IdentifierColumn string     `yaml:"identifier_column" json:"identifierColumn"`
	Flags            []FlagSpec `yaml:"flags" json:"flags"`
}

// FlagKeys returns flag keys in schema order.
func (s Schema) FlagKeys() []string {
	keys := make([]string, len(s.Flags))
	for i, f := range s.Flags {
		keys[i] = f.Key
	}
	return keys
}

// Entry is a normalized row. Flags holds exactly one value per schema flag.
type Entry struct {
	Identifier string          `json:"identifier"`
	Flags      map[string]bool `json:"flags"`
}

// Flag returns the value of key, false when the schema has no such flag.
func (e Entry) Flag(key string) bool {
	return e.Flags[key]
}

// Dataset is an immutable, fully coerced snapshot of the source.
type Dataset struct {
	Schema   Schema
	Entries  []Entry
	LoadID   uuid.UUID
	LoadedAt time.Time
	Source   string
}

// Len returns the number of entries.
func (d *Dataset) Len() int {
	if d == nil {
		return 0
	}
	return len(d.Entries)
}

// Find scans entries in order and returns the first whose identifier equals
// id. id must already be normalized.
func (d *Dataset) Find(id string) (*Entry, bool) {
	if d == nil || id == "" {
		return nil, false
	}
	for i := range d.Entries {
		if d.Entries[i].Identifier == id {
			return &d.Entries[i], true
		}
	}
	return nil, false
}

// LoadState is the lifecycle of a Loader's dataset.
type LoadState string

const (
	LoadStateIdle    LoadState = "idle"
	LoadStateLoading LoadState = "loading"
	LoadStateLoaded  LoadState = "loaded"
	LoadStateFailed  LoadState = "failed"
)

// Outcome classifies a lookup. The empty Outcome means no lookup was made.
type Outcome string

const (
	OutcomeNone      Outcome = ""
	OutcomeInvalid   Outcome = "invalid"
	OutcomeLoadError Outcome = "load_error"
	OutcomeNotFound  Outcome = "not_found"
	OutcomeMatched   Outcome = "matched"
)

// FlagState is the tri-state shown for one flag.
type FlagState int

const (
	FlagUnknown FlagState = iota // nothing searched yet, or the search failed
	FlagNo
	FlagYes
)

func (s FlagState) String() string {
	switch s {
	case FlagYes:
		return "yes"
	case FlagNo:
		return "no"
	default:
		return "unknown"
	}
}

// Result is the answer to one lookup.
type Result struct {
	LookupID   uuid.UUID
	Outcome    Outcome
	Query      string // as typed
	Identifier string // normalized
	Entry      *Entry // set only for OutcomeMatched
}

// Flag reports key for rendering. A completed search with no match reads
// as FlagNo for every flag.
func (r Result) Flag(key string) FlagState {
	switch r.Outcome {
	case OutcomeMatched:
		if r.Entry != nil && r.Entry.Flag(key) {
			return FlagYes
		}
		return FlagNo
	case OutcomeNotFound:
		return FlagNo
	default:
		return FlagUnknown
	}
}

// Found reports whether the lookup matched an entry.
func (r Result) Found() bool {
	return r.Outcome == OutcomeMatched && r.Entry != nil
}
