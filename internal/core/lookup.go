package core

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Service answers eligibility lookups against a Loader's dataset. It
// borrows the dataset read-only and never changes it.
type Service struct {
	loader *Loader
}

// NewService creates a Service over loader. Lookup notifications go to the
// loader's observer.
func NewService(loader *Loader) *Service {
	return &Service{loader: loader}
}

// Loader returns the loader backing the service.
func (s *Service) Loader() *Loader {
	return s.loader
}

// Schema returns the flag schema entries are built with.
func (s *Service) Schema() Schema {
	return s.loader.Schema()
}

// Find looks up raw after normalizing it.
//
// Outcomes:
//   - blank raw: OutcomeInvalid with ErrEmptyIdentifier; the dataset is not loaded
//   - load failure: OutcomeLoadError with the *LoadError
//   - no entry: OutcomeNotFound with a nil error
//   - otherwise: OutcomeMatched with the first entry in dataset order
func (s *Service) Find(ctx context.Context, raw string) (result Result, err error) {
	start := time.Now()
	result = Result{
		LookupID:   uuid.New(),
		Query:      raw,
		Identifier: NormalizeIdentifier(raw),
	}

	defer func() {
		s.loader.observer.OnLookup(ctx, LookupEvent{
			Result:   result,
			Err:      err,
			ClientIP: ClientIPFromContext(ctx),
			Duration: time.Since(start),
		})
	}()

	if result.Identifier == "" {
		result.Outcome = OutcomeInvalid
		return result, ErrEmptyIdentifier
	}

	if err := s.loader.EnsureLoaded(ctx); err != nil {
		result.Outcome = OutcomeLoadError
		return result, err
	}

	entry, ok := s.loader.Dataset().Find(result.Identifier)
	if !ok {
		result.Outcome = OutcomeNotFound
		return result, nil
	}

	result.Outcome = OutcomeMatched
	result.Entry = entry
	return result, nil
}
