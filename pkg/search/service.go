package search

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/platinummonkey/advocates/pkg/advocates"
	"github.com/platinummonkey/advocates/pkg/storage"
)

var searchTracer = otel.Tracer("advocates/search/service")

// Recorder receives one observation per search
type Recorder interface {
	RecordSearch(kind, status string, duration time.Duration, results int)
}

// Result is the outcome of a search
type Result struct {
	Query     Query
	Advocates []advocates.Advocate
}

// Service answers raw directory queries
type Service struct {
	store    storage.AdvocateReader
	recorder Recorder
}

// NewService creates a search service. recorder may be nil.
func NewService(store storage.AdvocateReader, recorder Recorder) *Service {
	return &Service{
		store:    store,
		recorder: recorder,
	}
}

// Search classifies raw and runs the matching store operation
func (s *Service) Search(ctx context.Context, raw string) (*Result, error) {
	q := Classify(raw)

	ctx, span := searchTracer.Start(ctx, "Search",
		trace.WithAttributes(
			attribute.String("search.kind", q.Kind.String()),
			attribute.Int("search.query_length", len(q.Text)),
		),
	)
	defer span.End()

	start := time.Now()
	rows, err := s.run(ctx, q)
	elapsed := time.Since(start)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "search failed")
		s.record(q.Kind, "error", elapsed, 0)
		return nil, fmt.Errorf("failed to search advocates (%s): %w", q.Kind, err)
	}

	if rows == nil {
		rows = []advocates.Advocate{}
	}

	span.SetAttributes(attribute.Int("search.results", len(rows)))
	span.SetStatus(codes.Ok, "")
	s.record(q.Kind, "success", elapsed, len(rows))

	return &Result{Query: q, Advocates: rows}, nil
}

func (s *Service) run(ctx context.Context, q Query) ([]advocates.Advocate, error) {
	switch q.Kind {
	case KindPhone:
		return s.store.FindByPhone(ctx, q.Phone)
	case KindFullText:
		return s.store.FullText(ctx, q.Text, DefaultLimit)
	default:
		return s.store.List(ctx, DefaultLimit)
	}
}

func (s *Service) record(kind Kind, status string, d time.Duration, results int) {
	if s.recorder == nil {
		return
	}
	s.recorder.RecordSearch(kind.String(), status, d, results)
}
