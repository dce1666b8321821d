package bleve

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/mapping"
	"github.com/blevesearch/bleve/v2/search/query"

	"github.com/platinummonkey/advocates/pkg/advocates"
	"github.com/platinummonkey/advocates/pkg/storage"
)

const (
	fieldID    = "id"
	fieldPhone = "phone"
	fieldA     = "a"
	fieldB     = "b"
	fieldC     = "c"
	fieldText  = "text"

	analyzerName = "en"
)

// Relevance boosts per weight class, matching ts_rank's default weights
const (
	boostA = 1.0
	boostB = 0.4
	boostC = 0.2
)

// Store is an in-memory storage.AdvocateStore
type Store struct {
	index bleve.Index

	mu      sync.RWMutex
	records map[int64]advocates.Advocate
	nextID  int64
}

var _ storage.AdvocateStore = (*Store)(nil)

// New creates an empty in-memory store
func New() (*Store, error) {
	idx, err := bleve.NewMemOnly(buildIndexMapping())
	if err != nil {
		return nil, fmt.Errorf("failed to create index: %w", err)
	}

	return &Store{
		index:   idx,
		records: make(map[int64]advocates.Advocate),
		nextID:  1,
	}, nil
}

func buildIndexMapping() mapping.IndexMapping {
	text := bleve.NewTextFieldMapping()
	text.Analyzer = analyzerName
	text.Store = false

	numeric := bleve.NewNumericFieldMapping()
	numeric.Store = false

	// phones match exactly as decimal strings
	keyword := bleve.NewKeywordFieldMapping()
	keyword.Store = false

	doc := bleve.NewDocumentMapping()
	doc.AddFieldMappingsAt(fieldID, numeric)
	doc.AddFieldMappingsAt(fieldPhone, keyword)
	doc.AddFieldMappingsAt(fieldA, text)
	doc.AddFieldMappingsAt(fieldB, text)
	doc.AddFieldMappingsAt(fieldC, text)
	doc.AddFieldMappingsAt(fieldText, text)

	m := bleve.NewIndexMapping()
	m.DefaultAnalyzer = analyzerName
	m.DefaultMapping = doc
	return m
}

// SearchText returns the combined text a record is matched against
func SearchText(a advocates.Advocate) string {
	return strings.Join([]string{weightB(a), weightA(a), weightC(a)}, " ")
}

func weightA(a advocates.Advocate) string {
	parts := append([]string{a.City}, a.Specialties...)
	return strings.Join(parts, " ")
}

func weightB(a advocates.Advocate) string {
	return a.FirstName + " " + a.LastName
}

func weightC(a advocates.Advocate) string {
	return a.Degree
}

func document(a advocates.Advocate) map[string]interface{} {
	return map[string]interface{}{
		fieldID:    float64(a.ID),
		fieldPhone: strconv.FormatInt(a.PhoneNumber, 10),
		fieldA:     weightA(a),
		fieldB:     weightB(a),
		fieldC:     weightC(a),
		fieldText:  SearchText(a),
	}
}

func docID(id int64) string {
	return strconv.FormatInt(id, 10)
}

// Insert assigns IDs and indexes the records in one batch
func (s *Store) Insert(ctx context.Context, records []advocates.Advocate) ([]int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()
	batch := s.index.NewBatch()
	staged := make([]advocates.Advocate, 0, len(records))
	ids := make([]int64, 0, len(records))

	for i, rec := range records {
		rec.ID = s.nextID + int64(i)
		if rec.Specialties == nil {
			rec.Specialties = advocates.Specialties{}
		}
		if rec.CreatedAt == nil {
			created := now
			rec.CreatedAt = &created
		}

		if err := batch.Index(docID(rec.ID), document(rec)); err != nil {
			return nil, fmt.Errorf("failed to index advocate %s: %w", rec.FullName(), err)
		}
		staged = append(staged, rec)
		ids = append(ids, rec.ID)
	}

	if err := s.index.Batch(batch); err != nil {
		return nil, fmt.Errorf("failed to commit batch: %w", err)
	}

	for _, rec := range staged {
		s.records[rec.ID] = rec
	}
	s.nextID += int64(len(staged))

	return ids, nil
}

// List returns up to limit records in insertion order. limit <= 0 means all.
func (s *Store) List(ctx context.Context, limit int) ([]advocates.Advocate, error) {
	return s.search(ctx, bleve.NewMatchAllQuery(), limit, []string{fieldID})
}

// FindByPhone returns every record whose phone number equals phone
func (s *Store) FindByPhone(ctx context.Context, phone int64) ([]advocates.Advocate, error) {
	q := bleve.NewTermQuery(strconv.FormatInt(phone, 10))
	q.SetField(fieldPhone)

	return s.search(ctx, q, 0, []string{fieldID})
}

// FullText returns records matching the websearch-style query, best first
func (s *Store) FullText(ctx context.Context, text string, limit int) ([]advocates.Advocate, error) {
	q := s.compile(ParseWebsearch(text))
	if q == nil {
		return []advocates.Advocate{}, nil
	}

	return s.search(ctx, q, limit, []string{"-_score", fieldID})
}

func (s *Store) search(ctx context.Context, q query.Query, limit int, order []string) ([]advocates.Advocate, error) {
	size := limit
	if size <= 0 {
		count, err := s.index.DocCount()
		if err != nil {
			return nil, fmt.Errorf("failed to count documents: %w", err)
		}
		size = int(count)
	}
	if size == 0 {
		return []advocates.Advocate{}, nil
	}

	req := bleve.NewSearchRequestOptions(q, size, 0, false)
	req.SortBy(order)

	res, err := s.index.SearchInContext(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("failed to search advocates: %w", err)
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]advocates.Advocate, 0, len(res.Hits))
	for _, hit := range res.Hits {
		id, err := strconv.ParseInt(hit.ID, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid document id %q: %w", hit.ID, err)
		}
		rec, ok := s.records[id]
		if !ok {
			continue
		}
		out = append(out, rec)
	}

	return out, nil
}

// Len returns the number of stored records
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.records)
}

// Close releases the index
func (s *Store) Close() error {
	return s.index.Close()
}
