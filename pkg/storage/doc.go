// Package storage defines the persistence contracts for the advocate
// directory.
//
// # Backends
//
//   - postgres: PostgreSQL table with a generated, weighted tsvector column
//     and a GIN index. Free-text queries go through websearch_to_tsquery.
//   - bleve: in-memory bleve index used where PostgreSQL full-text search
//     is unavailable. The weighted search text is computed on write.
//
// # Interfaces
//
//	type AdvocateReader interface {
//		List(ctx, limit) ([]advocates.Advocate, error)
//		FindByPhone(ctx, phone) ([]advocates.Advocate, error)
//		FullText(ctx, query, limit) ([]advocates.Advocate, error)
//	}
//
// AdvocateWriter is only used by the seed tooling; the directory itself is
// read-only.
package storage
