// Package search decides how a raw directory query is answered and runs it
// against an advocate store.
//
// # Query Classification
//
// A raw query is trimmed and classified into one of three kinds:
//
//	""                  -> KindAll      (first 50 records, store order)
//	"(212) 555-1234"    -> KindPhone    (exact phone number match)
//	"cardiology boston" -> KindFullText (ranked full-text match, top 50)
//
// A query is phone-like when it contains only digits, spaces, hyphens and
// parentheses, has at least seven digits, and those digits fit in an int64.
// Input is never rejected; anything else falls through to full text.
//
// # Usage Example
//
//	svc := search.NewService(store, metrics)
//	res, err := svc.Search(ctx, r.URL.Query().Get("q"))
//	if err != nil {
//		return err
//	}
//	fmt.Printf("%s: %d rows\n", res.Query.Kind, len(res.Advocates))
//
// # Related Packages
//
//   - pkg/storage: Store contracts the service reads through
//   - pkg/api: HTTP handlers exposing the service
package search
