/*
Package bleve provides an in-memory advocate store backed by a bleve index.

It implements storage.AdvocateStore for environments without PostgreSQL's
full-text operators. The index has no generated columns, so every write
computes the weighted search fields itself:

	a: city, specialties        (boost 1.0)
	b: first name, last name    (boost 0.4)
	c: degree                   (boost 0.2)
	text: all of the above

Free-text queries accept the same websearch syntax as PostgreSQL's
websearch_to_tsquery: quoted phrases, -negation, "or" between terms, and
implicit AND everywhere else.

	store, err := bleve.New()
	if err != nil {
		return err
	}
	defer store.Close()

	ids, err := store.Insert(ctx, records)
	rows, err := store.FullText(ctx, `cardiology -"new york"`, 50)
*/
package bleve
