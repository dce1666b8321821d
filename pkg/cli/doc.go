// Package cli provides the command-line tools for the advocate directory.
//
// # Commands
//
// seed: Apply the schema and insert fixture records into PostgreSQL
//
//	advocates-cli seed \
//		--db postgres://localhost:5432/advocates?sslmode=disable \
//		--file ./fixtures.yaml
//
// Without --file the embedded fixture set is used. --dry-run validates and
// prints the records without connecting.
//
// search: Run one query against the API and print the table
//
//	advocates-cli search --api http://localhost:3000 --q cardiology
//
// view: Interactive search. Each input line replaces the query, ":reset"
// clears it and ":quit" exits.
//
//	advocates-cli view --api http://localhost:3000 --debounce 400ms
package cli
