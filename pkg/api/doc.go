// Package api provides the HTTP server for the advocate directory.
//
// # Endpoints
//
//	GET /api/advocates?q=<text>   JSON search, {"data": [Advocate...]}
//	GET /?q=<text>                server-rendered HTML table
//
// The q parameter is optional. Empty lists the first 50 advocates, a
// phone-like value matches phone numbers exactly and anything else runs a
// ranked full-text search. See pkg/search for the classification rules.
//
// A store failure answers 500 {"error": "..."}; malformed queries are
// never rejected.
//
// # Usage Example
//
//	svc := search.NewService(store, metrics)
//	server := api.NewServer(svc, api.Options{Logger: logger, Metrics: metrics})
//	http.ListenAndServe(":3000", server.Handler())
package api
