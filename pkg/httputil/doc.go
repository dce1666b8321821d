// Package httputil provides the JSON envelopes, query helpers and middleware
// shared by the advocate HTTP handlers.
//
// # Response Helpers
//
//	httputil.WriteData(w, rows)          // 200 {"data": rows}
//	httputil.WriteInternalError(w, err)  // 500 {"error": "..."}
//
// # Middleware
//
//	handler := httputil.Chain(
//		httputil.RequestIDMiddleware(logger),
//		httputil.LoggingMiddleware(logger),
//		httputil.RecoveryMiddleware(logger),
//	)(router)
package httputil
