// Package goHelper bundles the small helpers a server-rendered web application
// reaches for on every request: input validation, session access, debug dumps
// and file logging, identifier and code generation, AES encryption, and page
// composition with route redirects.
//
// Each concern lives in its own sub-package and can be used directly. The
// [Helper] facade wires all of them from one [Config] through [Builder]:
//
//	h, err := goHelper.New().WithConfig(cfg).WithRedis(rdb).Build()
//
// Helper methods are safe to call from multiple goroutines after Build.
//
// # Architecture boundaries
//
// goHelper is the wiring surface. It owns configuration loading, metrics
// counters and the choice of backends (session store, cipher mode). The
// helpers themselves live in validate, session, middleware, debug, logfile,
// ident, strutil, aescrypt and layout, none of which import this package.
//
// # What this package must NOT do
//
//   - Keep request state in package variables; sessions travel in the request context.
//   - Choose a cipher or session backend the configuration did not name.
//   - Import any sub-package that re-imports goHelper (no import cycles).
package goHelper
