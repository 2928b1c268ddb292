// Package internal contains helper utilities that are intentionally private to goHelper,
// currently the crypto/rand backed generators shared by ident and session.
//
// # What this package must NOT do
//
//   - Export types that appear in the public goHelper API.
//   - Use math/rand: every random value here comes from crypto/rand.
package internal
