// Package validate provides the form-input checks used by request handlers:
// email, phone, length bounds, ticket numbers, birth dates, loose emptiness and
// caller-supplied patterns.
//
// Every check is a pure function returning a bool. Malformed input is a false
// result, never an error or panic, so handlers can chain checks without
// intermediate error handling.
//
// # What this package must NOT do
//
//   - Read the wall clock directly: age checks go through a [clockwork.Clock]
//     held by [Validator], or take the reference time as an argument.
//   - Normalise or mutate the values it checks.
package validate
