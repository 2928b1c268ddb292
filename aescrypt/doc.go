// Package aescrypt encrypts short values (IDs, tokens, query parameters) for
// transport as text.
//
// # Wire formats
//
// [CBC] is the default: AES-256-CBC with PKCS#7 padding under a fixed key and
// IV supplied by configuration, hex-encoded (lowercase). The IV is not
// embedded and no authentication tag is produced, so equal plaintexts give
// equal ciphertexts and tampering is only detected when it breaks padding.
//
// [GCM] is the authenticated alternative: a random nonce per call, output is
// hex(nonce || ciphertext || tag). It is not wire compatible with CBC and is
// only used when configuration selects it explicitly.
//
// # What this package must NOT do
//
//   - Derive keys or IVs from input.
//   - Fall back silently: every failure is returned to the caller.
package aescrypt
