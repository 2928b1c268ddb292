// Package ident generates random identifiers, short alphanumeric hashes and
// structured codes such as order or ticket references.
//
// # Randomness
//
// All randomness comes from crypto/rand. [Hash] and the alpha segment of
// [Generator.Code] shuffle a fixed alphabet and truncate it; characters never
// repeat more often than they appear in the alphabet, so the output is not
// uniformly distributed. Do not use them as secrets.
package ident

import (
	"encoding/hex"
	"errors"

	"github.com/MrEthical07/goHelper/internal"
	"github.com/google/uuid"
)

const (
	// DefaultHashLength is the Hash length used when n <= 0.
	DefaultHashLength = 12

	// hashAlphabet lists digits twice, then lower and upper case letters twice.
	hashAlphabet = "01234567890123456789" +
		"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ" +
		"abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

// ErrInvalidLength is returned when a segment asks for a negative width.
var ErrInvalidLength = errors.New("invalid segment length")

// ID returns a random 128-bit identifier. With versioned false it is 32
// lowercase hex characters with no structure; with versioned true it is an
// RFC 4122 version 4 UUID in 8-4-4-4-12 form.
func ID(versioned bool) (string, error) {
	if versioned {
		id, err := uuid.NewRandom()
		if err != nil {
			return "", err
		}
		return id.String(), nil
	}

	raw, err := internal.RandomBytes(16)
	if err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}

// Hash returns n characters taken from a shuffled copy of the fixed hash
// alphabet. n <= 0 selects DefaultHashLength and n is capped at the alphabet
// size (124).
func Hash(n int) (string, error) {
	if n <= 0 {
		n = DefaultHashLength
	}
	return internal.ShuffleTruncate(hashAlphabet, n)
}
