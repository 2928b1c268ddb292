package internal

import (
	"crypto/rand"
	"errors"
	"fmt"
	"math/big"
	"strings"
)

// ErrInvalidWidth is returned when a digit width is not positive.
var ErrInvalidWidth = errors.New("invalid digit width")

func RandomBytes(n int) ([]byte, error) {
	buf := make([]byte, n)
	if _, err := rand.Read(buf); err != nil {
		return nil, err
	}
	return buf, nil
}

// RandomNumber returns a decimal integer with exactly width digits and no
// leading zero, drawn from [10^(width-1), 10^width - 1].
func RandomNumber(width int) (string, error) {
	if width <= 0 {
		return "", ErrInvalidWidth
	}

	ten := big.NewInt(10)
	min := new(big.Int).Exp(ten, big.NewInt(int64(width-1)), nil)
	max := new(big.Int).Exp(ten, big.NewInt(int64(width)), nil)
	span := new(big.Int).Sub(max, min)

	n, err := rand.Int(rand.Reader, span)
	if err != nil {
		return "", err
	}
	n.Add(n, min)

	out := n.String()
	if len(out) != width {
		return "", fmt.Errorf("invalid number generation length")
	}
	return out, nil
}

// Shuffle returns a random permutation of the bytes of s (Fisher-Yates).
func Shuffle(s string) (string, error) {
	b := []byte(s)
	for i := len(b) - 1; i > 0; i-- {
		j, err := rand.Int(rand.Reader, big.NewInt(int64(i+1)))
		if err != nil {
			return "", err
		}
		k := int(j.Int64())
		b[i], b[k] = b[k], b[i]
	}
	return string(b), nil
}

// ShuffleTruncate shuffles alphabet and keeps the first n bytes. n is capped at
// len(alphabet); the result is therefore never longer than the alphabet.
func ShuffleTruncate(alphabet string, n int) (string, error) {
	if n <= 0 {
		return "", nil
	}
	shuffled, err := Shuffle(alphabet)
	if err != nil {
		return "", err
	}
	if n > len(shuffled) {
		n = len(shuffled)
	}

	var b strings.Builder
	b.Grow(n)
	b.WriteString(shuffled[:n])
	return b.String(), nil
}
