package aescrypt

import (
	"bytes"
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"strconv"
)

const (
	// KeySize is the AES-256 key length in bytes.
	KeySize = 32
	// IVSize is the CBC initialization vector length in bytes.
	IVSize = aes.BlockSize
)

var (
	// ErrMalformedInput is returned when ciphertext is not valid hex.
	ErrMalformedInput = errors.New("malformed ciphertext encoding")
	// ErrDecrypt is returned when ciphertext has a bad length, bad padding or
	// fails authentication.
	ErrDecrypt = errors.New("decryption failed")
	// ErrInvalidIV is returned when the IV is not one block long.
	ErrInvalidIV = errors.New("invalid initialization vector size")
)

// Service encrypts and decrypts string values into a text-safe form.
type Service interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// NoopService passes values through unchanged (dev/test mode).
type NoopService struct{}

func (NoopService) Encrypt(plaintext string) (string, error)  { return plaintext, nil }
func (NoopService) Decrypt(ciphertext string) (string, error) { return ciphertext, nil }

/*
====================================
CBC
====================================
*/

// CBC is the fixed key/IV AES-CBC service. It is safe for concurrent use.
type CBC struct {
	block cipher.Block
	iv    [IVSize]byte
}

// NewCBC builds a CBC service. A 32 byte key selects AES-256; 16 and 24 byte
// keys are accepted by the cipher and not rejected here, length policy is the
// configuration loader's job.
func NewCBC(key, iv []byte) (*CBC, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}
	if len(iv) != IVSize {
		return nil, fmt.Errorf("%w: got %d bytes", ErrInvalidIV, len(iv))
	}

	c := &CBC{block: block}
	copy(c.iv[:], iv)
	return c, nil
}

// Encrypt returns lowercase hex of the AES-CBC ciphertext of plaintext.
func (c *CBC) Encrypt(plaintext string) (string, error) {
	padded := pkcs7Pad([]byte(plaintext), aes.BlockSize)
	out := make([]byte, len(padded))
	cipher.NewCBCEncrypter(c.block, c.iv[:]).CryptBlocks(out, padded)
	return hex.EncodeToString(out), nil
}

// EncryptInt encrypts the base-10 form of v, so Decrypt returns strconv.FormatInt(v, 10).
func (c *CBC) EncryptInt(v int64) (string, error) {
	return c.Encrypt(strconv.FormatInt(v, 10))
}

// Decrypt reverses Encrypt.
func (c *CBC) Decrypt(ciphertext string) (string, error) {
	raw, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}
	if len(raw) == 0 || len(raw)%aes.BlockSize != 0 {
		return "", fmt.Errorf("%w: ciphertext length %d", ErrDecrypt, len(raw))
	}

	out := make([]byte, len(raw))
	cipher.NewCBCDecrypter(c.block, c.iv[:]).CryptBlocks(out, raw)

	plain, err := pkcs7Unpad(out, aes.BlockSize)
	if err != nil {
		return "", err
	}
	return string(plain), nil
}

func pkcs7Pad(b []byte, blockSize int) []byte {
	n := blockSize - len(b)%blockSize
	return append(b, bytes.Repeat([]byte{byte(n)}, n)...)
}

func pkcs7Unpad(b []byte, blockSize int) ([]byte, error) {
	n := int(b[len(b)-1])
	if n == 0 || n > blockSize || n > len(b) {
		return nil, fmt.Errorf("%w: bad padding", ErrDecrypt)
	}
	for _, p := range b[len(b)-n:] {
		if int(p) != n {
			return nil, fmt.Errorf("%w: bad padding", ErrDecrypt)
		}
	}
	return b[:len(b)-n], nil
}

/*
====================================
GCM
====================================
*/

// GCM is the authenticated AES-GCM service with a random nonce per call.
type GCM struct {
	gcm cipher.AEAD
}

// NewGCM builds a GCM service from key (16, 24 or 32 bytes).
func NewGCM(key []byte) (*GCM, error) {
	block, err := aes.NewCipher(key)
	if err != nil {
		return nil, fmt.Errorf("failed to create cipher: %w", err)
	}

	gcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, fmt.Errorf("failed to create GCM: %w", err)
	}
	return &GCM{gcm: gcm}, nil
}

func (g *GCM) Encrypt(plaintext string) (string, error) {
	nonce := make([]byte, g.gcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", fmt.Errorf("failed to generate nonce: %w", err)
	}

	// nonce || ciphertext || tag
	sealed := g.gcm.Seal(nonce, nonce, []byte(plaintext), nil)
	return hex.EncodeToString(sealed), nil
}

func (g *GCM) Decrypt(ciphertext string) (string, error) {
	buffer, err := hex.DecodeString(ciphertext)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrMalformedInput, err)
	}

	nonceSize := g.gcm.NonceSize()
	if len(buffer) < nonceSize+g.gcm.Overhead() {
		return "", fmt.Errorf("%w: ciphertext too short", ErrDecrypt)
	}

	nonce, sealed := buffer[:nonceSize], buffer[nonceSize:]
	plain, err := g.gcm.Open(nil, nonce, sealed, nil)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrDecrypt, err)
	}
	return string(plain), nil
}
