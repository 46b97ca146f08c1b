// Package otp implements RFC 6238 time-based one-time passwords restricted to
// HMAC-SHA1, a 30 second step and 6 digits.
package otp

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/base32"
	"encoding/binary"
	"errors"
	"fmt"
	"strings"
	"time"
)

const (
	// Step is the TOTP time step in seconds.
	Step = 30
	// Digits is the number of decimal digits in a code.
	Digits = 6

	modulus = 1000000
)

// ErrInvalidSecret is returned when a secret is not valid base32
var ErrInvalidSecret = errors.New("invalid secret")

// Code is a generated one-time password together with its remaining lifetime
type Code struct {
	Value     string
	Remaining uint64
}

// Decode decodes a base32 secret (RFC 4648 alphabet, padding required).
// encoding/base32 silently skips line breaks and ignores non-zero trailing
// bits, so only the canonical encoding of the decoded key is accepted.
func Decode(secret string) ([]byte, error) {
	if secret == "" || strings.ContainsAny(secret, "\r\n") {
		return nil, fmt.Errorf("%w: %q", ErrInvalidSecret, secret)
	}
	key, err := base32.StdEncoding.DecodeString(secret)
	if err != nil {
		return nil, fmt.Errorf("%w: %q: %v", ErrInvalidSecret, secret, err)
	}
	if base32.StdEncoding.EncodeToString(key) != secret {
		return nil, fmt.Errorf("%w: %q: non-canonical encoding", ErrInvalidSecret, secret)
	}
	return key, nil
}

// HOTP computes the RFC 4226 value for counter c, reduced to Digits digits.
func HOTP(key []byte, c uint64) uint32 {
	buf := make([]byte, 8)
	binary.BigEndian.PutUint64(buf, c)
	h := hmac.New(sha1.New, key)
	h.Write(buf)
	sum := h.Sum(nil)

	off := sum[len(sum)-1] & 0xf
	trunc := binary.BigEndian.Uint32(sum[off:off+4]) & 0x7fffffff
	return trunc % modulus
}

// Generate returns the zero-padded code for key at the given Unix time.
func Generate(key []byte, unixSeconds uint64) string {
	return fmt.Sprintf("%0*d", Digits, HOTP(key, unixSeconds/Step))
}

// SecondsRemaining reports how long the code for unixSeconds stays valid, in [1, Step].
func SecondsRemaining(unixSeconds uint64) uint64 {
	return Step - unixSeconds%Step
}

// Compute decodes secret and derives the code valid at t.
func Compute(secret string, t time.Time) (Code, error) {
	key, err := Decode(secret)
	if err != nil {
		return Code{}, err
	}
	sec := unixSeconds(t)
	return Code{
		Value:     Generate(key, sec),
		Remaining: SecondsRemaining(sec),
	}, nil
}

func unixSeconds(t time.Time) uint64 {
	u := t.Unix()
	if u < 0 {
		return 0
	}
	return uint64(u)
}
