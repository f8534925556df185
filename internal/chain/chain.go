// Package chain scrambles payloads by chaining base conversions keyed by a
// Sequence of bases.
//
// Encrypt reads the payload in the full charset base and renders it in each
// base of the sequence in turn, reading every intermediate result in the
// full base again. Decrypt walks the sequence backwards. Leading zero
// symbols of the plaintext do not survive the round trip, since every
// rendering is minimal.
package chain

import (
	"fmt"

	"nsco/internal/baseconv"
	"nsco/internal/charset"
)

func Encrypt(cs *charset.Charset, payload string, seq Sequence) (string, error) {
	if err := seq.Check(cs); err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}

	n := cs.Len()
	if err := cs.Check(payload, n); err != nil {
		return "", fmt.Errorf("encrypt: %w", err)
	}

	for _, b := range seq {
		payload = baseconv.Convert(cs, payload, n, b)
	}
	return payload, nil
}

func Decrypt(cs *charset.Charset, payload string, seq Sequence) (string, error) {
	if err := seq.Check(cs); err != nil {
		return "", fmt.Errorf("decrypt: %w", err)
	}

	n := cs.Len()
	for i := len(seq) - 1; i >= 0; i-- {
		b := seq[i]
		if err := cs.Check(payload, b); err != nil {
			return "", fmt.Errorf("decrypt step %d: %w", i, err)
		}
		payload = baseconv.Convert(cs, payload, b, n)
	}
	return payload, nil
}
