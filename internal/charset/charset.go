// Package charset provides ordered digit alphabets shared by every base.
//
// The symbol at index i of a Charset is the digit of value i. A base b uses
// the first b symbols of the charset as its digits, so the alphabet of a
// smaller base is always a prefix of the alphabet of a larger one.
package charset

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// Reference is the 95 symbol alphabet: digits, letters, space and the
// printable ASCII punctuation.
const Reference = "0123456789" +
	"ABCDEFGHIJKLMNOPQRSTUVWXYZ" +
	"abcdefghijklmnopqrstuvwxyz" +
	" !\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

type Charset struct {
	symbols []rune
	values  map[rune]int
}

// New builds a charset from symbols. It needs at least two symbols and no
// symbol may repeat.
func New(symbols string) (*Charset, error) {
	if !utf8.ValidString(symbols) {
		return nil, fmt.Errorf("%w: not valid utf-8", ErrInvalidCharset)
	}

	sr := []rune(symbols)
	if len(sr) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 symbols, got %d", ErrInvalidCharset, len(sr))
	}

	values := make(map[rune]int, len(sr))
	for i, r := range sr {
		if j, ok := values[r]; ok {
			return nil, fmt.Errorf("%w: symbol %q repeats at %d and %d", ErrInvalidCharset, r, j, i)
		}
		values[r] = i
	}

	return &Charset{
		symbols: sr,
		values:  values,
	}, nil
}

// Default returns the Reference charset.
func Default() *Charset {
	cs, err := New(Reference)
	if err != nil {
		panic(fmt.Errorf("charset: reference: %w", err))
	}
	return cs
}

// Len is the number of symbols, which is also the largest usable base.
func (c *Charset) Len() int {
	return len(c.symbols)
}

func (c *Charset) String() string {
	return string(c.symbols)
}

// Zero is the symbol of digit value 0.
func (c *Charset) Zero() rune {
	return c.symbols[0]
}

// Value maps a symbol to its digit value.
func (c *Charset) Value(r rune) (int, error) {
	v, ok := c.values[r]
	if !ok {
		return 0, &SymbolError{Symbol: r, Pos: -1, Base: c.Len()}
	}
	return v, nil
}

// Contains reports whether r is one of the symbols.
func (c *Charset) Contains(r rune) bool {
	_, ok := c.values[r]
	return ok
}

// Symbol maps a digit value to its symbol. v must be in [0, Len()).
func (c *Charset) Symbol(v int) rune {
	if v < 0 || v >= len(c.symbols) {
		panic(fmt.Sprintf("charset: digit value %d out of range [0, %d)", v, len(c.symbols)))
	}
	return c.symbols[v]
}

// ValidBase reports whether 2 <= b <= Len().
func (c *Charset) ValidBase(b int) bool {
	return 2 <= b && b <= len(c.symbols)
}

// CheckBase is ValidBase returning a *BaseError.
func (c *Charset) CheckBase(b int) error {
	if !c.ValidBase(b) {
		return &BaseError{Base: b, Max: c.Len()}
	}
	return nil
}

// Valid reports whether every symbol of payload is one of the first base
// symbols. The empty payload is valid for every base.
func (c *Charset) Valid(payload string, base int) bool {
	return c.Check(payload, base) == nil
}

// Check is Valid returning a *SymbolError describing the first offending
// symbol.
func (c *Charset) Check(payload string, base int) error {
	pos := 0
	for _, r := range payload {
		if v, ok := c.values[r]; !ok || v >= base {
			return &SymbolError{Payload: payload, Base: base, Symbol: r, Pos: pos}
		}
		pos++
	}
	return nil
}

// Pad left-pads payload with the zero symbol up to length symbols.
func (c *Charset) Pad(payload string, length int) string {
	n := utf8.RuneCountInString(payload)
	if n >= length {
		return payload
	}
	return strings.Repeat(string(c.symbols[0]), length-n) + payload
}

// LeadingZeros counts the leading zero symbols of payload.
func (c *Charset) LeadingZeros(payload string) int {
	n := 0
	for _, r := range payload {
		if r != c.symbols[0] {
			break
		}
		n++
	}
	return n
}
