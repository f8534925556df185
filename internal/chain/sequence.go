package chain

import (
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/cespare/xxhash/v2"

	"nsco/internal/charset"
)

// Sequence is the ordered list of bases that keys the pipeline.
type Sequence []int

// ParseSequence splits text on whitespace and keeps the tokens that are
// unsigned decimal integers. Everything else is dropped. Integers too large
// for an int are kept as math.MaxInt, so Check rejects them.
func ParseSequence(text string) Sequence {
	var seq Sequence
	for _, tok := range strings.Fields(text) {
		if tok[0] == '+' || tok[0] == '-' {
			continue
		}
		b, err := strconv.Atoi(tok)
		if errors.Is(err, strconv.ErrRange) {
			b = math.MaxInt
		} else if err != nil {
			continue
		}
		seq = append(seq, b)
	}
	return seq
}

// ReadSequence parses the whole of r.
func ReadSequence(r io.Reader) (Sequence, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read sequence: %w", err)
	}
	return ParseSequence(string(data)), nil
}

// Empty reports whether the sequence has no bases. An empty sequence
// leaves payloads unchanged.
func (s Sequence) Empty() bool {
	return len(s) == 0
}

// Check validates every base against cs. It stops at the first invalid base.
func (s Sequence) Check(cs *charset.Charset) error {
	for i, b := range s {
		if err := cs.CheckBase(b); err != nil {
			return fmt.Errorf("sequence step %d: %w", i, err)
		}
	}
	return nil
}

func (s Sequence) String() string {
	parts := make([]string, len(s))
	for i, b := range s {
		parts[i] = strconv.Itoa(b)
	}
	return strings.Join(parts, " ")
}

// Fingerprint identifies the sequence without revealing it.
func (s Sequence) Fingerprint() uint64 {
	return xxhash.Sum64String(s.String())
}
