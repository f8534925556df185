// Package baseconv converts digit strings between bases of a charset using
// arbitrary precision integers.
//
// Short inputs are handled a machine word of digits at a time. Longer ones
// are split in halves around a power of the base, so multiplication and
// division run on operands of balanced size.
package baseconv

import (
	"fmt"
	"math"
	"math/big"
	"strings"

	"nsco/internal/charset"
)

// Inputs of at most leafDigits digits, or leafBits bits, skip the split.
const (
	leafDigits = 256
	leafBits   = 2048
)

type conv struct {
	base  uint64
	k     int      // digits per word
	word  *big.Int // base^k
	log2b float64
	pows  map[int]*big.Int
}

func newConv(base int) *conv {
	b := uint64(base)
	w, k := b, 1
	for w <= math.MaxUint64/b {
		w *= b
		k++
	}
	return &conv{
		base:  b,
		k:     k,
		word:  new(big.Int).SetUint64(w),
		log2b: math.Log2(float64(b)),
		pows:  map[int]*big.Int{},
	}
}

// pow returns base^n. The result is shared and must not be modified.
func (c *conv) pow(n int) *big.Int {
	if p, ok := c.pows[n]; ok {
		return p
	}
	p := new(big.Int).Exp(new(big.Int).SetUint64(c.base), big.NewInt(int64(n)), nil)
	c.pows[n] = p
	return p
}

func (c *conv) parse(digits []int) *big.Int {
	if len(digits) <= leafDigits {
		return c.parseLeaf(digits)
	}

	r := len(digits) / 2
	n := c.parse(digits[:len(digits)-r])
	n.Mul(n, c.pow(r))
	return n.Add(n, c.parse(digits[len(digits)-r:]))
}

func (c *conv) parseLeaf(digits []int) *big.Int {
	n := &big.Int{}
	d := &big.Int{}

	var acc uint64
	cnt := 0
	for _, v := range digits {
		acc = acc*c.base + uint64(v)
		cnt++
		if cnt == c.k {
			n.Mul(n, c.word)
			n.Add(n, d.SetUint64(acc))
			acc, cnt = 0, 0
		}
	}
	if cnt > 0 {
		n.Mul(n, c.pow(cnt))
		n.Add(n, d.SetUint64(acc))
	}
	return n
}

// render returns the digits of n, most significant first, left-padded with
// zeros to pad digits. n is not modified.
func (c *conv) render(n *big.Int, pad int) []int {
	if n.BitLen() <= leafBits {
		return c.renderLeaf(n, pad)
	}

	s := int(float64(n.BitLen())/c.log2b) / 2
	q, r := new(big.Int).QuoRem(n, c.pow(s), new(big.Int))
	if q.Sign() == 0 {
		return c.render(r, pad)
	}

	hi := c.render(q, max(pad-s, 0))
	return append(hi, c.render(r, s)...)
}

func (c *conv) renderLeaf(n *big.Int, pad int) []int {
	n = new(big.Int).Set(n) // Clone n
	rem := &big.Int{}

	// Least significant first.
	var out []int
	for n.Sign() > 0 {
		n.QuoRem(n, c.word, rem)
		w := rem.Uint64()
		for range c.k {
			if n.Sign() == 0 && w == 0 {
				break
			}
			out = append(out, int(w%c.base))
			w /= c.base
		}
	}
	for len(out) < pad {
		out = append(out, 0)
	}

	for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// Parse reads payload as a big-endian number in base. Every symbol of
// payload must be a digit of base.
func Parse(cs *charset.Charset, payload string, base int) *big.Int {
	digits := make([]int, 0, len(payload))
	for _, r := range payload {
		v, err := cs.Value(r)
		if err != nil || v >= base {
			panic(fmt.Sprintf("baseconv: symbol %q is not a digit of base %d", r, base))
		}
		digits = append(digits, v)
	}
	return newConv(base).parse(digits)
}

// Render writes n in base. Zero renders as the single zero symbol.
func Render(cs *charset.Charset, n *big.Int, base int) string {
	if n.Sign() < 0 {
		panic("baseconv: render: negative value")
	}
	if n.Sign() == 0 {
		return string(cs.Zero())
	}

	digits := newConv(base).render(n, 0)

	s := &strings.Builder{}
	s.Grow(len(digits))
	for _, v := range digits {
		s.WriteRune(cs.Symbol(v))
	}
	return s.String()
}

// Convert re-renders payload, read in base from, in base to.
// Bases and payload are not checked; see ConvertChecked.
func Convert(cs *charset.Charset, payload string, from, to int) string {
	return Render(cs, Parse(cs, payload, from), to)
}

// ConvertChecked validates both bases and the payload before converting.
func ConvertChecked(cs *charset.Charset, payload string, from, to int) (string, error) {
	if err := cs.CheckBase(from); err != nil {
		return "", fmt.Errorf("base from: %w", err)
	}
	if err := cs.CheckBase(to); err != nil {
		return "", fmt.Errorf("base to: %w", err)
	}
	if err := cs.Check(payload, from); err != nil {
		return "", err
	}
	return Convert(cs, payload, from, to), nil
}
