package charset

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidCharset = errors.New("invalid charset")
	ErrInvalidBase    = errors.New("invalid base")
	ErrInvalidSymbol  = errors.New("invalid symbol")
)

// BaseError reports a base outside [2, Max].
type BaseError struct {
	Base int
	Max  int
}

func (e *BaseError) Error() string {
	return fmt.Sprintf("%s %d: must be between 2 and %d", ErrInvalidBase, e.Base, e.Max)
}

func (e *BaseError) Unwrap() error {
	return ErrInvalidBase
}

// SymbolError reports a symbol that is not a digit of Base.
// Pos is the symbol index within Payload, or -1 when there is no payload.
type SymbolError struct {
	Payload string
	Base    int
	Symbol  rune
	Pos     int
}

func (e *SymbolError) Error() string {
	if e.Pos < 0 {
		return fmt.Sprintf("%s %q: not in charset", ErrInvalidSymbol, e.Symbol)
	}
	return fmt.Sprintf("%s %q at %d: %q contains invalid characters for base %d", ErrInvalidSymbol, e.Symbol, e.Pos, truncate(e.Payload, 32), e.Base)
}

func (e *SymbolError) Unwrap() error {
	return ErrInvalidSymbol
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "..."
}
