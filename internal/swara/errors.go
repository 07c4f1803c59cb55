package swara

import (
	"errors"
	"fmt"
)

// ErrInvalidSymbol indicates a token outside the recognized label alphabet.
var ErrInvalidSymbol = errors.New("invalid swara")

// InvalidSymbolError records which token failed to decode.
type InvalidSymbolError struct {
	Token    string
	Position int // index in the scale string, or -1 for a lone token
}

// Error returns a human-readable description including the token position.
func (e *InvalidSymbolError) Error() string {
	if e.Position >= 0 {
		return fmt.Sprintf("%s %q at position %d", ErrInvalidSymbol, e.Token, e.Position+1)
	}
	return fmt.Sprintf("%s %q", ErrInvalidSymbol, e.Token)
}

// Unwrap returns ErrInvalidSymbol for use with errors.Is.
func (e *InvalidSymbolError) Unwrap() error {
	return ErrInvalidSymbol
}
