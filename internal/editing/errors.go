package editing

import (
	"errors"
	"fmt"
	"regexp"
)

// ErrInvalidFillChar is returned when a fill character is not exactly one hex
// digit.
var ErrInvalidFillChar = errors.New("fill character must be a single hex digit")

var fillCharPattern = regexp.MustCompile(`^[0-9a-fA-F]$`)

func ValidateFillChar(s string) error {
	if !fillCharPattern.MatchString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidFillChar, s)
	}
	return nil
}

// doubledHex turns a hex digit into the byte holding it in both nibbles, so
// "a" becomes 0xAA.
func doubledHex(r rune) (byte, bool) {
	v, ok := parseHexDigit(r)
	if !ok {
		return 0, false
	}
	return v<<4 | v, true
}
