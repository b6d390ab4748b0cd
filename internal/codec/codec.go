package codec

import (
	"errors"
	"fmt"
	"strings"
)

var ErrInvalid = errors.New("invalid encoding")

// Bytes above the 7-bit range are displayed as this byte.
const Substitute byte = '.'

func Sanitize(b byte) byte {
	if b > 127 {
		return Substitute
	}
	return b
}

func ToHex(b byte) string {
	return fmt.Sprintf("%02X", Sanitize(b))
}

func ToBinary(b byte) string {
	return fmt.Sprintf("%08b", Sanitize(b))
}

func ToChar(b byte) byte {
	return Sanitize(b)
}

// HexToByte reads the leading hex digits of s, optionally signed and
// prefixed with 0x, and truncates the value to 8 bits. A negative value
// wraps as a 32-bit unsigned integer. Anything after the digits is
// ignored.
func HexToByte(s string) (byte, error) {
	t := strings.TrimLeft(s, " \t\r\n")
	neg := false
	if len(t) > 0 && (t[0] == '+' || t[0] == '-') {
		neg = t[0] == '-'
		t = t[1:]
	}
	if len(t) > 2 && t[0] == '0' && (t[1] == 'x' || t[1] == 'X') && isHexDigit(t[2]) {
		t = t[2:]
	}

	var v uint64
	n := 0
	for n < len(t) && isHexDigit(t[n]) {
		v = v<<4 | uint64(hexDigit(t[n]))
		if v > 0xFFFFFFFF {
			return 0, fmt.Errorf("hex %q: %w", s, ErrInvalid)
		}
		n++
	}
	if n == 0 {
		return 0, fmt.Errorf("hex %q: %w", s, ErrInvalid)
	}
	if neg {
		v = -v & 0xFFFFFFFF
	}
	return byte(v), nil
}

func BinToByte(s string) (byte, error) {
	if len(s) != 8 {
		return 0, fmt.Errorf("binary %q: %w", s, ErrInvalid)
	}
	var b byte
	for i := 0; i < 8; i++ {
		switch s[i] {
		case '0':
		case '1':
			b |= 1 << (7 - i)
		default:
			return 0, fmt.Errorf("binary %q: %w", s, ErrInvalid)
		}
	}
	return b, nil
}

func CharToByte(r rune) byte {
	return byte(r)
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexDigit(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
