// Package hexcodec implements the small set of ASCII hex and decimal
// conversions the Fastboot wire format requires: no "0x" prefix, no
// whitespace, no sign, and nothing wider than a uint32.
package hexcodec

import "fmt"

// ErrInvalidDigit is returned by Parse when a byte outside [0-9a-fA-F] is
// encountered.
var ErrInvalidDigit = fmt.Errorf("invalid hex digit")

// Parse converts an ASCII hex string (1-8 digits, no prefix) to a uint32.
// Each character contributes value<<(4*(len-1-i)), matching the original
// byte-at-a-time accumulation used on the wire.
func Parse(s []byte) (uint32, error) {
	var v uint32

	for _, c := range s {
		d, ok := digit(c)
		if !ok {
			return 0, ErrInvalidDigit
		}
		v = v<<4 | uint32(d)
	}

	return v, nil
}

func digit(c byte) (byte, bool) {
	switch {
	case c >= '0' && c <= '9':
		return c - '0', true
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10, true
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10, true
	default:
		return 0, false
	}
}

const upperHex = "0123456789ABCDEF"

// FormatBytes renders src as big-endian uppercase hex into dst, which must
// be at least 2*len(src) bytes. It returns the number of bytes written.
func FormatBytes(dst, src []byte) int {
	n := 0
	for _, b := range src {
		dst[n] = upperHex[b>>4]
		dst[n+1] = upperHex[b&0x0f]
		n += 2
	}
	return n
}

// FormatDecimal renders n as the shortest decimal string into dst, which
// must be at least 10 bytes (enough for any uint32). It returns the number
// of digits written. n == 0 renders as a single "0" digit.
func FormatDecimal(dst []byte, n uint32) int {
	if n == 0 {
		dst[0] = '0'
		return 1
	}

	var tmp [10]byte
	i := len(tmp)
	for n > 0 {
		i--
		tmp[i] = byte('0' + n%10)
		n /= 10
	}

	return copy(dst, tmp[i:])
}
