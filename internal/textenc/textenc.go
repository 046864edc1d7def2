// Package textenc implements the compact visible-ASCII encodings used by the
// serialized matcher format.
//
// Integers are written as base-64 digits over the alphabet 0-9A-Za-z+/ with
// the most significant digit first, and a leading '~' marks a negative value.
// Strings are written as unpadded standard base64. Neither encoding produces
// the separators ',', '.', ';', ':', '(', ')' or '#', so callers may freely
// use those to build lists and nested structures.
package textenc

import (
	"encoding/base64"
	"errors"
	"fmt"
	"math/bits"
	"strings"

	"github.com/coregx/srm/internal/conv"
)

const digits = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz+/"

// ErrEmpty is returned when decoding an empty integer.
var ErrEmpty = errors.New("textenc: empty integer")

var digitValue = func() (t [256]int8) {
	for i := range t {
		t[i] = -1
	}
	for i := 0; i < len(digits); i++ {
		t[digits[i]] = int8(i) //nolint:gosec // i < 64
	}
	return t
}()

// AppendUint appends the base-64 digits of u to dst.
func AppendUint(dst []byte, u uint64) []byte {
	if u == 0 {
		return append(dst, '0')
	}
	var buf [11]byte
	i := len(buf)
	for u != 0 {
		i--
		buf[i] = digits[u&63]
		u >>= 6
	}
	return append(dst, buf[i:]...)
}

// EncodeUint returns the base-64 digits of u.
func EncodeUint(u uint64) string {
	return string(AppendUint(nil, u))
}

// EncodeInt returns the base-64 digits of i, with a '~' prefix when negative.
func EncodeInt(i int) string {
	if i < 0 {
		return "~" + EncodeUint(uint64(-int64(i)))
	}
	return EncodeUint(uint64(i))
}

// DecodeUint parses base-64 digits written by EncodeUint.
func DecodeUint(s string) (uint64, error) {
	if s == "" {
		return 0, ErrEmpty
	}
	var u uint64
	for i := 0; i < len(s); i++ {
		d := digitValue[s[i]]
		if d < 0 {
			return 0, fmt.Errorf("textenc: invalid digit %q in %q", s[i], s)
		}
		if bits.LeadingZeros64(u) < 6 {
			return 0, fmt.Errorf("textenc: integer %q overflows uint64", s)
		}
		u = u<<6 | uint64(d)
	}
	return u, nil
}

// DecodeInt parses an integer written by EncodeInt.
func DecodeInt(s string) (int, error) {
	neg := strings.HasPrefix(s, "~")
	if neg {
		s = s[1:]
	}
	u, err := DecodeUint(s)
	if err != nil {
		return 0, err
	}
	if u > 1<<62 {
		return 0, fmt.Errorf("textenc: integer %q out of range", s)
	}
	if neg {
		return -conv.Uint64ToInt(u), nil
	}
	return conv.Uint64ToInt(u), nil
}

// EncodeString base64-encodes s without padding.
func EncodeString(s string) string {
	return base64.RawStdEncoding.EncodeToString([]byte(s))
}

// DecodeString reverses EncodeString.
func DecodeString(s string) (string, error) {
	b, err := base64.RawStdEncoding.DecodeString(s)
	if err != nil {
		return "", fmt.Errorf("textenc: %w", err)
	}
	return string(b), nil
}

// EncodeUints joins the encodings of us with sep.
func EncodeUints(us []uint64, sep byte) string {
	var b []byte
	for i, u := range us {
		if i > 0 {
			b = append(b, sep)
		}
		b = AppendUint(b, u)
	}
	return string(b)
}

// DecodeUints splits s on sep and decodes each element.
// An empty s yields an empty slice.
func DecodeUints(s string, sep byte) ([]uint64, error) {
	if s == "" {
		return nil, nil
	}
	parts := strings.Split(s, string(sep))
	out := make([]uint64, len(parts))
	for i, p := range parts {
		u, err := DecodeUint(p)
		if err != nil {
			return nil, err
		}
		out[i] = u
	}
	return out, nil
}
