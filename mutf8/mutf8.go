// Package mutf8 transcodes between Modified UTF-8 and UTF-8.
//
// Modified UTF-8 is the string encoding of the NBT wire format. It differs
// from standard UTF-8 in two places: the code point U+0000 is written as the
// two-byte sequence C0 80 instead of a bare NUL, and supplementary code
// points (>= U+10000) are written as a pair of 3-byte sequences holding the
// UTF-16 surrogate halves, six bytes total, instead of one 4-byte sequence.
//
// The decoder tolerates unpaired surrogates on input; they decode to the
// surrogate code point itself so the original byte sequence survives a
// round-trip. Leading bytes F0..FF are invalid in Modified UTF-8 and are
// rejected with errs.ErrBadUTF8.
package mutf8

import (
	"fmt"

	"github.com/tagwire/nbt/errs"
)

const (
	surrogateMin  = 0xD800
	surrogateHigh = 0xDC00
	surrogateMax  = 0xDFFF
	supplementary = 0x10000
)

// Decode converts MUTF-8 bytes to a UTF-8 string.
func Decode(data []byte) (string, error) {
	// The output is at most as long as the input: 6-byte surrogate pairs
	// shrink to 4 bytes and C0 80 shrinks to one.
	out := make([]byte, 0, len(data))

	var pending uint16 // high surrogate waiting for its partner, 0 if none

	flushPending := func() {
		if pending != 0 {
			out = appendCodePoint(out, rune(pending))
			pending = 0
		}
	}

	for i := 0; i < len(data); {
		unit, size, err := decodeUnit(data, i)
		if err != nil {
			return "", err
		}
		i += size

		switch {
		case unit >= surrogateMin && unit < surrogateHigh:
			// High surrogate: hold it, the next unit may complete a pair.
			flushPending()
			pending = unit
		case unit >= surrogateHigh && unit <= surrogateMax:
			if pending != 0 {
				cp := supplementary +
					(rune(pending)-surrogateMin)<<10 +
					(rune(unit) - surrogateHigh)
				out = appendCodePoint(out, cp)
				pending = 0
			} else {
				// Unpaired low surrogate decodes to itself.
				out = appendCodePoint(out, rune(unit))
			}
		default:
			flushPending()
			out = appendCodePoint(out, rune(unit))
		}
	}
	flushPending()

	return string(out), nil
}

// decodeUnit reads one UTF-16 code unit starting at data[i] and returns it
// with the number of bytes consumed.
func decodeUnit(data []byte, i int) (uint16, int, error) {
	b := data[i]

	switch {
	case b&0x80 == 0x00:
		return uint16(b), 1, nil
	case b&0xE0 == 0xC0:
		if i+1 >= len(data) || data[i+1]&0xC0 != 0x80 {
			return 0, 0, fmt.Errorf("%w: truncated 2-byte sequence at offset %d", errs.ErrBadUTF8, i)
		}

		return uint16(b&0x1F)<<6 | uint16(data[i+1]&0x3F), 2, nil
	case b&0xF0 == 0xE0:
		if i+2 >= len(data) || data[i+1]&0xC0 != 0x80 || data[i+2]&0xC0 != 0x80 {
			return 0, 0, fmt.Errorf("%w: truncated 3-byte sequence at offset %d", errs.ErrBadUTF8, i)
		}

		return uint16(b&0x0F)<<12 | uint16(data[i+1]&0x3F)<<6 | uint16(data[i+2]&0x3F), 3, nil
	default:
		// Continuation bytes without a leader and the 4-byte leaders F0..FF.
		return 0, 0, fmt.Errorf("%w: invalid leading byte 0x%02X at offset %d", errs.ErrBadUTF8, b, i)
	}
}

// appendCodePoint appends cp in UTF-8 form. Unlike utf8.AppendRune it encodes
// surrogate code points in their 3-byte form instead of substituting U+FFFD,
// which keeps lenient decodes reversible.
func appendCodePoint(dst []byte, cp rune) []byte {
	switch {
	case cp < 0x80:
		return append(dst, byte(cp))
	case cp < 0x800:
		return append(dst, 0xC0|byte(cp>>6), 0x80|byte(cp&0x3F))
	case cp < supplementary:
		return append(dst, 0xE0|byte(cp>>12), 0x80|byte(cp>>6&0x3F), 0x80|byte(cp&0x3F))
	default:
		return append(dst,
			0xF0|byte(cp>>18), 0x80|byte(cp>>12&0x3F), 0x80|byte(cp>>6&0x3F), 0x80|byte(cp&0x3F))
	}
}

// Encode converts a UTF-8 string to MUTF-8 bytes.
func Encode(s string) ([]byte, error) {
	return AppendEncode(nil, s)
}

// AppendEncode appends the MUTF-8 encoding of s to dst and returns the
// extended slice.
func AppendEncode(dst []byte, s string) ([]byte, error) {
	for i := 0; i < len(s); {
		cp, size, err := decodeCodePoint(s, i)
		if err != nil {
			return nil, err
		}
		i += size

		switch {
		case cp == 0:
			// U+0000 must never appear as a bare NUL on the wire.
			dst = append(dst, 0xC0, 0x80)
		case cp < supplementary:
			dst = appendCodePoint(dst, cp)
		default:
			// Split into the UTF-16 surrogate halves, each in 3-byte form.
			cp -= supplementary
			high := surrogateMin + (cp >> 10)
			low := surrogateHigh + (cp & 0x3FF)
			dst = appendCodePoint(dst, high)
			dst = appendCodePoint(dst, low)
		}
	}

	return dst, nil
}

// decodeCodePoint reads one code point of (possibly surrogate-bearing) UTF-8
// starting at s[i].
func decodeCodePoint(s string, i int) (rune, int, error) {
	b := s[i]

	switch {
	case b&0x80 == 0x00:
		return rune(b), 1, nil
	case b&0xE0 == 0xC0:
		if i+1 >= len(s) || s[i+1]&0xC0 != 0x80 {
			return 0, 0, fmt.Errorf("%w: truncated 2-byte sequence at offset %d", errs.ErrBadUTF8, i)
		}

		return rune(b&0x1F)<<6 | rune(s[i+1]&0x3F), 2, nil
	case b&0xF0 == 0xE0:
		if i+2 >= len(s) || s[i+1]&0xC0 != 0x80 || s[i+2]&0xC0 != 0x80 {
			return 0, 0, fmt.Errorf("%w: truncated 3-byte sequence at offset %d", errs.ErrBadUTF8, i)
		}

		return rune(b&0x0F)<<12 | rune(s[i+1]&0x3F)<<6 | rune(s[i+2]&0x3F), 3, nil
	case b&0xF8 == 0xF0:
		if i+3 >= len(s) || s[i+1]&0xC0 != 0x80 || s[i+2]&0xC0 != 0x80 || s[i+3]&0xC0 != 0x80 {
			return 0, 0, fmt.Errorf("%w: truncated 4-byte sequence at offset %d", errs.ErrBadUTF8, i)
		}

		cp := rune(b&0x07)<<18 | rune(s[i+1]&0x3F)<<12 | rune(s[i+2]&0x3F)<<6 | rune(s[i+3]&0x3F)

		return cp, 4, nil
	default:
		return 0, 0, fmt.Errorf("%w: invalid leading byte 0x%02X at offset %d", errs.ErrBadUTF8, b, i)
	}
}
