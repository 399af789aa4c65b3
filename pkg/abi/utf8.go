package abi

import (
	"fmt"
	"strings"
)

// ToUTF8String decodes UTF-8 data into a string. Malformed sequences
// (unexpected continuation bytes, invalid prefixes, truncated sequences,
// overlong encodings, code points above U+10FFFF and UTF-16 surrogates) are
// reported as ErrInvalidUTF8 unless ignoreErrors is set, in which case they
// are skipped.
func ToUTF8String(data []byte, ignoreErrors bool) (string, error) {
	var sb strings.Builder

	sb.Grow(len(data))
	for i := 0; i < len(data); {
		c := data[i]
		i++
		if c>>7 == 0 {
			sb.WriteByte(c)
			continue
		}

		var extra, overlongMask int
		switch {
		case c&0xe0 == 0xc0:
			extra, overlongMask = 1, 0x7f
		case c&0xf0 == 0xe0:
			extra, overlongMask = 2, 0x7ff
		case c&0xf8 == 0xf0:
			extra, overlongMask = 3, 0xffff
		default:
			if ignoreErrors {
				continue
			}
			if c&0xc0 == 0x80 {
				return "", fmt.Errorf("%w; unexpected continuation byte at %d", ErrInvalidUTF8, i-1)
			}
			return "", fmt.Errorf("%w; invalid prefix at %d", ErrInvalidUTF8, i-1)
		}

		if i+extra > len(data) {
			if !ignoreErrors {
				return "", fmt.Errorf("%w; too short at %d", ErrInvalidUTF8, i-1)
			}
			for ; i < len(data) && data[i]>>6 == 0x02; i++ {
			}
			continue
		}

		var (
			res   = int(c) & ((1 << (8 - extra - 1)) - 1)
			valid = true
		)
		for j := 0; j < extra; j++ {
			next := data[i]
			if next&0xc0 != 0x80 {
				valid = false
				break
			}
			res = res<<6 | int(next&0x3f)
			i++
		}
		switch {
		case !valid:
			if ignoreErrors {
				continue
			}
			return "", fmt.Errorf("%w; invalid continuation byte at %d", ErrInvalidUTF8, i)
		case res <= overlongMask:
			if ignoreErrors {
				continue
			}
			return "", fmt.Errorf("%w; overlong at %d", ErrInvalidUTF8, i-extra-1)
		case res > 0x10ffff:
			if ignoreErrors {
				continue
			}
			return "", fmt.Errorf("%w; out-of-range at %d", ErrInvalidUTF8, i-extra-1)
		case res >= 0xd800 && res <= 0xdfff:
			if ignoreErrors {
				continue
			}
			return "", fmt.Errorf("%w; utf-16 surrogate at %d", ErrInvalidUTF8, i-extra-1)
		}
		sb.WriteRune(rune(res))
	}
	return sb.String(), nil
}
