package csvx

import "unicode/utf8"

// sanitizeUTF8 returns data with every invalid UTF-8 sequence replaced by the
// Unicode replacement character (U+FFFD). Valid input is returned unchanged
// without copying.
func sanitizeUTF8(data []byte) []byte {
	if isAllASCII(data) || utf8.Valid(data) {
		return data
	}

	out := make([]byte, 0, len(data))
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			out = utf8.AppendRune(out, utf8.RuneError)
			i++
			continue
		}
		out = append(out, data[i:i+size]...)
		i += size
	}
	return out
}

// isAllASCII returns true if all bytes are ASCII (< 128).
// This is a fast path since most survey exports are ASCII.
func isAllASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
