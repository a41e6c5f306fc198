package ingest

import (
	"io"
	"unicode/utf8"
)

// utf8Sanitizer wraps a feed file reader and replaces invalid UTF-8
// bytes with '?' on the fly, so a feed exported with a stray legacy
// encoding cannot poison stored text fields. Memory use stays bounded
// by the read buffer.
type utf8Sanitizer struct {
	reader io.Reader

	// pending holds trailing bytes that may start a multi-byte rune cut
	// off by the read boundary.
	pending []byte
}

func newUTF8Sanitizer(r io.Reader) *utf8Sanitizer {
	return &utf8Sanitizer{
		reader:  r,
		pending: make([]byte, 0, utf8.UTFMax),
	}
}

func (s *utf8Sanitizer) Read(p []byte) (int, error) {
	if len(p) == 0 {
		return 0, nil
	}

	offset := 0
	if len(s.pending) > 0 {
		offset = copy(p, s.pending)
		s.pending = s.pending[:0]
	}

	n, err := s.reader.Read(p[offset:])
	n += offset
	if n == 0 {
		return 0, err
	}

	// Feed tables are overwhelmingly ASCII; skip the rune walk then.
	if allASCII(p[:n]) {
		return n, err
	}

	return s.sanitize(p[:n], err == io.EOF), err
}

func allASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

// sanitize rewrites data in place and returns the number of usable
// bytes. Unless atEOF, an incomplete trailing rune is carried over to
// the next read instead of being replaced.
func (s *utf8Sanitizer) sanitize(data []byte, atEOF bool) int {
	write := 0
	for read := 0; read < len(data); {
		r, size := utf8.DecodeRune(data[read:])

		if !atEOF && read+size >= len(data) && incompleteRune(data[read:]) {
			s.pending = append(s.pending, data[read:]...)
			return write
		}

		if r == utf8.RuneError && size == 1 {
			// '?' keeps the output the same length as the input, which
			// an in-place rewrite requires.
			data[write] = '?'
			write++
			read++
		} else {
			copy(data[write:], data[read:read+size])
			write += size
			read += size
		}
	}
	return write
}

// incompleteRune reports whether data could be the truncated start of a
// multi-byte rune.
func incompleteRune(data []byte) bool {
	if len(data) == 0 || data[0] < 0xC0 {
		return false
	}
	want := 2
	switch {
	case data[0] >= 0xF0:
		want = 4
	case data[0] >= 0xE0:
		want = 3
	}
	return want > len(data)
}
