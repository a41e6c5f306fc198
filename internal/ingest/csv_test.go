package ingest

import (
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTable(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "table.txt"), []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestTableReader(t *testing.T) {
	dir := writeTable(t, "a,b\n1,2\n3,4\n")

	tr, err := openTable(dir, "table.txt")
	require.NoError(t, err)
	defer tr.Close()

	row, err := tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "1", row["a"])
	assert.Equal(t, "2", row["b"])
	assert.Equal(t, 2, tr.Line())

	row, err = tr.Next()
	require.NoError(t, err)
	assert.Equal(t, "3", row["a"])

	_, err = tr.Next()
	assert.Equal(t, io.EOF, err)
}

func TestTableReader_SkipsBOM(t *testing.T) {
	dir := writeTable(t, "\xEF\xBB\xBFa,b\n1,2\n")

	tr, err := openTable(dir, "table.txt")
	require.NoError(t, err)
	defer tr.Close()

	row, err := tr.Next()
	require.NoError(t, err)
	if _, ok := row["a"]; !ok {
		t.Fatalf("BOM not stripped from header: %v", row)
	}
}

func TestTableReader_RaggedRecord(t *testing.T) {
	dir := writeTable(t, "a,b\n1\n")

	tr, err := openTable(dir, "table.txt")
	require.NoError(t, err)
	defer tr.Close()

	_, err = tr.Next()
	require.Error(t, err)
}

func TestUTF8Sanitizer(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"ascii", "plain text", "plain text"},
		{"valid multibyte", "café", "café"},
		{"invalid byte", "caf\xff!", "caf?!"},
		{"truncated rune", "ok\xe2\x82", "ok??"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(newUTF8Sanitizer(strings.NewReader(tt.in)))
			require.NoError(t, err)
			assert.Equal(t, tt.want, string(got))
		})
	}
}

func TestUTF8Sanitizer_RuneSplitAcrossReads(t *testing.T) {
	// iotest-style one-byte reads force the sanitizer to buffer the
	// partial rune between calls.
	got, err := io.ReadAll(newUTF8Sanitizer(oneByteReader{strings.NewReader("café!")}))
	require.NoError(t, err)
	assert.Equal(t, "café!", string(got))
}

type oneByteReader struct{ r io.Reader }

func (o oneByteReader) Read(p []byte) (int, error) {
	if len(p) > 1 {
		p = p[:1]
	}
	return o.r.Read(p)
}
