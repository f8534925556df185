package payload

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"nsco/internal/charset"
)

func TestReadTrims(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(file, []byte("\n\tHello World\t\r\n"), 0644))

	s, err := Read(file, 0, charset.Default())
	require.NoError(t, err)
	assert.Equal(t, "Hello World", s)
}

func TestReadKeepsSpaces(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(file, []byte("  Hello  \n"), 0644))

	s, err := Read(file, 0, charset.Default())
	require.NoError(t, err)
	assert.Equal(t, "  Hello  ", s)
}

func TestReadNilCharset(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(file, []byte("  Hello  \n"), 0644))

	s, err := Read(file, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, "Hello", s)
}

func TestReadKeepsCharsetWhitespace(t *testing.T) {
	cs, err := charset.New("\t\n0123456789")
	require.NoError(t, err)

	dir := t.TempDir()
	file := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(file, []byte(" \t42\n\n\r "), 0644))

	s, err := Read(file, 0, cs)
	require.NoError(t, err)
	assert.Equal(t, "\t42\n\n", s)
}

func TestReadLimit(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "in.txt")
	require.NoError(t, os.WriteFile(file, []byte("0123456789"), 0644))

	_, err := Read(file, 9, nil)
	assert.ErrorContains(t, err, "larger than")

	s, err := Read(file, 10, nil)
	require.NoError(t, err)
	assert.Equal(t, "0123456789", s)
}

func TestReadInvalid(t *testing.T) {
	dir := t.TempDir()

	_, err := Read(filepath.Join(dir, "missing"), 0, charset.Default())
	assert.Error(t, err)

	file := filepath.Join(dir, "bin")
	require.NoError(t, os.WriteFile(file, []byte{'a', 0xff, 'b'}, 0644))
	_, err = Read(file, 0, charset.Default())
	assert.ErrorContains(t, err, "utf-8")
}

func TestWrite(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "sub", "out.txt")

	require.NoError(t, Write(file, "abc"))

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Equal(t, "abc\n", string(data))

	s, err := Read(file, 0, charset.Default())
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
}
