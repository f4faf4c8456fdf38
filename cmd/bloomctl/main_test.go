package main

import (
	"bytes"
	"crypto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/forestrie/go-bloom/bloom"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCmd(t *testing.T, stdin string, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	cmd := newRootCmd(newApp(strings.NewReader(stdin), &out))
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs(append([]string{"--log-level", "NOOP"}, args...))
	err := cmd.Execute()
	return out.String(), err
}

func TestCreateAddTest(t *testing.T) {
	for _, format := range []string{"binary", "cbor"} {
		t.Run(format, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "fruit.bloom")

			_, err := runCmd(t, "", "create", path, "-p", "0.05", "-n", "100", "--format", format)
			require.NoError(t, err)

			_, err = runCmd(t, "", "add", path, "apple", "banana")
			require.NoError(t, err)

			out, err := runCmd(t, "", "test", path, "apple", "banana", "cherry")
			require.NoError(t, err)
			require.Equal(t, "apple\tmaybe\nbanana\tmaybe\ncherry\tabsent\n", out)

			f, got, err := loadFilter(path)
			require.NoError(t, err)
			require.Equal(t, fileFormat(format), got)
			require.Equal(t, 2, f.Count())
			require.Equal(t, 722, f.Size())
			require.Equal(t, 5, f.HashCount())
		})
	}
}

func TestAddFromStdin(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lines.bloom")
	_, err := runCmd(t, "", "create", path, "--hash", "sha256")
	require.NoError(t, err)

	_, err = runCmd(t, "one\ntwo\nthree\n", "add", path, "--stdin", "zero")
	require.NoError(t, err)

	f, _, err := loadFilter(path)
	require.NoError(t, err)
	require.Equal(t, 4, f.Count())
	require.Equal(t, crypto.SHA256, f.Hash())
	for _, s := range []string{"zero", "one", "two", "three"} {
		require.True(t, f.ContainsString(s), s)
	}
}

func TestStat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stat.bloom")
	_, err := runCmd(t, "", "create", path, "-p", "0.01", "-n", "1000")
	require.NoError(t, err)

	out, err := runCmd(t, "", "stat", path)
	require.NoError(t, err)
	assert.Contains(t, out, "size:             10099\n")
	assert.Contains(t, out, "hashes:           7\n")
	assert.Contains(t, out, "count:            0\n")
	assert.Contains(t, out, "format:           binary\n")
}

func TestCreateErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "f.bloom")

	_, err := runCmd(t, "", "create", path, "-p", "1.5")
	require.ErrorIs(t, err, bloom.ErrInvalidParameter)

	_, err = runCmd(t, "", "create", path, "-n", "0")
	require.ErrorIs(t, err, bloom.ErrInvalidParameter)

	_, err = runCmd(t, "", "create", path, "--hash", "crc32")
	require.ErrorIs(t, err, bloom.ErrHashUnavailable)

	_, err = runCmd(t, "", "create", path, "--format", "json")
	require.Error(t, err)

	_, err = os.Stat(path)
	require.True(t, os.IsNotExist(err))

	_, err = runCmd(t, "", "create", path)
	require.NoError(t, err)
	_, err = runCmd(t, "", "create", path)
	require.Error(t, err)
	_, err = runCmd(t, "", "create", path, "--force")
	require.NoError(t, err)
}

func TestAddErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := runCmd(t, "", "add", filepath.Join(dir, "missing.bloom"), "x")
	require.ErrorIs(t, err, os.ErrNotExist)

	garbage := filepath.Join(dir, "garbage.bloom")
	require.NoError(t, os.WriteFile(garbage, []byte("not a filter"), 0o644))
	_, err = runCmd(t, "", "add", garbage, "x")
	require.Error(t, err)

	path := filepath.Join(dir, "empty.bloom")
	_, err = runCmd(t, "", "create", path)
	require.NoError(t, err)
	_, err = runCmd(t, "", "add", path)
	require.Error(t, err)
}

func TestSaveFilterReplacesAtomically(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "atomic.bloom")

	f, err := bloom.New(0.01, 10)
	require.NoError(t, err)
	require.NoError(t, saveFilter(path, f, formatBinary))

	f.AddString("x")
	require.NoError(t, saveFilter(path, f, formatCBOR))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)

	g, format, err := loadFilter(path)
	require.NoError(t, err)
	require.Equal(t, formatCBOR, format)
	require.True(t, f.Equal(g))
}

func TestAddFromStdinLongAndCRLF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "crlf.bloom")
	_, err := runCmd(t, "", "create", path)
	require.NoError(t, err)

	long := strings.Repeat("x", 100*1024)
	_, err = runCmd(t, "a\r\nb\r\n"+long+"\n", "add", path, "--stdin")
	require.NoError(t, err)

	f, _, err := loadFilter(path)
	require.NoError(t, err)
	require.Equal(t, 3, f.Count())
	require.True(t, f.ContainsString("a"))
	require.True(t, f.ContainsString("b"))
	require.True(t, f.ContainsString(long))
}

func TestSaveFilterKeepsMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "mode.bloom")

	f, err := bloom.New(0.01, 10)
	require.NoError(t, err)
	require.NoError(t, saveFilter(path, f, formatBinary))

	info, err := os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o644), info.Mode().Perm())

	require.NoError(t, os.Chmod(path, 0o640))
	f.AddString("x")
	require.NoError(t, saveFilter(path, f, formatBinary))

	info, err = os.Stat(path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o640), info.Mode().Perm())
}
