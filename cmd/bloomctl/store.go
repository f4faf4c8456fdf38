package main

import (
	"bytes"
	"crypto"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/forestrie/go-bloom/bloom"
)

type fileFormat string

const (
	formatBinary fileFormat = "binary"
	formatCBOR   fileFormat = "cbor"
)

func parseFormat(s string) (fileFormat, error) {
	switch f := fileFormat(strings.ToLower(s)); f {
	case formatBinary, formatCBOR:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q, want %q or %q", s, formatBinary, formatCBOR)
	}
}

var hashNames = map[string]crypto.Hash{
	"md5":    crypto.MD5,
	"sha1":   crypto.SHA1,
	"sha256": crypto.SHA256,
	"sha512": crypto.SHA512,
}

func parseHash(s string) (crypto.Hash, error) {
	h, ok := hashNames[strings.ToLower(s)]
	if !ok {
		return 0, fmt.Errorf("%w: unknown digest %q", bloom.ErrHashUnavailable, s)
	}
	return h, nil
}

// loadFilter reads a persisted filter, detecting the format from the leading
// magic bytes.
func loadFilter(path string, opts ...bloom.Option) (*bloom.Filter, fileFormat, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, "", err
	}
	if bytes.HasPrefix(data, []byte(bloom.MagicV1)) {
		f, err := bloom.DecodeV1(data, opts...)
		if err != nil {
			return nil, "", fmt.Errorf("%s: %w", path, err)
		}
		return f, formatBinary, nil
	}
	f, err := bloom.DecodeCBOR(data, opts...)
	if err != nil {
		return nil, "", fmt.Errorf("%s: %w", path, err)
	}
	return f, formatCBOR, nil
}

// saveFilter writes f to path, replacing any existing file only once the new
// content is fully written.
func saveFilter(path string, f *bloom.Filter, format fileFormat) error {
	var data []byte
	var err error
	switch format {
	case formatCBOR:
		data, err = f.MarshalCBOR()
	default:
		data, err = f.MarshalBinary()
	}
	if err != nil {
		return err
	}

	// The replacement keeps the mode of the file it replaces.
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".*.tmp")
	if err != nil {
		return err
	}
	fail := func(err error) error {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Chmod(mode); err != nil {
		return fail(err)
	}
	if _, err := tmp.Write(data); err != nil {
		return fail(err)
	}
	if err := tmp.Sync(); err != nil {
		return fail(err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return nil
}
