package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/klauspost/compress/zstd"

	"github.com/gruntwork-io/unitfilter/internal/errors"
)

// CompressedExt marks a zstd compressed document, such as `scenario.yaml.zst`.
const CompressedExt = ".zst"

// ReadFile reads a config document, choosing the decoder from the file extension.
// Files ending in .zst are decompressed first.
func ReadFile(path string) (*Config, error) {
	src, err := ReadSource(path)
	if err != nil {
		return nil, err
	}

	return Decode(path, src)
}

// ReadSource reads the raw document bytes of path, decompressing .zst files.
func ReadSource(path string) ([]byte, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.New(err)
	}

	if !strings.HasSuffix(path, CompressedExt) {
		return src, nil
	}

	decoder, err := zstd.NewReader(nil)
	if err != nil {
		return nil, errors.New(err)
	}
	defer decoder.Close()

	src, err = decoder.DecodeAll(src, nil)
	if err != nil {
		return nil, errors.New(DecodeError{Filename: path, Msg: "decompress: " + err.Error()})
	}

	return src, nil
}

// Decode parses src with the decoder matching the extension of path.
func Decode(path string, src []byte) (*Config, error) {
	switch Format(path) {
	case FormatYAML:
		return DecodeYAML(path, src)
	case FormatHCL:
		return DecodeHCL(path, src)
	}

	return nil, errors.New(UnsupportedFormatError{Path: path})
}

// Document formats recognised by Format.
const (
	FormatYAML = "yaml"
	FormatHCL  = "hcl"
)

// Format returns the document format of path, ignoring a trailing .zst, or "" if unknown.
// JSON documents are read as YAML.
func Format(path string) string {
	path = strings.TrimSuffix(path, CompressedExt)

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml", ".json":
		return FormatYAML
	case ".hcl":
		return FormatHCL
	}

	return ""
}

// CompressFile writes src zstd compressed to path.
func CompressFile(path string, src []byte) error {
	encoder, err := zstd.NewWriter(nil)
	if err != nil {
		return errors.New(err)
	}
	defer encoder.Close()

	if err := os.WriteFile(path, encoder.EncodeAll(src, nil), 0o644); err != nil {
		return errors.New(err)
	}

	return nil
}
