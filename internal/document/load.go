package document

import (
	"bytes"
	"encoding/json"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/gertty/internal/errors"
	"github.com/thoreinstein/gertty/internal/schema"
	"github.com/thoreinstein/gertty/pkg/fileutil"
)

// Format is a document encoding.
type Format string

// Supported document formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFor picks the format from the file extension. Anything that is not
// .toml is read as YAML, which also covers JSON.
func FormatFor(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".toml") {
		return FormatTOML
	}
	return FormatYAML
}

// Load reads, validates and decodes the document at path. The path must
// already be expanded. A missing file yields a *MissingError.
func Load(path string) (*Document, error) {
	raw, info, err := ReadRaw(path)
	if err != nil {
		return nil, err
	}
	if err := schema.Validate(raw); err != nil {
		return nil, err
	}

	doc, err := Decode(raw)
	if err != nil {
		return nil, err
	}
	doc.Path = path
	doc.Mode = info.Mode().Perm()
	return doc, nil
}

// ReadRaw reads and parses the file at path without validating it. The
// returned map holds JSON value types only.
func ReadRaw(path string) (map[string]any, fs.FileInfo, error) {
	info, err := os.Stat(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil, &MissingError{Path: path}
		}
		return nil, nil, errors.Wrapf(err, "checking %s", path)
	}
	if info.IsDir() {
		return nil, nil, errors.Newf("%s is a directory", path)
	}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "reading %s", path)
	}

	raw, err := Parse(data, FormatFor(path))
	if err != nil {
		return nil, nil, errors.Wrapf(err, "parsing %s", path)
	}
	return raw, info, nil
}

// Parse decodes data into generic values. YAML input must hold exactly
// one document. An empty document parses to an empty map.
func Parse(data []byte, format Format) (map[string]any, error) {
	var parsed any
	switch format {
	case FormatTOML:
		var m map[string]any
		if err := toml.Unmarshal(data, &m); err != nil {
			return nil, err
		}
		parsed = m
	default:
		decoder := yaml.NewDecoder(bytes.NewReader(data))
		if err := decoder.Decode(&parsed); err != nil && !errors.Is(err, io.EOF) {
			return nil, err
		}
		if err := decoder.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
			return nil, errors.New("expected a single YAML document")
		}
	}

	if parsed == nil {
		return map[string]any{}, nil
	}
	return normalize(parsed)
}

// normalize converts parser output to the types encoding/json produces so
// the schema validator sees one representation regardless of format.
func normalize(v any) (map[string]any, error) {
	payload, err := json.Marshal(v)
	if err != nil {
		return nil, errors.Wrap(err, "document must be a mapping with string keys")
	}
	var out any
	if err := json.Unmarshal(payload, &out); err != nil {
		return nil, errors.Wrap(err, "normalizing document")
	}
	m, ok := out.(map[string]any)
	if !ok {
		return nil, errors.New("document must be a mapping")
	}
	return m, nil
}

// Decode converts validated generic values into a Document.
func Decode(raw map[string]any) (*Document, error) {
	payload, err := yaml.Marshal(raw)
	if err != nil {
		return nil, errors.Wrap(err, "serializing document")
	}

	var doc Document
	decoder := yaml.NewDecoder(bytes.NewReader(payload))
	decoder.KnownFields(true)
	if err := decoder.Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decoding document")
	}
	return &doc, nil
}
