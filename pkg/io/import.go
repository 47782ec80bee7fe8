package io

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/podoc/pkg/document"
	"github.com/matzehuels/podoc/pkg/errors"
)

// Format is a document file format.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
	TOML Format = "toml"
)

// FormatFromPath returns the format selected by the extension of path.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	case ".toml":
		return TOML, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", filepath.Ext(path))
}

// ReadDocument decodes one document in format f from r.
func ReadDocument(r io.Reader, f Format) (document.Document, error) {
	var doc document.Document
	data, err := io.ReadAll(r)
	if err != nil {
		return doc, fmt.Errorf("read document: %w", err)
	}

	switch f {
	case JSON:
		err = json.Unmarshal(data, &doc)
	case YAML:
		err = yaml.Unmarshal(data, &doc)
	case TOML:
		_, err = toml.NewDecoder(bytes.NewReader(data)).Decode(&doc)
	default:
		return doc, errors.New(errors.ErrCodeInvalidFormat, "unsupported document format %q", f)
	}
	if err != nil {
		return doc, errors.Wrap(errors.ErrCodeInvalidDocument, err, "decode %s document", f)
	}
	return doc, nil
}

// ImportFile reads the document at path, picking the format from its
// extension.
//
// A missing file is reported with [errors.ErrCodeFileNotFound]; a file
// that does not decode with [errors.ErrCodeInvalidDocument].
func ImportFile(path string) (document.Document, error) {
	if err := errors.ValidateDocumentFilename(filepath.Base(path)); err != nil {
		return document.Document{}, err
	}
	f, err := FormatFromPath(path)
	if err != nil {
		return document.Document{}, err
	}

	file, err := os.Open(path)
	if os.IsNotExist(err) {
		return document.Document{}, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s", path)
	}
	if err != nil {
		return document.Document{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer file.Close()

	doc, err := ReadDocument(file, f)
	if err != nil {
		return doc, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}
