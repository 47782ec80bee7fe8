package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Keyer names cache entries.
type Keyer interface {
	// ArtifactKey names a rendered PDF of the document with hash docHash.
	ArtifactKey(docHash string, opts ArtifactKeyOpts) string
	// AssetKey names a normalized asset (logo) by its reference.
	AssetKey(ref string) string
	// OrderKey names an order document loaded from storage.
	OrderKey(number string) string
}

// ArtifactKeyOpts are the render options that change the PDF bytes.
type ArtifactKeyOpts struct {
	Locale   string `json:"locale"`
	Currency string `json:"currency"`
	TimeZone string `json:"time_zone"`
	Version  string `json:"version,omitempty"` // engine version, bumps invalidate old PDFs
}

// DefaultKeyer produces plain namespaced keys.
type DefaultKeyer struct{}

// NewDefaultKeyer returns the default keyer.
func NewDefaultKeyer() Keyer { return DefaultKeyer{} }

// ArtifactKey implements [Keyer].
func (DefaultKeyer) ArtifactKey(docHash string, opts ArtifactKeyOpts) string {
	return hashKey("pdf", docHash, opts)
}

// AssetKey implements [Keyer].
func (DefaultKeyer) AssetKey(ref string) string { return "asset:" + ref }

// OrderKey implements [Keyer].
func (DefaultKeyer) OrderKey(number string) string { return "order:" + number }

// hashKey builds "prefix:sha256(json(parts))".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	sum := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(sum[:]))
}

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
