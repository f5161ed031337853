// Package entity defines the core domain entities and validation logic for the application.
// It contains the fundamental business objects such as Quote, along with
// their validation rules and domain-specific errors.
package entity

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// Source identifies where a quote originated.
type Source string

// Known quote origins. User-submitted quotes carry SourceUser; everything
// else names an external ingestion collaborator.
const (
	SourceQuotable  Source = "quotable"
	SourceDummyJSON Source = "dummyjson"
	SourceToScrape  Source = "toscrape"
	SourceRSS       Source = "rss"
	SourceUser      Source = "user"
)

// Valid reports whether the source is one of the known origins.
func (s Source) Valid() bool {
	switch s {
	case SourceQuotable, SourceDummyJSON, SourceToScrape, SourceRSS, SourceUser:
		return true
	}
	return false
}

// Quote represents a single quote in the system.
// All fields except Likes are immutable after creation; Likes only increases
// through the like operation and is never decremented.
// The JSON shape is the canonical serialization used by both cache tiers;
// timestamps round-trip as RFC 3339 and tags as ordered arrays.
type Quote struct {
	ID        string    `json:"id"`
	Text      string    `json:"text"`
	Author    string    `json:"author"`
	Tags      []string  `json:"tags"`
	Likes     int64     `json:"likes"`
	Source    Source    `json:"source"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Fingerprint returns a stable content hash over the normalized text and
// author. Ingestion uses it to de-duplicate the same quote arriving from
// different sources with different ids.
func (q *Quote) Fingerprint() string {
	norm := strings.ToLower(strings.TrimSpace(q.Text)) + "|" + strings.ToLower(strings.TrimSpace(q.Author))
	sum := sha256.Sum256([]byte(norm))
	return hex.EncodeToString(sum[:])
}
