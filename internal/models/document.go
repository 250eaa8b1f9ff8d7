package models

import (
	"fmt"
	"sort"
)

// Document is the latest upload of a named document for one owner. Only the
// current text is kept; Version counts the uploads of that name.
type Document struct {
	Owner      string    `json:"-"`
	Name       string    `json:"-"`
	Version    int       `json:"version"`
	Text       string    `json:"text"`
	UploadedAt Timestamp `json:"uploaded_at"`
	UpdatedAt  Timestamp `json:"updated_at"`
	// Seq is the owner-local insertion ordinal used for listing order.
	Seq int `json:"seq"`
}

// Documents maps owner id to document name to document.
type Documents map[string]map[string]*Document

// Owned returns the owner's documents in insertion order.
func (d Documents) Owned(owner string) []*Document {
	byName := d[owner]
	out := make([]*Document, 0, len(byName))
	for _, doc := range byName {
		out = append(out, doc)
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Seq != out[j].Seq {
			return out[i].Seq < out[j].Seq
		}
		if !out[i].UploadedAt.Equal(out[j].UploadedAt.Time) {
			return out[i].UploadedAt.Before(out[j].UploadedAt.Time)
		}
		return out[i].Name < out[j].Name
	})
	return out
}

// NextSeq returns the ordinal for the owner's next new document.
func (d Documents) NextSeq(owner string) int {
	next := 1
	for _, doc := range d[owner] {
		if doc.Seq >= next {
			next = doc.Seq + 1
		}
	}
	return next
}

// Normalize restores Owner and Name from the map keys after decoding.
func (d *Documents) Normalize() error {
	if *d == nil {
		*d = Documents{}
	}
	for owner, byName := range *d {
		if byName == nil {
			(*d)[owner] = map[string]*Document{}
			continue
		}
		for name, doc := range byName {
			if doc == nil {
				return fmt.Errorf("document %q of %q: missing record", name, owner)
			}
			if doc.Version < 1 {
				return fmt.Errorf("document %q of %q: invalid version %d", name, owner, doc.Version)
			}
			doc.Owner = owner
			doc.Name = name
		}
	}
	return nil
}
