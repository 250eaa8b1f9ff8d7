// Package common contains shared constants and sentinel errors used across
// the docqa store and its adapters.
package common

// Dataset names. Each one is persisted as a single unit by the durable store.
const (
	DatasetUsers        = "users"
	DatasetDocuments    = "documents"
	DatasetInteractions = "chat_history"
)

// DefaultMaxCharsPerDoc is how much of every document goes into the reference
// text handed to the answer generator.
const DefaultMaxCharsPerDoc = 2000
