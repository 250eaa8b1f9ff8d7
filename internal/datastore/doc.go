// Package datastore is the durable store: it persists each dataset (users,
// documents, interaction log) as one JSON document and loads it back.
//
// Every save rewrites the whole dataset. At the scale this store targets
// (one small document per dataset) that keeps the format trivially
// inspectable and makes atomicity a property of the backend's single replace
// operation: a temp file renamed over the target, one upserted row, or one
// PutObject. The price is that every mutation is a read-modify-write of the
// entire dataset, so writers to the same dataset must be serialized. Dataset
// owns that mutual exclusion; nothing above it needs its own lock.
//
// A dataset that was never written loads as the caller's empty collection.
// Content that exists but does not decode is reported as common.ErrCorruptData
// and is never replaced by empty data.
package datastore
