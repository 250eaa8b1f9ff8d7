// Package models defines the three persisted collections of the docqa store
// (users, documents, interaction log) together with their JSON layout.
//
// Collections decode from files written by earlier versions of the
// application: naive ISO timestamps and the legacy "password" key are
// accepted on read and rewritten in the current layout on the next save.
package models
