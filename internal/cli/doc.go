// Package cli provides the interactive docqa command-line front end.
//
// It is a thin consumer of the store facade: a read-eval-print loop that
// registers and logs users in, uploads text documents, asks questions about
// them and shows the interaction history. Session state (the logged-in user
// and their language) lives only in the App value.
package cli
