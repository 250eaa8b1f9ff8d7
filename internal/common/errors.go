package common

import "errors"

var (
	// Backend-level errors.
	ErrorNotFound = errors.New("not found")

	// Persistence errors. ErrCorruptData is never recovered by substituting
	// empty data; ErrIO means the mutation was not committed.
	ErrCorruptData = errors.New("corrupt data")
	ErrIO          = errors.New("i/o error")

	// Account errors.
	ErrDuplicateUsername   = errors.New("username already exists")
	ErrInvalidCredentials  = errors.New("invalid username or password")
	ErrUnknownUser         = errors.New("unknown user")
	ErrUnsupportedLanguage = errors.New("unsupported language")

	// Question answering errors.
	ErrNoDocuments       = errors.New("no documents uploaded")
	ErrAnswerFailed      = errors.New("answer generation failed")
	ErrAnswerUnavailable = errors.New("answer generation is not configured")
)
