// Package config loads runtime configuration for the docqa store and REPL.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-d string   data directory for the file backend
//	-s string   storage backend: file, postgres or s3
//	-p string   PostgreSQL DSN (postgres backend)
//	-u string   S3 access key
//	-w string   S3 secret key
//	-b string   S3 bucket
//	-g string   S3 region
//	-e string   S3 base endpoint (e.g. "http://127.0.0.1:9000")
//	-x string   S3 object key prefix
//	-m int      characters per document in the reference text
//	-a string   credential scheme: plain or argon2id
//	-l string   log level: debug, info, warn, error
//	-f string   log format: json, text or console
//	-k string   GenAI API key
//	-o string   GenAI model
//	-t int      answer timeout (seconds)
//	-n int      number of history entries the REPL shows
//
// # JSON schema
//
// Durations use timex.Duration, so values can be strings like "90s" or
// integer nanoseconds. Keys that are absent keep their default:
//
//	{
//	  "data_dir": "data",
//	  "storage_backend": "file",
//	  "max_chars_per_doc": 2000,
//	  "answer_timeout": "90s"
//	}
package config
