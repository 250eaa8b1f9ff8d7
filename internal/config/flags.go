package config

import (
	"flag"
	"os"
	"time"

	"github.com/dmitrijs2005/docqa/internal/flagx"
)

var knownFlags = []string{
	"-d", "-s", "-p", "-u", "-w", "-b", "-g", "-e", "-x",
	"-m", "-a", "-l", "-f", "-k", "-o", "-t", "-n",
}

// parseFlags populates Config fields from command-line flags (see the package
// documentation for the list). os.Args is first filtered to the flags handled
// here with flagx.FilterArgs so that -c/-config do not collide. The answer
// timeout is accepted in whole seconds.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], knownFlags)

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.DataDir, "d", config.DataDir, "data directory")
	fs.StringVar(&config.StorageBackend, "s", config.StorageBackend, "storage backend (file, postgres, s3)")
	fs.StringVar(&config.DatabaseDSN, "p", config.DatabaseDSN, "PostgreSQL DSN")
	fs.StringVar(&config.S3RootUser, "u", config.S3RootUser, "S3 access key")
	fs.StringVar(&config.S3RootPassword, "w", config.S3RootPassword, "S3 secret key")
	fs.StringVar(&config.S3Bucket, "b", config.S3Bucket, "S3 bucket")
	fs.StringVar(&config.S3Region, "g", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3Prefix, "x", config.S3Prefix, "S3 object key prefix")
	fs.IntVar(&config.MaxCharsPerDoc, "m", config.MaxCharsPerDoc, "characters per document in the reference text")
	fs.StringVar(&config.CredentialScheme, "a", config.CredentialScheme, "credential scheme (plain, argon2id)")
	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.LogFormat, "f", config.LogFormat, "log format (json, text, console)")
	fs.StringVar(&config.GenAIAPIKey, "k", config.GenAIAPIKey, "GenAI API key")
	fs.StringVar(&config.GenAIModel, "o", config.GenAIModel, "GenAI model")

	answerTimeout := fs.Int("t", int(config.AnswerTimeout.Seconds()), "answer timeout (in seconds)")

	fs.IntVar(&config.HistoryLimit, "n", config.HistoryLimit, "history entries shown by the REPL")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.AnswerTimeout = time.Duration(*answerTimeout) * time.Second
}
