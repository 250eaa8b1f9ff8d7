package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/docqa/internal/flagx"
	"github.com/dmitrijs2005/docqa/internal/timex"
)

// JsonConfig is the on-disk shape of the optional config file. Pointer and
// zero-valued fields distinguish "absent" from "set", so a partial file only
// overrides what it names.
type JsonConfig struct {
	DataDir          string          `json:"data_dir"`
	StorageBackend   string          `json:"storage_backend"`
	DatabaseDSN      string          `json:"database_dsn"`
	S3RootUser       string          `json:"s3_root_user"`
	S3RootPassword   string          `json:"s3_root_password"`
	S3Bucket         string          `json:"s3_bucket"`
	S3Region         string          `json:"s3_region"`
	S3BaseEndpoint   string          `json:"s3_base_endpoint"`
	S3Prefix         *string         `json:"s3_prefix"`
	MaxCharsPerDoc   *int            `json:"max_chars_per_doc"`
	CredentialScheme string          `json:"credential_scheme"`
	LogLevel         string          `json:"log_level"`
	LogFormat        string          `json:"log_format"`
	GenAIAPIKey      string          `json:"genai_api_key"`
	GenAIModel       string          `json:"genai_model"`
	AnswerTimeout    *timex.Duration `json:"answer_timeout"`
	HistoryLimit     *int            `json:"history_limit"`
}

// parseJson loads configuration values from the JSON file named by the -c or
// -config flag into config. Without the flag nothing is loaded. An unreadable
// file or invalid JSON panics: a config file that was asked for and cannot be
// used is a startup error.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	if err := json.Unmarshal(file, c); err != nil {
		panic(err)
	}

	setString(&config.DataDir, c.DataDir)
	setString(&config.StorageBackend, c.StorageBackend)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.S3RootUser, c.S3RootUser)
	setString(&config.S3RootPassword, c.S3RootPassword)
	setString(&config.S3Bucket, c.S3Bucket)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.CredentialScheme, c.CredentialScheme)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.LogFormat, c.LogFormat)
	setString(&config.GenAIAPIKey, c.GenAIAPIKey)
	setString(&config.GenAIModel, c.GenAIModel)

	if c.S3Prefix != nil {
		config.S3Prefix = *c.S3Prefix
	}
	if c.MaxCharsPerDoc != nil {
		config.MaxCharsPerDoc = *c.MaxCharsPerDoc
	}
	if c.AnswerTimeout != nil {
		config.AnswerTimeout = c.AnswerTimeout.Duration
	}
	if c.HistoryLimit != nil {
		config.HistoryLimit = *c.HistoryLimit
	}
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
