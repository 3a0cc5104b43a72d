package config

import (
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	// DefaultHost is the PDS queried when no host is given.
	DefaultHost = "bsky.network"
	// DefaultOutputFile is where matches are written, relative to the working directory.
	DefaultOutputFile = "did-web-repos.json"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	PDSHost     string
	OutputFile  string
	HTTPTimeout time.Duration
	DebugMode   bool
	CacheFile   string
	NoCache     bool
	HistoryDB   string
	S3Bucket    string
	S3ObjectKey string
	AWSRegion   string
}

// FromEnvironment creates a Config from environment variables.
func FromEnvironment() Config {
	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("PDS_HOST", DefaultHost)
	v.SetDefault("OUTPUT_FILE", DefaultOutputFile)
	v.SetDefault("HTTP_TIMEOUT", time.Duration(0))

	cacheFile := v.GetString("CACHE_FILE")

	return Config{
		PDSHost:     v.GetString("PDS_HOST"),
		OutputFile:  v.GetString("OUTPUT_FILE"),
		HTTPTimeout: v.GetDuration("HTTP_TIMEOUT"),
		DebugMode:   truthy(v.GetString("DEBUG")),
		CacheFile:   cacheFile,
		NoCache:     cacheFile == "",
		HistoryDB:   v.GetString("HISTORY_DB"),
		S3Bucket:    v.GetString("S3_BUCKET_NAME"),
		S3ObjectKey: v.GetString("S3_OBJECT_KEY"),
		AWSRegion:   v.GetString("AWS_REGION"),
	}
}

// ResolveHost returns the host named by the first positional argument, or
// the configured host when there is none.
func (c Config) ResolveHost(args []string) string {
	if len(args) > 0 && args[0] != "" {
		return args[0]
	}
	if c.PDSHost == "" {
		return DefaultHost
	}
	return c.PDSHost
}

func truthy(val string) bool {
	return val != "" && val != "0" && strings.ToLower(val) != "false"
}
