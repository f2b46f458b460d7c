// Package config loads smartctx configuration from a JSON file, merging
// loaded values over defaults: missing file or missing field is never
// fatal.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// ConfigDirName is the name of the smartctx state directory, relative to
// a workspace root or the user's home directory.
const ConfigDirName = ".smartctx"

// ConfigFileName is the name of the JSON config file inside ConfigDirName.
const ConfigFileName = "config.json"

// Config holds all smartctx configuration.
type Config struct {
	// DefaultMode is used when a caller does not specify a mode explicitly.
	DefaultMode string `json:"default_mode"`

	// EmbeddingProvider selects the Embedder implementation ("deepinfra" or "none").
	EmbeddingProvider string `json:"embedding_provider"`
	EmbeddingModel    string `json:"embedding_model"`

	// MaxCacheAge bounds how long an embedding cache entry may live on disk
	// before the cleanup pass evicts it, regardless of freshness.
	MaxCacheAge time.Duration `json:"max_cache_age"`

	// MaxConcurrentEmbeddings bounds the fan-out used when a select call
	// must embed multiple candidate files. EmbeddingBatchSize is loaded,
	// merged and saved with the rest of the config, but the selection
	// pipeline does not read it: candidates are not grouped into batches.
	EmbeddingBatchSize      int `json:"embedding_batch_size"`
	MaxConcurrentEmbeddings int `json:"max_concurrent_embeddings"`

	// CacheDir overrides the default "<workDir>/.smartctx/embeddings-cache" root.
	CacheDir string `json:"cache_dir"`

	// MaxCandidateBytes caps the size of a single file considered by the scanner.
	MaxCandidateBytes int64 `json:"max_candidate_bytes"`
}

// DefaultConfig returns configuration with sensible defaults, used when no
// config file exists or a field is missing from one that does.
func DefaultConfig() *Config {
	return &Config{
		DefaultMode:             "balanced",
		EmbeddingProvider:       "deepinfra",
		EmbeddingModel:          "Qwen/Qwen3-Embedding-4B",
		MaxCacheAge:             7 * 24 * time.Hour,
		EmbeddingBatchSize:      5,
		MaxConcurrentEmbeddings: 3,
		MaxCandidateBytes:       1 << 20, // 1 MiB
	}
}

// Load reads config from <workDir>/.smartctx/config.json, falling back to
// ~/.smartctx/config.json, and finally to DefaultConfig() if neither exists.
func Load(workDir string) (*Config, error) {
	if workDir != "" {
		path := filepath.Join(workDir, ConfigDirName, ConfigFileName)
		if _, statErr := os.Stat(path); statErr == nil {
			cfg, err := LoadFromPath(path)
			if err == nil {
				return cfg, nil
			}
		}
	}

	if home, err := os.UserHomeDir(); err == nil {
		path := filepath.Join(home, ConfigDirName, ConfigFileName)
		if _, statErr := os.Stat(path); statErr == nil {
			cfg, err := LoadFromPath(path)
			if err == nil {
				return cfg, nil
			}
		}
	}

	return DefaultConfig(), nil
}

// LoadFromPath reads config from a specific path, merging it over defaults.
func LoadFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return DefaultConfig(), nil
		}
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	loaded := &Config{}
	if err := json.Unmarshal(data, loaded); err != nil {
		return nil, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	return merge(loaded, DefaultConfig()), nil
}

// merge overlays non-zero fields of loaded onto defaults.
func merge(loaded, defaults *Config) *Config {
	result := *defaults

	if loaded.DefaultMode != "" {
		result.DefaultMode = loaded.DefaultMode
	}
	if loaded.EmbeddingProvider != "" {
		result.EmbeddingProvider = loaded.EmbeddingProvider
	}
	if loaded.EmbeddingModel != "" {
		result.EmbeddingModel = loaded.EmbeddingModel
	}
	if loaded.MaxCacheAge != 0 {
		result.MaxCacheAge = loaded.MaxCacheAge
	}
	if loaded.EmbeddingBatchSize != 0 {
		result.EmbeddingBatchSize = loaded.EmbeddingBatchSize
	}
	if loaded.MaxConcurrentEmbeddings != 0 {
		result.MaxConcurrentEmbeddings = loaded.MaxConcurrentEmbeddings
	}
	if loaded.CacheDir != "" {
		result.CacheDir = loaded.CacheDir
	}
	if loaded.MaxCandidateBytes != 0 {
		result.MaxCandidateBytes = loaded.MaxCandidateBytes
	}

	return &result
}

// EmbeddingCacheDir resolves the directory embeddings are cached under for
// the given workspace root, honoring CacheDir if set.
func (c *Config) EmbeddingCacheDir(workDir string) string {
	if c.CacheDir != "" {
		return c.CacheDir
	}
	return filepath.Join(workDir, ConfigDirName, "embeddings-cache")
}

// Save writes cfg to <workDir>/.smartctx/config.json, creating the
// directory if needed.
func Save(workDir string, cfg *Config) (string, error) {
	dir := filepath.Join(workDir, ConfigDirName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("creating config directory: %w", err)
	}

	path := filepath.Join(dir, ConfigFileName)
	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("writing config file: %w", err)
	}
	return path, nil
}
