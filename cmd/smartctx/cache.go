package cmd

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/ternarylabs/smartctx/pkg/config"
	"github.com/ternarylabs/smartctx/pkg/embedcache"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the embedding cache",
}

var cacheCleanCmd = &cobra.Command{
	Use:   "clean <path>",
	Short: "Evict embedding cache entries older than the configured max age",
	Args:  cobra.ExactArgs(1),
	RunE:  runCacheClean,
}

func init() {
	cacheCmd.AddCommand(cacheCleanCmd)
}

func runCacheClean(_ *cobra.Command, args []string) error {
	appPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving workspace path: %w", err)
	}

	cfg, err := config.Load(appPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	dir := cfg.EmbeddingCacheDir(appPath)
	cache, err := embedcache.New(dir)
	if err != nil {
		return fmt.Errorf("opening embedding cache: %w", err)
	}

	cache.Cleanup(time.Now(), cfg.MaxCacheAge)
	fmt.Printf("cleaned embedding cache at %s (max age %s)\n", dir, cfg.MaxCacheAge)
	return nil
}
