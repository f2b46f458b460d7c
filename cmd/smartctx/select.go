package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"github.com/ternarylabs/smartctx/pkg/config"
	"github.com/ternarylabs/smartctx/pkg/embedcache"
	"github.com/ternarylabs/smartctx/pkg/embedding"
	"github.com/ternarylabs/smartctx/pkg/logging"
	"github.com/ternarylabs/smartctx/pkg/model"
	"github.com/ternarylabs/smartctx/pkg/modelmeta"
	"github.com/ternarylabs/smartctx/pkg/scanner"
	"github.com/ternarylabs/smartctx/pkg/selector"
	"github.com/ternarylabs/smartctx/pkg/sysenv"
	"github.com/ternarylabs/smartctx/pkg/tokencount"
)

var (
	selectMode      string
	selectBudget    uint32
	selectPrompt    string
	selectModelName string
	selectJSON      bool
)

var selectCmd = &cobra.Command{
	Use:   "select <path>",
	Short: "Select the files most relevant to a prompt from a workspace",
	Args:  cobra.ExactArgs(1),
	RunE:  runSelect,
}

func init() {
	selectCmd.Flags().StringVar(&selectMode, "mode", "balanced", "selection mode: off, conservative, balanced")
	selectCmd.Flags().Uint32Var(&selectBudget, "budget", 0, "token budget (0 derives from --model)")
	selectCmd.Flags().StringVar(&selectPrompt, "prompt", "", "user prompt driving the selection")
	selectCmd.Flags().StringVar(&selectModelName, "model", "", "downstream model name, used to derive a token budget")
	selectCmd.Flags().BoolVar(&selectJSON, "json", false, "print the full debug trace as JSON")
}

func runSelect(_ *cobra.Command, args []string) error {
	appPath, err := filepath.Abs(args[0])
	if err != nil {
		return fmt.Errorf("resolving workspace path: %w", err)
	}

	cfg, err := config.Load(appPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	log := logging.Get(cfg.EmbeddingCacheDir(appPath))

	cache, err := embedcache.New(cfg.EmbeddingCacheDir(appPath))
	if err != nil {
		return fmt.Errorf("opening embedding cache: %w", err)
	}
	// Eviction runs in the background on construction rather than
	// blocking this call; a large cache directory should never add
	// latency to a select request.
	go cache.Cleanup(time.Now(), cfg.MaxCacheAge)

	var embedder model.Embedder
	if cfg.EmbeddingProvider == "deepinfra" {
		apiKey := os.Getenv("DEEPINFRA_API_KEY")
		embedder = embedding.NewDeepInfraEmbedder(apiKey, cfg.EmbeddingModel)
	}

	engine := &selector.Engine{
		Scanner:    &scanner.Scanner{MaxBytes: cfg.MaxCandidateBytes},
		Estimator:  tokencount.New(),
		ModelMeta:  modelmeta.Provider{},
		Embedder:   embedder,
		Cache:      cache,
		Filesystem: sysenv.Filesystem{Root: appPath},
		Clock:      sysenv.Clock{},
		Log:        log,
	}

	mode := model.Mode(selectMode)
	result, err := engine.Select(context.Background(), selector.Options{
		AppPath:       appPath,
		Mode:          mode,
		Model:         selectModelName,
		TokenBudget:   selectBudget,
		Prompt:        model.PromptContext{UserPrompt: selectPrompt},
		MaxConcurrent: cfg.MaxConcurrentEmbeddings,
	})
	if err != nil {
		return fmt.Errorf("running selection: %w", err)
	}

	if selectJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(result)
	}

	for _, f := range result.SelectedFiles {
		fmt.Println(f.Path)
	}
	fmt.Fprintf(os.Stderr, "selected %d/%d files (%d/%d tokens, method=%s)\n",
		result.Debug.SelectedCount, result.Debug.TotalCandidates,
		result.Debug.TokenUsage, result.Debug.TokenBudget, result.Debug.ScoringMethod)
	return nil
}
