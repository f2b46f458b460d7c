// Package scanner implements the FileScanner provider: a gitignore-aware
// workspace walker that returns candidate files honoring .gitignore,
// a workspace-local ignore overlay, and a per-file byte-size cap.
package scanner

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"
	"github.com/ternarylabs/smartctx/pkg/model"
)

// OverlayFileName is a workspace-local ignore file layered on top of
// .gitignore, scoped to this tool's state directory.
const OverlayFileName = ".smartctx/ignore"

// Scanner walks a workspace directory and returns CodebaseFile candidates.
type Scanner struct {
	// MaxBytes caps the size of any single file considered; larger files
	// are skipped rather than truncated, since a truncated file would
	// silently feed partial content into scoring.
	MaxBytes int64
	// ForcedPaths marks files the upstream collaborator always wants
	// included (CodebaseFile.Force), independent of chat auto-includes.
	ForcedPaths map[string]bool
}

// Extract walks appPath, skipping anything matched by the compiled
// ignore rules or chat.ExcludePaths, and returns the remaining files.
func (s *Scanner) Extract(ctx context.Context, appPath string, chat model.ChatContext) ([]model.CodebaseFile, error) {
	rules := compileIgnoreRules(appPath)
	excluded := toSet(chat.ExcludePaths)

	var files []model.CodebaseFile
	err := filepath.Walk(appPath, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}

		rel, relErr := filepath.Rel(appPath, path)
		if relErr != nil {
			return nil
		}
		rel = filepath.ToSlash(rel)
		if rel == "." {
			return nil
		}

		if info.IsDir() {
			if rules.MatchesPath(rel) {
				return filepath.SkipDir
			}
			return nil
		}

		if rules.MatchesPath(rel) || excluded[rel] {
			return nil
		}
		if s.MaxBytes > 0 && info.Size() > s.MaxBytes {
			return nil
		}

		data, readErr := os.ReadFile(path)
		if readErr != nil {
			return nil
		}

		files = append(files, model.CodebaseFile{
			Path:    rel,
			Content: string(data),
			Force:   s.ForcedPaths[rel],
		})
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning workspace: %w", err)
	}

	return files, nil
}

func compileIgnoreRules(appPath string) *ignore.GitIgnore {
	var lines []string
	lines = append(lines, essentialPatterns...)

	if data, err := os.ReadFile(filepath.Join(appPath, ".gitignore")); err == nil {
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	if data, err := os.ReadFile(filepath.Join(appPath, OverlayFileName)); err == nil {
		lines = append(lines, strings.Split(string(data), "\n")...)
	}
	lines = append(lines, fallbackPatterns...)

	var filtered []string
	for _, line := range lines {
		line = strings.TrimSpace(line)
		if line != "" && !strings.HasPrefix(line, "#") {
			filtered = append(filtered, line)
		}
	}
	return ignore.CompileIgnoreLines(filtered...)
}

func toSet(items []string) map[string]bool {
	set := make(map[string]bool, len(items))
	for _, i := range items {
		set[filepath.ToSlash(i)] = true
	}
	return set
}

// essentialPatterns are always ignored, ahead of anything a .gitignore
// might say, to keep the tool from scoring its own state.
var essentialPatterns = []string{
	".smartctx/",
	".git/",
}

// fallbackPatterns cover the common build/dependency/editor noise most
// workspaces accumulate, so a missing or incomplete .gitignore still
// keeps the candidate set reasonable.
var fallbackPatterns = []string{
	"node_modules/",
	"vendor/",
	"dist/",
	"build/",
	"out/",
	"bin/",
	"target/",
	".next/",
	".nuxt/",
	".cache/",
	"__pycache__/",
	"*.pyc",
	".venv/",
	"venv/",
	".idea/",
	".vscode/",
	".DS_Store",
	"*.log",
	"*.lock",
	"coverage/",
	"*.min.js",
	"*.min.css",
}
