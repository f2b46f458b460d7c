// Package sysenv provides the real, OS-backed implementations of the
// Clock and Filesystem provider interfaces used outside of tests.
package sysenv

import (
	"os"
	"path/filepath"
	"time"

	"github.com/ternarylabs/smartctx/pkg/model"
)

// Clock reports wall-clock time via time.Now.
type Clock struct{}

func (Clock) NowMs() int64 { return time.Now().UnixMilli() }

// Filesystem resolves paths relative to Root and stats them on disk.
type Filesystem struct {
	Root string
}

func (f Filesystem) Stat(path string) (model.StatResult, error) {
	full := path
	if f.Root != "" && !filepath.IsAbs(path) {
		full = filepath.Join(f.Root, path)
	}
	info, err := os.Stat(full)
	if err != nil {
		return model.StatResult{}, err
	}
	return model.StatResult{MtimeMs: info.ModTime().UnixMilli()}, nil
}
