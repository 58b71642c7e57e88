// Package walker renders an annotated box-drawing tree for a directory of
// source files.
package walker

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"doctree-go/internal/config"
	"doctree-go/internal/extract"
)

const (
	midConnector  = "├── "
	lastConnector = "└── "

	// Continuation markers appended to the prefix when recursing: a bar
	// while more siblings follow, a gap under the last subdirectory.
	barContinuation = "│   "
	gapContinuation = "    "
)

type Walker struct {
	cfg *config.Config
	log *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) *Walker {
	if logger == nil {
		logger = slog.Default()
	}
	return &Walker{cfg: cfg, log: logger}
}

// CollectFiles returns every recognized source file under root in visit
// order, applying the same skip rules the renderer uses. Unlistable
// directories are silently skipped here; the render pass turns them into
// inline error lines.
func (w *Walker) CollectFiles(root string) []string {
	var files []string
	w.collect(root, &files)
	return files
}

func (w *Walker) collect(dir string, out *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	files, dirs := w.partition(entries)
	for _, name := range files {
		*out = append(*out, filepath.Join(dir, name))
	}
	for _, name := range dirs {
		w.collect(filepath.Join(dir, name), out)
	}
}

// Render produces the tree lines for root. results carries prefetched
// extraction output; files missing from it are read on the spot.
func (w *Walker) Render(root string, results map[string]extract.Info) []string {
	var lines []string
	w.renderDir(root, "", results, &lines)
	return lines
}

func (w *Walker) renderDir(dir, prefix string, results map[string]extract.Info, lines *[]string) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		// One bracketed line in place of the subtree; siblings and the
		// parent's remaining output are unaffected.
		w.log.Warn("directory listing failed", "dir", dir, "error", err)
		*lines = append(*lines, fmt.Sprintf("%s[错误: %v]", prefix, err))
		return
	}

	files, dirs := w.partition(entries)

	for i, name := range files {
		// A file only takes the terminal connector when no subdirectory
		// follows it at this level.
		connector := midConnector
		if i == len(files)-1 && len(dirs) == 0 {
			connector = lastConnector
		}

		path := filepath.Join(dir, name)
		info, ok := results[path]
		if !ok {
			info = extract.File(path)
		}

		line := prefix + connector + name
		switch {
		case info.Name != "" && info.Summary != "":
			line += fmt.Sprintf(" ← %s (%s)", info.Name, info.Summary)
		case info.Name != "":
			line += " ← " + info.Name
		}
		*lines = append(*lines, line)
	}

	for i, name := range dirs {
		last := i == len(dirs)-1
		connector := midConnector
		continuation := barContinuation
		if last {
			connector = lastConnector
			continuation = gapContinuation
		}

		*lines = append(*lines, prefix+connector+name+"/")
		w.renderDir(filepath.Join(dir, name), prefix+continuation, results, lines)
	}
}

// partition splits a listing into recognized files and subdirectories,
// each sorted case-sensitively, with skip rules applied to both.
func (w *Walker) partition(entries []os.DirEntry) (files, dirs []string) {
	for _, e := range entries {
		name := e.Name()
		if w.skip(name) {
			continue
		}
		switch {
		case e.IsDir():
			dirs = append(dirs, name)
		case w.recognized(name):
			files = append(files, name)
		}
	}
	sort.Strings(files)
	sort.Strings(dirs)
	return files, dirs
}

func (w *Walker) skip(name string) bool {
	for _, suffix := range w.cfg.SkipSuffixes {
		if strings.HasSuffix(name, suffix) {
			return true
		}
	}
	for _, skip := range w.cfg.SkipNames {
		if name == skip {
			return true
		}
	}
	return false
}

func (w *Walker) recognized(name string) bool {
	for _, ext := range w.cfg.Extensions {
		if strings.HasSuffix(name, ext) {
			return true
		}
	}
	return false
}
