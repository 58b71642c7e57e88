package document

import (
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"

	"doctree-go/internal/config"
)

// Build assembles the full Markdown document around the rendered tree
// lines: title, subtitle quote, a fenced block holding the root label and
// the tree, and the file-count footer. No trailing newline.
func Build(cfg *config.Config, rootLabel string, treeLines []string) string {
	lines := make([]string, 0, len(treeLines)+9)
	lines = append(lines,
		"# "+cfg.Title,
		"",
		"> "+cfg.Subtitle,
		"",
		"```",
		rootLabel,
	)
	lines = append(lines, treeLines...)
	lines = append(lines,
		"```",
		"",
		fmt.Sprintf("**总计**: %d 个 %s 文件", CountFiles(cfg, treeLines), cfg.FileLabel),
	)
	return strings.Join(lines, "\n")
}

// CountFiles counts tree lines containing the first recognized extension.
// This is a line count, not a distinct-file count: a summary that happens
// to contain the marker makes its line count once more.
func CountFiles(cfg *config.Config, treeLines []string) int {
	if len(cfg.Extensions) == 0 {
		return 0
	}
	marker := cfg.Extensions[0]
	n := 0
	for _, line := range treeLines {
		if strings.Contains(line, marker) {
			n++
		}
	}
	return n
}

// Write stores the document at path. When an identical document is already
// there the write is skipped, so regenerating an unchanged tree does not
// bump the file's mtime (Unity re-imports on mtime changes).
func Write(doc, path string) (bool, error) {
	if existing, err := os.ReadFile(path); err == nil {
		if xxhash.Sum64(existing) == xxhash.Sum64String(doc) {
			return false, nil
		}
	}

	if err := os.WriteFile(path, []byte(doc), 0644); err != nil {
		return false, fmt.Errorf("failed to write document: %w", err)
	}
	return true, nil
}
