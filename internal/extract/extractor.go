// Package extract pulls a type name and a doc-comment summary out of C#
// source text. It is a best-effort regex classifier, not a parser: malformed
// files degrade to empty results instead of errors.
package extract

import (
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"doctree-go/internal/progress"
)

// Info holds what could be recovered from a single source file. Either
// field may be empty.
type Info struct {
	Name    string
	Summary string
}

const summaryLimit = 100

var (
	summaryBlockRe  = regexp.MustCompile(`(?s)/// <summary>\s*\n\s*/// (.*?)\s*\n\s*/// </summary>`)
	commentLeaderRe = regexp.MustCompile(`///\s*`)
	publicDeclRe    = regexp.MustCompile(`public\s+(class|interface|enum|struct)\s+(\w+)`)
	anyDeclRe       = regexp.MustCompile(`(class|interface|enum|struct)\s+(\w+)`)
)

// Parse extracts the primary declaration name and the XML <summary> text
// from file content. The two searches are independent.
func Parse(content string) Info {
	var info Info

	if m := summaryBlockRe.FindStringSubmatch(content); m != nil {
		s := commentLeaderRe.ReplaceAllString(strings.TrimSpace(m[1]), "")
		s = strings.ReplaceAll(s, "\n", " ")
		info.Summary = truncate(s, summaryLimit)
	}

	// The first line holding any declaration ends the scan; "public" only
	// breaks the tie within that line. A non-public declaration on an
	// earlier line therefore beats a public one further down.
	for _, line := range strings.Split(content, "\n") {
		if m := publicDeclRe.FindStringSubmatch(line); m != nil {
			info.Name = m[2]
			break
		}
		if m := anyDeclRe.FindStringSubmatch(line); m != nil {
			info.Name = m[2]
			break
		}
	}

	return info
}

func truncate(s string, limit int) string {
	r := []rune(s)
	if len(r) <= limit {
		return s
	}
	return string(r[:limit])
}

// File reads and parses one source file. Read failures are folded into the
// summary text so a broken file still renders as a tree line and never
// aborts the walk.
func File(path string) Info {
	data, err := os.ReadFile(path)
	if err != nil {
		return Info{Summary: fmt.Sprintf("(读取失败: %v)", err)}
	}
	return Parse(string(data))
}

// All prefetches extraction results for paths with up to workers concurrent
// readers. Every input path gets an entry, read failures included; callers
// that render from the map get identical output for any worker count.
func All(ctx context.Context, paths []string, workers int, bar *progress.Bar) map[string]Info {
	if workers < 1 {
		workers = 1
	}

	results := make(map[string]Info, len(paths))
	var mu sync.Mutex

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(workers)
	for _, path := range paths {
		path := path
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			info := File(path)
			mu.Lock()
			results[path] = info
			mu.Unlock()
			if bar != nil {
				bar.Step(path)
			}
			return nil
		})
	}
	// Only context cancellation surfaces here; the renderer re-reads any
	// path missing from a partial map.
	_ = g.Wait()

	return results
}
