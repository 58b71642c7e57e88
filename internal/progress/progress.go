package progress

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"
)

// Bar is a single-line terminal progress bar for the extraction stage.
// Safe for concurrent Step calls from the worker pool.
type Bar struct {
	mu       sync.Mutex
	total    int
	done     int
	width    int
	writer   io.Writer
	current  string
	lastDraw time.Time
}

func New(total int) *Bar {
	return &Bar{total: total, width: 40, writer: os.Stdout}
}

// NewWriter is New with an explicit output writer, for tests.
func NewWriter(total int, w io.Writer) *Bar {
	b := New(total)
	b.writer = w
	return b
}

// Step records one finished file. Redraws are throttled to every 100ms to
// avoid flicker, except for the final file.
func (b *Bar) Step(path string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.done++
	b.current = filepath.Base(path)

	now := time.Now()
	if now.Sub(b.lastDraw) < 100*time.Millisecond && b.done != b.total {
		return
	}
	b.lastDraw = now
	b.draw()
}

// draw must be called with mu held.
func (b *Bar) draw() {
	if b.total == 0 {
		return
	}
	filled := b.width * b.done / b.total
	if filled > b.width {
		filled = b.width
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", b.width-filled)

	fmt.Fprintf(b.writer, "\r\033[K[%s] %3d%% (%d/%d) %s",
		bar, 100*b.done/b.total, b.done, b.total, b.current)
}

// Finish pins the bar to 100% and terminates the line. A zero-total bar
// prints nothing at all.
func (b *Bar) Finish() {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.total == 0 {
		return
	}
	b.done = b.total
	b.draw()
	fmt.Fprintln(b.writer)
}
