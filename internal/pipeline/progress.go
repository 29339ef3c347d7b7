package pipeline

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// progress shows a live probe counter. On a TTY it writes an inline
// \r-overwritten line; otherwise it is a no-op (per-file log lines already
// provide enough breadcrumbs in piped/logged output).
type progress struct {
	mu      sync.Mutex
	w       io.Writer
	enabled bool
	total   int
	done    int
	failed  int
}

func newProgress(w io.Writer, enabled bool, total int) *progress {
	return &progress{w: w, enabled: enabled && total > 0, total: total}
}

// step records one finished file. Safe for concurrent use.
func (p *progress) step(name string, failed bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.done++
	if failed {
		p.failed++
	}
	if !p.enabled {
		return
	}
	pct := p.done * 100 / p.total
	status := fmt.Sprintf("  Probing [%d/%d] %d%% ", p.done, p.total, pct)
	if p.failed > 0 {
		status += fmt.Sprintf("(%d failed) ", p.failed)
	}

	const maxName = 40
	name = truncateName(name, maxName)
	status += name

	// Pad to 80 chars to overwrite previous longer lines, then \r.
	if len(status) < 80 {
		status += strings.Repeat(" ", 80-len(status))
	}
	fmt.Fprintf(p.w, "\r%s", status)
}

// clear erases the inline progress line.
func (p *progress) clear() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.enabled {
		fmt.Fprintf(p.w, "\r%s\r", strings.Repeat(" ", 80))
	}
}

// truncateName shortens name to at most limit runes, marking the cut with "…".
func truncateName(name string, limit int) string {
	r := []rune(name)
	if len(r) <= limit {
		return name
	}
	return string(r[:limit-1]) + "…"
}
