package progress

import (
	"fmt"
	"io"
	"os"
	"sync"
	"sync/atomic"
	"time"
)

// Options configures a Bar.
type Options struct {
	// Total is the number of entries expected.
	Total int

	// Output is where the bar is rendered.
	// Default: os.Stderr
	Output io.Writer

	// UpdateInterval is how often the bar is redrawn.
	// Default: 200ms
	UpdateInterval time.Duration
}

// Bar renders a single-line progress bar to a terminal.
type Bar struct {
	opts Options

	pos       atomic.Int64
	mu        sync.Mutex
	msg       string
	startTime time.Time
	stopCh    chan struct{}
	doneCh    chan struct{}
	once      sync.Once
}

func NewBar(opts Options) *Bar {
	if opts.Output == nil {
		opts.Output = os.Stderr
	}
	if opts.UpdateInterval == 0 {
		opts.UpdateInterval = 200 * time.Millisecond
	}

	return &Bar{
		opts:   opts,
		stopCh: make(chan struct{}),
		doneCh: make(chan struct{}),
	}
}

func (b *Bar) Tick() {
	b.pos.Add(1)
}

func (b *Bar) SetMessage(msg string) {
	b.mu.Lock()
	b.msg = msg
	b.mu.Unlock()
}

// Position returns the number of ticks so far.
func (b *Bar) Position() int64 {
	return b.pos.Load()
}

// Start begins redrawing the bar in the background.
func (b *Bar) Start() {
	b.startTime = time.Now()
	go b.updateLoop()
}

// Finish stops redrawing and prints the final state on its own line.
// It must follow Start and is safe to call more than once.
func (b *Bar) Finish() {
	b.once.Do(func() {
		close(b.stopCh)
		<-b.doneCh
	})
}

func (b *Bar) updateLoop() {
	defer close(b.doneCh)

	ticker := time.NewTicker(b.opts.UpdateInterval)
	defer ticker.Stop()

	for {
		select {
		case <-b.stopCh:
			b.render()
			fmt.Fprintln(b.opts.Output)
			return
		case <-ticker.C:
			b.render()
		}
	}
}

func (b *Bar) render() {
	b.mu.Lock()
	msg := b.msg
	b.mu.Unlock()

	fmt.Fprintf(b.opts.Output, "\r[%s] %s %7d/%-7d %s\033[K",
		formatElapsed(time.Since(b.startTime)),
		drawBar(b.pos.Load(), int64(b.opts.Total), 40),
		b.pos.Load(),
		b.opts.Total,
		msg,
	)
}

// drawBar renders pos/total as a fixed-width "##-" bar.
func drawBar(pos, total int64, width int) string {
	filled := width
	if total > 0 {
		filled = int(pos * int64(width) / total)
	}
	if filled > width {
		filled = width
	}

	bar := make([]byte, width)
	for i := range bar {
		if i < filled {
			bar[i] = '#'
		} else {
			bar[i] = '-'
		}
	}
	return string(bar)
}

func formatElapsed(d time.Duration) string {
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	return fmt.Sprintf("%02d:%02d:%02d", h, m, s)
}
