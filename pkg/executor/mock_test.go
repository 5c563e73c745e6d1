package executor

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"
)

// mockFetcher is a mock implementation of fetcher.Fetcher for testing
type mockFetcher struct {
	fetchFunc func(ctx context.Context, remote string, dst io.Writer) (int64, error)
	calls     atomic.Int64
}

func (m *mockFetcher) Fetch(ctx context.Context, remote string, dst io.Writer) (int64, error) {
	m.calls.Add(1)
	if m.fetchFunc != nil {
		return m.fetchFunc(ctx, remote, dst)
	}
	return 0, fmt.Errorf("Fetch not implemented")
}

// echoFetcher writes the remote path as the file content.
func echoFetcher() *mockFetcher {
	return &mockFetcher{
		fetchFunc: func(_ context.Context, remote string, dst io.Writer) (int64, error) {
			n, err := io.Copy(dst, strings.NewReader(remote))
			return n, err
		},
	}
}

// mockReporter records progress events.
type mockReporter struct {
	ticks    atomic.Int64
	mu       sync.Mutex
	messages []string
}

func (m *mockReporter) Tick() {
	m.ticks.Add(1)
}

func (m *mockReporter) SetMessage(msg string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.messages = append(m.messages, msg)
}
