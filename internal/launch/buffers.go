// SPDX-License-Identifier: MPL-2.0

package launch

import (
	"bytes"
	"io"
	"sync"
)

type (
	// Buffers is the registry of named output channels. One channel
	// holds the output of the most recent run routed to its key.
	Buffers struct {
		mu sync.Mutex
		m  map[string]*channelBuffer
	}

	// channelBuffer is a concurrency-safe accumulating buffer; the
	// child process writes while callers may read a snapshot.
	channelBuffer struct {
		mu  sync.Mutex
		buf bytes.Buffer
	}
)

// NewBuffers returns an empty channel registry.
func NewBuffers() *Buffers {
	return &Buffers{m: make(map[string]*channelBuffer)}
}

// reset returns the channel for key with its contents cleared, creating
// it on demand.
func (b *Buffers) reset(key string) *channelBuffer {
	b.mu.Lock()
	defer b.mu.Unlock()
	ch, ok := b.m[key]
	if !ok {
		ch = &channelBuffer{}
		b.m[key] = ch
	}
	ch.mu.Lock()
	ch.buf.Reset()
	ch.mu.Unlock()
	return ch
}

// Contents returns a snapshot of the named channel's output; missing
// channels read as empty.
func (b *Buffers) Contents(key string) string {
	b.mu.Lock()
	ch, ok := b.m[key]
	b.mu.Unlock()
	if !ok {
		return ""
	}
	ch.mu.Lock()
	defer ch.mu.Unlock()
	return ch.buf.String()
}

// Keys returns the names of all channels seen so far.
func (b *Buffers) Keys() []string {
	b.mu.Lock()
	defer b.mu.Unlock()
	keys := make([]string, 0, len(b.m))
	for k := range b.m {
		keys = append(keys, k)
	}
	return keys
}

var _ io.Writer = (*channelBuffer)(nil)

func (c *channelBuffer) Write(p []byte) (int, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.Write(p)
}

func (c *channelBuffer) String() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.buf.String()
}
