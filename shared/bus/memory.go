package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// MemoryBus is an in-process Bus for tests and single-node development runs.
// Handlers run synchronously on Publish so tests can assert ordering without
// sleeping.
type MemoryBus struct {
	mu       sync.RWMutex
	handlers map[string][]func(ctx context.Context, payload []byte)
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: map[string][]func(ctx context.Context, payload []byte){},
	}
}

func (b *MemoryBus) Publish(ctx context.Context, channel string, payload any) error {
	value, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal bus payload: %w", err)
	}

	b.mu.RLock()
	handlers := append([]func(ctx context.Context, payload []byte){}, b.handlers[channel]...)
	b.mu.RUnlock()

	for _, handler := range handlers {
		handler(ctx, value)
	}

	return nil
}

func (b *MemoryBus) Subscribe(_ context.Context, channel string, handler func(ctx context.Context, payload []byte)) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[channel] = append(b.handlers[channel], handler)
}
