package client

import (
	"context"
	"errors"
	"sync"

	"github.com/hibiken/asynq"
)

var ErrNoClient = errors.New("queue client is not configured")

// Enqueuer is the part of *asynq.Client the services use.
type Enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
}

type ctxKey int

const (
	_ ctxKey = iota
	asyncQCtxKey
)

var (
	globalClient Enqueuer
	globalMu     sync.RWMutex
)

// GetClient returns the client stored in ctx, or the global one, which can be
// reconfigured with SetClient. It's safe for concurrent use.
func GetClient(ctx context.Context) Enqueuer {
	c := ctx.Value(asyncQCtxKey)
	if c != nil {
		client, ok := c.(Enqueuer)
		if !ok {
			return nil
		}

		return client
	}

	globalMu.RLock()
	client := globalClient
	globalMu.RUnlock()

	return client
}

// SetClient replaces the global Client, and returns a
// function to restore the original value. It's safe for concurrent use.
func SetClient(client Enqueuer) func() {
	globalMu.Lock()
	prev := globalClient
	globalClient = client
	globalMu.Unlock()
	return func() { SetClient(prev) }
}

// WithClient returns a context that GetClient resolves to client.
func WithClient(ctx context.Context, client Enqueuer) context.Context {
	return context.WithValue(ctx, asyncQCtxKey, client)
}

// Enqueue puts task on the queue with the client resolved from ctx.
func Enqueue(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error) {
	client := GetClient(ctx)
	if client == nil {
		return nil, ErrNoClient
	}

	return client.EnqueueContext(ctx, task, opts...)
}
