package client

import (
	"context"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingEnqueuer struct {
	tasks []string
}

func (r *recordingEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	r.tasks = append(r.tasks, task.Type())
	return &asynq.TaskInfo{Type: task.Type()}, nil
}

func TestEnqueue(t *testing.T) {
	restore := SetClient(nil)
	defer restore()

	_, err := Enqueue(context.Background(), asynq.NewTask("noop", nil))
	assert.ErrorIs(t, err, ErrNoClient)

	global := &recordingEnqueuer{}
	restoreGlobal := SetClient(global)
	defer restoreGlobal()

	_, err = Enqueue(context.Background(), asynq.NewTask("global", nil))
	require.NoError(t, err)

	scoped := &recordingEnqueuer{}
	_, err = Enqueue(WithClient(context.Background(), scoped), asynq.NewTask("scoped", nil))
	require.NoError(t, err)

	assert.Equal(t, []string{"global"}, global.tasks)
	assert.Equal(t, []string{"scoped"}, scoped.tasks)
}
