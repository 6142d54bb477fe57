package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEnqueuer struct {
	tasks []*asynq.Task
}

func (f *fakeEnqueuer) EnqueueContext(_ context.Context, task *asynq.Task, _ ...asynq.Option) (*asynq.TaskInfo, error) {
	f.tasks = append(f.tasks, task)
	return &asynq.TaskInfo{ID: "task-1", Queue: "default"}, nil
}

func (f *fakeEnqueuer) Close() error { return nil }

type fakeSender struct {
	to, username string
	err          error
}

func (f *fakeSender) SendWelcomeEmail(_ context.Context, to, username string) error {
	f.to, f.username = to, username
	return f.err
}

func newTestService(q enqueuer, s WelcomeSender) *JobService {
	logger := zerolog.Nop()
	return &JobService{client: q, emails: s, logger: &logger}
}

func TestEnqueueWelcomeEmail(t *testing.T) {
	q := &fakeEnqueuer{}
	j := newTestService(q, &fakeSender{})

	require.NoError(t, j.EnqueueWelcomeEmail(context.Background(), "jane@example.com", "jane"))
	require.Len(t, q.tasks, 1)
	assert.Equal(t, TaskWelcome, q.tasks[0].Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(q.tasks[0].Payload(), &p))
	assert.Equal(t, WelcomeEmailPayload{To: "jane@example.com", Username: "jane"}, p)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	sender := &fakeSender{}
	j := newTestService(&fakeEnqueuer{}, sender)

	task, err := NewWelcomeEmailTask("jane@example.com", "jane")
	require.NoError(t, err)

	require.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
	assert.Equal(t, "jane@example.com", sender.to)
	assert.Equal(t, "jane", sender.username)
}

func TestHandleWelcomeEmailTask_SendFailureIsRetried(t *testing.T) {
	j := newTestService(&fakeEnqueuer{}, &fakeSender{err: errors.New("smtp down")})

	task, err := NewWelcomeEmailTask("jane@example.com", "jane")
	require.NoError(t, err)

	err = j.handleWelcomeEmailTask(context.Background(), task)
	require.Error(t, err)
	assert.False(t, errors.Is(err, asynq.SkipRetry))
}

func TestHandleWelcomeEmailTask_BadPayloadSkipsRetry(t *testing.T) {
	j := newTestService(&fakeEnqueuer{}, &fakeSender{})

	err := j.handleWelcomeEmailTask(context.Background(), asynq.NewTask(TaskWelcome, []byte("{")))
	assert.True(t, errors.Is(err, asynq.SkipRetry))
}
