// Package job runs background work on asynq, a Redis-backed queue.
// The API process enqueues tasks through Client and the same process
// consumes them with an embedded worker server.
package job

import (
	"context"

	"github.com/deppfellow/carcatalog/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// WelcomeSender delivers the welcome email. Implemented by *email.Client.
type WelcomeSender interface {
	SendWelcomeEmail(ctx context.Context, to, username string) error
}

type enqueuer interface {
	EnqueueContext(ctx context.Context, task *asynq.Task, opts ...asynq.Option) (*asynq.TaskInfo, error)
	Close() error
}

type JobService struct {
	client enqueuer
	server *asynq.Server
	emails WelcomeSender
	logger *zerolog.Logger
}

func NewJobService(logger *zerolog.Logger, cfg *config.Config, emails WelcomeSender) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	server := asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger: newAsynqLogger(logger),
		},
	)

	return &JobService{
		client: asynq.NewClient(redisOpt),
		server: server,
		emails: emails,
		logger: logger,
	}
}

// Start registers the task handlers and starts the workers. It does not block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	j.registerHandlers(mux)

	j.logger.Info().Msg("Starting background job server")

	return j.server.Start(mux)
}

func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.client.Close(); err != nil {
		j.logger.Warn().Err(err).Msg("closing job client")
	}
}

// EnqueueWelcomeEmail queues the welcome email for a new account.
func (j *JobService) EnqueueWelcomeEmail(ctx context.Context, to, username string) error {
	task, err := NewWelcomeEmailTask(to, username)
	if err != nil {
		return err
	}

	info, err := j.client.EnqueueContext(ctx, task)
	if err != nil {
		return err
	}

	j.logger.Debug().Str("task_id", info.ID).Str("queue", info.Queue).Msg("enqueued welcome email")
	return nil
}
