package job

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/hibiken/asynq"
)

func (j *JobService) registerHandlers(mux *asynq.ServeMux) {
	mux.HandleFunc(TaskWelcome, j.handleWelcomeEmailTask)
}

func (j *JobService) handleWelcomeEmailTask(ctx context.Context, t *asynq.Task) error {
	var p WelcomeEmailPayload
	if err := json.Unmarshal(t.Payload(), &p); err != nil {
		return fmt.Errorf("failed to unmarshal welcome email payload: %w: %w", err, asynq.SkipRetry)
	}

	retry, _ := asynq.GetRetryCount(ctx)
	logger := j.logger.With().
		Str("task", TaskWelcome).
		Str("to", p.To).
		Int("retry", retry).
		Logger()

	if err := j.emails.SendWelcomeEmail(ctx, p.To, p.Username); err != nil {
		logger.Error().Err(err).Msg("welcome email failed")
		return err
	}

	logger.Info().Msg("welcome email sent")
	return nil
}
