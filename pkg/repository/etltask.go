package repository

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/database"
	"github.com/transitflow/transitflow/pkg/pipelineerror"
	"github.com/transitflow/transitflow/pkg/transmodel"
	"github.com/transitflow/transitflow/pkg/util"
)

// additionalInfoLength caps the free-text detail stored on a failed task.
const additionalInfoLength = 512

// TaskResultRepository manages pipelines_datasetetltaskresult rows.
type TaskResultRepository struct {
	manager *database.Manager
}

func NewTaskResultRepository(manager *database.Manager) *TaskResultRepository {
	return &TaskResultRepository{manager: manager}
}

// RequireByTaskID fetches a task row, translating not-found into the domain
// error.
func (r *TaskResultRepository) RequireByTaskID(ctx context.Context, session *Session, taskID string) (*transmodel.DatasetETLTaskResult, error) {
	query := `SELECT id, task_id, status, completed, revision_id, progress,
		task_name_failed, error_code, additional_info, created, modified
		FROM pipelines_datasetetltaskresult WHERE task_id = $1`

	task := &transmodel.DatasetETLTaskResult{}
	err := session.Tx().QueryRowContext(ctx, query, taskID).Scan(
		&task.ID, &task.TaskID, &task.Status, &task.Completed, &task.RevisionID,
		&task.Progress, &task.TaskNameFailed, &task.ErrorCode, &task.AdditionalInfo,
		&task.Created, &task.Modified)
	if err != nil {
		wrapped := wrap(err, query, taskID)
		if wrapped.Kind == KindNotFound {
			return nil, &NotFoundError{
				Entity:    "pipelinesDatasetETLTaskResult",
				ID:        taskID,
				ErrorCode: pipelineerror.CodeSystemError,
				Cause:     wrapped,
			}
		}
		return nil, wrapped
	}

	return task, nil
}

// StartTask inserts a fresh PENDING task row for an ETL run.
func (r *TaskResultRepository) StartTask(ctx context.Context, taskID string, revisionID int64) error {
	return WithSession(ctx, r.manager, func(session *Session) error {
		now := time.Now().UTC()
		query := `INSERT INTO pipelines_datasetetltaskresult
			(task_id, status, revision_id, progress, task_name_failed, created, modified)
			VALUES ($1, $2, $3, 0, '', $4, $4)`

		if _, err := session.Tx().ExecContext(ctx, query, taskID, transmodel.TaskPending, revisionID, now); err != nil {
			return wrap(err, query, taskID, revisionID)
		}

		log.Info().Str("task", taskID).Int64("revision", revisionID).Msg("Task started")
		return nil
	})
}

// MarkStarted moves a pending task into the running state.
func (r *TaskResultRepository) MarkStarted(ctx context.Context, taskID string) error {
	return WithSession(ctx, r.manager, func(session *Session) error {
		query := `UPDATE pipelines_datasetetltaskresult
			SET status = $1, modified = $2 WHERE task_id = $3`

		if _, err := session.Tx().ExecContext(ctx, query, transmodel.TaskStarted, time.Now().UTC(), taskID); err != nil {
			return wrap(err, query, taskID)
		}

		return nil
	})
}

// MarkSuccess completes the task and resets any transient failure fields.
func (r *TaskResultRepository) MarkSuccess(ctx context.Context, taskID string) error {
	return WithSession(ctx, r.manager, func(session *Session) error {
		now := time.Now().UTC()
		query := `UPDATE pipelines_datasetetltaskresult
			SET status = $1, completed = $2, progress = 100, modified = $2
			WHERE task_id = $3`

		if _, err := session.Tx().ExecContext(ctx, query, transmodel.TaskSuccess, now, taskID); err != nil {
			return wrap(err, query, taskID)
		}

		log.Info().Str("task", taskID).Msg("Task marked successful")
		return nil
	})
}

// MarkError records a failure. The status guard means the first error wins;
// later failures of the same task keep the original code and task name.
func (r *TaskResultRepository) MarkError(ctx context.Context, taskID string, taskName string, code pipelineerror.Code, additionalInfo string) error {
	return WithSession(ctx, r.manager, func(session *Session) error {
		now := time.Now().UTC()
		query := `UPDATE pipelines_datasetetltaskresult
			SET status = $1, completed = $2, task_name_failed = $3, error_code = $4, additional_info = $5, modified = $2
			WHERE task_id = $6 AND status != $1`

		info := util.TrimString(additionalInfo, additionalInfoLength)
		result, err := session.Tx().ExecContext(ctx, query,
			transmodel.TaskFailure, now, taskName, code, info, taskID)
		if err != nil {
			return wrap(err, query, taskID)
		}

		if affected, err := result.RowsAffected(); err == nil && affected == 0 {
			log.Debug().Str("task", taskID).Msg("Task already failed, keeping first error")
			return nil
		}

		log.Warn().Str("task", taskID).Str("errorcode", string(code)).Msg("Task marked failed")
		return nil
	})
}

// UpdateProgress advances the task's progress percentage.
func (r *TaskResultRepository) UpdateProgress(ctx context.Context, taskID string, progress int) error {
	return WithSession(ctx, r.manager, func(session *Session) error {
		query := `UPDATE pipelines_datasetetltaskresult
			SET progress = $1, modified = $2 WHERE task_id = $3`

		if _, err := session.Tx().ExecContext(ctx, query, progress, time.Now().UTC(), taskID); err != nil {
			return wrap(err, query, taskID)
		}

		return nil
	})
}
