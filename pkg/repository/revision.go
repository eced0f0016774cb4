package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/database"
	"github.com/transitflow/transitflow/pkg/pipelineerror"
	"github.com/transitflow/transitflow/pkg/transmodel"
)

// RevisionRepository manages organisation_datasetrevision rows.
type RevisionRepository struct {
	*Base[*transmodel.OrganisationDatasetRevision]

	manager *database.Manager
}

func NewRevisionRepository(manager *database.Manager) *RevisionRepository {
	return &RevisionRepository{
		Base: NewBase(Table[*transmodel.OrganisationDatasetRevision]{
			Name:     "organisation_datasetrevision",
			IDColumn: "id",
			Columns: []string{
				"dataset_id", "status", "name", "description", "comment",
				"is_published", "published_at", "original_file_hash", "modified_file_hash",
				"created", "modified",
			},
			Scan: func(row Scanner) (*transmodel.OrganisationDatasetRevision, error) {
				revision := &transmodel.OrganisationDatasetRevision{}
				err := row.Scan(&revision.ID, &revision.DatasetID, &revision.Status,
					&revision.Name, &revision.Description, &revision.Comment,
					&revision.IsPublished, &revision.PublishedAt,
					&revision.OriginalFileHash, &revision.ModifiedFileHash,
					&revision.Created, &revision.Modified)
				return revision, err
			},
			Values: func(revision *transmodel.OrganisationDatasetRevision) []any {
				return []any{
					revision.DatasetID, revision.Status, revision.Name,
					revision.Description, revision.Comment, revision.IsPublished,
					revision.PublishedAt, revision.OriginalFileHash, revision.ModifiedFileHash,
					revision.Created, revision.Modified,
				}
			},
		}),
		manager: manager,
	}
}

// RequireByID fetches a revision, translating not-found into the domain
// error carried on failed task rows.
func (r *RevisionRepository) RequireByID(ctx context.Context, session *Session, id int64) (*transmodel.OrganisationDatasetRevision, error) {
	revision, err := r.GetByID(ctx, session, id)
	if err != nil {
		if IsNotFound(err) {
			return nil, &NotFoundError{
				Entity:    "organisationDatasetRevision",
				ID:        id,
				ErrorCode: pipelineerror.CodeSystemError,
				Cause:     err,
			}
		}
		return nil, err
	}

	return revision, nil
}

// PublishRevision is idempotent: an already-published revision is left
// untouched, a SUCCESS revision goes LIVE, and anything else is refused
// without a write.
func (r *RevisionRepository) PublishRevision(ctx context.Context, revisionID int64) error {
	return WithSession(ctx, r.manager, func(session *Session) error {
		query := "SELECT status, is_published FROM organisation_datasetrevision WHERE id = $1 FOR UPDATE"

		var status transmodel.RevisionStatus
		var isPublished bool
		if err := session.Tx().QueryRowContext(ctx, query, revisionID).Scan(&status, &isPublished); err != nil {
			return wrap(err, query, revisionID)
		}

		if isPublished {
			log.Debug().Int64("revision", revisionID).Msg("Revision already published")
			return nil
		}

		if status != transmodel.RevisionSuccess {
			return &Error{
				Kind:  KindUpdateConflict,
				Cause: fmt.Errorf("revision %d has status %s, cannot publish", revisionID, status),
			}
		}

		update := `UPDATE organisation_datasetrevision
			SET status = $1, is_published = TRUE, published_at = $2, modified = $2
			WHERE id = $3`
		if _, err := session.Tx().ExecContext(ctx, update, transmodel.RevisionLive, time.Now().UTC(), revisionID); err != nil {
			return wrap(err, update, revisionID)
		}

		log.Info().Int64("revision", revisionID).Msg("Revision published")
		return nil
	})
}
