package transmodel

import (
	"time"

	"github.com/transitflow/transitflow/pkg/pipelineerror"
)

// DatasetETLTaskResult is a row of pipelines_datasetetltaskresult. TaskID is
// unique per ETL run; ErrorCode is one of the pipeline error codes when the
// task failed.
type DatasetETLTaskResult struct {
	BaseSQLModel

	ID             int64
	TaskID         string
	Status         TaskStatus
	Completed      *time.Time
	RevisionID     int64
	Progress       int
	TaskNameFailed string
	ErrorCode      *pipelineerror.Code
	AdditionalInfo *string
}
