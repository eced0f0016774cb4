package transmodel

// RevisionStatus is the lifecycle state of an organisation dataset revision.
type RevisionStatus string

const (
	RevisionPending  RevisionStatus = "pending"
	RevisionIndexing RevisionStatus = "indexing"
	RevisionSuccess  RevisionStatus = "success"
	RevisionLive     RevisionStatus = "live"
	RevisionError    RevisionStatus = "error"
	RevisionExpired  RevisionStatus = "expired"
	RevisionInactive RevisionStatus = "inactive"
)

// TaskStatus is the state of a dataset ETL task result row.
type TaskStatus string

const (
	TaskPending TaskStatus = "PENDING"
	TaskStarted TaskStatus = "STARTED"
	TaskSuccess TaskStatus = "SUCCESS"
	TaskFailure TaskStatus = "FAILURE"
)
