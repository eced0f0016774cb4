// Package transmodel holds the typed row structs for the relational catalog:
// NaPTAN stops, the normalized timetable graph, fares metadata and the ETL
// bookkeeping tables. Column names and constraints match the running schema.
package transmodel

import "time"

// BaseSQLModel applies the shared timestamp semantics: Created is set once at
// insert, Modified on insert and every update. Both are UTC. Tables opt in by
// embedding.
type BaseSQLModel struct {
	Created  time.Time
	Modified time.Time
}

// TouchForInsert stamps both timestamps for a fresh row.
func (m *BaseSQLModel) TouchForInsert(now time.Time) {
	now = now.UTC()
	m.Created = now
	m.Modified = now
}

// TouchForUpdate advances Modified only.
func (m *BaseSQLModel) TouchForUpdate(now time.Time) {
	m.Modified = now.UTC()
}
