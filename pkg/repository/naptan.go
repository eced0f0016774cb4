package repository

import (
	"context"
	"time"

	"github.com/transitflow/transitflow/pkg/database"
	"github.com/transitflow/transitflow/pkg/metrics"
	"github.com/transitflow/transitflow/pkg/transmodel"
)

// NaptanRepository manages naptan_stoppoint rows.
type NaptanRepository struct {
	*Base[*transmodel.NaptanStopPoint]

	manager *database.Manager
}

func NewNaptanRepository(manager *database.Manager) *NaptanRepository {
	return &NaptanRepository{
		Base: NewBase(Table[*transmodel.NaptanStopPoint]{
			Name:     "naptan_stoppoint",
			IDColumn: "id",
			Columns: []string{
				"atco_code", "naptan_code", "common_name", "street", "indicator",
				"location", "admin_area_id", "locality_id", "stop_areas",
				"bus_stop_type", "stop_type", "created", "modified",
			},
			Scan: func(row Scanner) (*transmodel.NaptanStopPoint, error) {
				stop := &transmodel.NaptanStopPoint{}
				err := row.Scan(&stop.ID, &stop.AtcoCode, &stop.NaptanCode,
					&stop.CommonName, &stop.Street, &stop.Indicator,
					&stop.Location, &stop.AdminAreaID, &stop.LocalityID,
					&stop.StopAreas, &stop.BusStopType, &stop.StopType,
					&stop.Created, &stop.Modified)
				return stop, err
			},
			Values: func(stop *transmodel.NaptanStopPoint) []any {
				return []any{
					stop.AtcoCode, stop.NaptanCode, stop.CommonName, stop.Street,
					stop.Indicator, stop.Location, stop.AdminAreaID, stop.LocalityID,
					stop.StopAreas, stop.BusStopType, stop.StopType,
					stop.Created, stop.Modified,
				}
			},
		}),
		manager: manager,
	}
}

// UpsertStopPoints writes registry entries keyed on atco_code, refreshing
// rows that already exist.
func (r *NaptanRepository) UpsertStopPoints(ctx context.Context, session *Session, stops []*transmodel.NaptanStopPoint) error {
	query := `INSERT INTO naptan_stoppoint
		(atco_code, naptan_code, common_name, street, indicator, location,
		 admin_area_id, locality_id, stop_areas, bus_stop_type, stop_type, created, modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13)
		ON CONFLICT (atco_code) DO UPDATE SET
			naptan_code = EXCLUDED.naptan_code,
			common_name = EXCLUDED.common_name,
			street = EXCLUDED.street,
			indicator = EXCLUDED.indicator,
			location = EXCLUDED.location,
			admin_area_id = EXCLUDED.admin_area_id,
			locality_id = EXCLUDED.locality_id,
			stop_areas = EXCLUDED.stop_areas,
			bus_stop_type = EXCLUDED.bus_stop_type,
			stop_type = EXCLUDED.stop_type,
			modified = EXCLUDED.modified`

	now := time.Now().UTC()
	for _, stop := range stops {
		stop.TouchForInsert(now)
		values := r.Base.table.Values(stop)
		if _, err := session.Tx().ExecContext(ctx, query, values...); err != nil {
			r.observe("upsertStopPoints", err)
			return wrap(err, query, values...)
		}
	}

	r.observe("upsertStopPoints", nil)
	metrics.RowsWritten.WithLabelValues("naptan_stoppoint").Add(float64(len(stops)))

	return nil
}

// NaptanIDStream pages through {atcoCode -> id} in atco_code order. The
// stream is restartable: after an error the caller may call Next again and
// the same batch is refetched.
type NaptanIDStream struct {
	repository *NaptanRepository
	batchSize  int
	offset     int
	done       bool
}

// StreamNaptanIDs starts a lazy batched walk over the stop registry.
func (r *NaptanRepository) StreamNaptanIDs(batchSize int) *NaptanIDStream {
	return &NaptanIDStream{repository: r, batchSize: batchSize}
}

// Next fetches the next batch in its own session scope. It returns nil once
// the table is exhausted.
func (s *NaptanIDStream) Next(ctx context.Context) (map[string]int64, error) {
	if s.done {
		return nil, nil
	}

	var batch map[string]int64
	err := WithSession(ctx, s.repository.manager, func(session *Session) error {
		query := "SELECT atco_code, id FROM naptan_stoppoint ORDER BY atco_code LIMIT $1 OFFSET $2"

		rows, err := session.Tx().QueryContext(ctx, query, s.batchSize, s.offset)
		if err != nil {
			return wrap(err, query, s.batchSize, s.offset)
		}
		defer rows.Close()

		batch = make(map[string]int64)
		for rows.Next() {
			var atcoCode string
			var id int64
			if err := rows.Scan(&atcoCode, &id); err != nil {
				return wrap(err, query)
			}
			batch[atcoCode] = id
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	if len(batch) == 0 {
		s.done = true
		return nil, nil
	}

	s.offset += len(batch)
	if len(batch) < s.batchSize {
		s.done = true
	}

	return batch, nil
}
