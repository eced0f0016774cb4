package repository

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/database"
	"github.com/transitflow/transitflow/pkg/metrics"
	"github.com/transitflow/transitflow/pkg/tracks"
	"github.com/transitflow/transitflow/pkg/transmodel"
)

// TrackRepository manages transmodel_tracks rows and the similarity queries
// over them.
type TrackRepository struct {
	manager *database.Manager
}

func NewTrackRepository(manager *database.Manager) *TrackRepository {
	return &TrackRepository{manager: manager}
}

// BulkInsertIgnoreDuplicates inserts tracks with on-conflict-do-nothing on
// (from_atco_code, to_atco_code) and returns the ids of the rows actually
// inserted, keyed by stop pair. Pre-existing rows are absent from the result;
// callers needing their ids must query separately.
func (r *TrackRepository) BulkInsertIgnoreDuplicates(ctx context.Context, session *Session, rows []*transmodel.Track) (map[transmodel.StopPointPair]int64, error) {
	inserted := make(map[transmodel.StopPointPair]int64)
	if len(rows) == 0 {
		return inserted, nil
	}

	query := `INSERT INTO transmodel_tracks (from_atco_code, to_atco_code, geometry, distance)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (from_atco_code, to_atco_code) DO NOTHING
		RETURNING id`

	for _, track := range rows {
		var id int64
		err := session.Tx().QueryRowContext(ctx, query,
			track.FromAtcoCode, track.ToAtcoCode, track.Geometry, track.Distance).Scan(&id)
		if err != nil {
			wrapped := wrap(err, query, track.FromAtcoCode, track.ToAtcoCode)
			if wrapped.Kind == KindNotFound {
				// Conflict: the row already existed and nothing was returned.
				continue
			}
			return nil, wrapped
		}

		inserted[transmodel.StopPointPair{
			FromAtcoCode: track.FromAtcoCode,
			ToAtcoCode:   track.ToAtcoCode,
		}] = id
	}

	metrics.RowsWritten.WithLabelValues("transmodel_tracks").Add(float64(len(inserted)))
	log.Debug().Int("requested", len(rows)).Int("inserted", len(inserted)).Msg("Bulk inserted tracks")

	return inserted, nil
}

// FindDuplicateStopPointPairs returns the stop pairs owning more than one
// track row.
func (r *TrackRepository) FindDuplicateStopPointPairs(ctx context.Context) ([]transmodel.StopPointPair, error) {
	var pairs []transmodel.StopPointPair

	err := WithSession(ctx, r.manager, func(session *Session) error {
		query := `SELECT from_atco_code, to_atco_code FROM transmodel_tracks
			GROUP BY from_atco_code, to_atco_code HAVING COUNT(*) > 1
			ORDER BY from_atco_code, to_atco_code`

		rows, err := session.Tx().QueryContext(ctx, query)
		if err != nil {
			return wrap(err, query)
		}
		defer rows.Close()

		for rows.Next() {
			var pair transmodel.StopPointPair
			if err := rows.Scan(&pair.FromAtcoCode, &pair.ToAtcoCode); err != nil {
				return wrap(err, query)
			}
			pairs = append(pairs, pair)
		}

		return rows.Err()
	})

	return pairs, err
}

// SimilarTracksGroup is one stop pair's worth of duplicate candidates.
type SimilarTracksGroup struct {
	Pair       transmodel.StopPointPair
	Candidates []tracks.Pair
}

// StreamSimilarTrackPairsByStopPoints walks the given stop pairs, loading
// each pair's tracks in its own session scope and emitting the id pairs
// whose Hausdorff distance is under threshold. The stream closes when all
// pairs are processed or on the first error; which member of a group
// survives is the caller's policy.
func (r *TrackRepository) StreamSimilarTrackPairsByStopPoints(ctx context.Context, pairs []transmodel.StopPointPair, threshold float64) (<-chan SimilarTracksGroup, <-chan error) {
	groups := make(chan SimilarTracksGroup)
	errs := make(chan error, 1)

	go func() {
		defer close(groups)
		defer close(errs)

		for _, pair := range pairs {
			candidates, err := r.similarPairsFor(ctx, pair, threshold)
			if err != nil {
				errs <- err
				return
			}
			if len(candidates) == 0 {
				continue
			}

			select {
			case groups <- SimilarTracksGroup{Pair: pair, Candidates: candidates}:
			case <-ctx.Done():
				errs <- ctx.Err()
				return
			}
		}
	}()

	return groups, errs
}

func (r *TrackRepository) similarPairsFor(ctx context.Context, pair transmodel.StopPointPair, threshold float64) ([]tracks.Pair, error) {
	var group []tracks.Track

	err := WithSession(ctx, r.manager, func(session *Session) error {
		query := `SELECT id, ST_AsText(geometry) FROM transmodel_tracks
			WHERE from_atco_code = $1 AND to_atco_code = $2 AND geometry IS NOT NULL
			ORDER BY id`

		rows, err := session.Tx().QueryContext(ctx, query, pair.FromAtcoCode, pair.ToAtcoCode)
		if err != nil {
			return wrap(err, query, pair.FromAtcoCode, pair.ToAtcoCode)
		}
		defer rows.Close()

		for rows.Next() {
			var id int64
			var wkt string
			if err := rows.Scan(&id, &wkt); err != nil {
				return wrap(err, query)
			}

			points, err := transmodel.ParseLineStringWKT(wkt)
			if err != nil {
				log.Warn().Err(err).Int64("track", id).Msg("Skipping track with unparsable geometry")
				continue
			}

			group = append(group, tracks.Track{ID: id, Points: points})
		}

		return rows.Err()
	})
	if err != nil {
		return nil, err
	}

	return tracks.SimilarPairs(group, threshold), nil
}
