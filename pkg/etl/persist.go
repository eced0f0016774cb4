package etl

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/transitflow/transitflow/pkg/database"
	"github.com/transitflow/transitflow/pkg/metrics"
	"github.com/transitflow/transitflow/pkg/repository"
)

// Persister writes lowered documents into the relational catalog. One
// document is one session scope: either every row lands or none do.
type Persister struct {
	manager *database.Manager
	tracks  *repository.TrackRepository
}

func NewPersister(manager *database.Manager) *Persister {
	return &Persister{
		manager: manager,
		tracks:  repository.NewTrackRepository(manager),
	}
}

// LoadNaptanIDs drains the stop registry stream into one lookup map.
func (p *Persister) LoadNaptanIDs(ctx context.Context, batchSize int) (map[string]int64, error) {
	stream := repository.NewNaptanRepository(p.manager).StreamNaptanIDs(batchSize)

	ids := make(map[string]int64)
	for {
		batch, err := stream.Next(ctx)
		if err != nil {
			return nil, err
		}
		if batch == nil {
			return ids, nil
		}

		for atcoCode, id := range batch {
			ids[atcoCode] = id
		}
	}
}

// Persist writes one lowered document. naptanIDs resolves pattern stop atco
// codes onto the stop registry; unknown codes are stored without a registry
// link.
func (p *Persister) Persist(ctx context.Context, output *Output, revisionID int64, naptanIDs map[string]int64) error {
	err := repository.WithSession(ctx, p.manager, func(session *repository.Session) error {
		fileAttributesID, err := p.insertFileAttributes(ctx, session, output, revisionID)
		if err != nil {
			return err
		}

		for _, service := range output.Services {
			if err := p.persistService(ctx, session, service, revisionID, fileAttributesID, naptanIDs); err != nil {
				return err
			}
		}

		if _, err := p.tracks.BulkInsertIgnoreDuplicates(ctx, session, output.Tracks); err != nil {
			return err
		}

		return nil
	})
	if err != nil {
		metrics.DocumentsParsed.WithLabelValues("transxchange", "persist_failed").Inc()
		return err
	}

	metrics.DocumentsParsed.WithLabelValues("transxchange", "persisted").Inc()
	log.Info().
		Str("filename", output.FileAttributes.Filename).
		Int64("revision", revisionID).
		Msg("Document persisted")

	return nil
}

func (p *Persister) insertFileAttributes(ctx context.Context, session *repository.Session, output *Output, revisionID int64) (int64, error) {
	query := `INSERT INTO organisation_txcfileattributes
		(revision_id, schema_version, revision_number, creation_datetime, modification_datetime,
		 filename, service_code, national_operator_code, licence_number, origin, destination,
		 operating_period_start_date, operating_period_end_date, public_use, line_names, hash,
		 created, modified)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, NOW(), NOW())
		RETURNING id`

	attributes := output.FileAttributes
	var id int64
	err := session.Tx().QueryRowContext(ctx, query,
		revisionID, attributes.SchemaVersion, attributes.RevisionNumber,
		attributes.CreationDatetime, attributes.ModificationDatetime,
		attributes.Filename, attributes.ServiceCode, attributes.NationalOperatorCode,
		attributes.LicenceNumber, attributes.Origin, attributes.Destination,
		attributes.OperatingPeriodStartDate, attributes.OperatingPeriodEndDate,
		attributes.PublicUse, attributes.LineNames, attributes.Hash).Scan(&id)
	if err != nil {
		return 0, err
	}

	return id, nil
}

func (p *Persister) persistService(ctx context.Context, session *repository.Session, service *ServiceOutput, revisionID int64, fileAttributesID int64, naptanIDs map[string]int64) error {
	insertService := `INSERT INTO transmodel_service
		(service_code, name, start_date, end_date, service_type, revision_id, txcfileattributes_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	row := service.Service
	var serviceID int64
	err := session.Tx().QueryRowContext(ctx, insertService,
		row.ServiceCode, row.Name, row.StartDate, row.EndDate, row.ServiceType,
		revisionID, fileAttributesID).Scan(&serviceID)
	if err != nil {
		return err
	}

	for _, pattern := range service.Patterns {
		if err := p.persistPattern(ctx, session, pattern, serviceID, revisionID, naptanIDs); err != nil {
			return err
		}
	}

	return nil
}

func (p *Persister) persistPattern(ctx context.Context, session *repository.Session, pattern *PatternOutput, serviceID int64, revisionID int64, naptanIDs map[string]int64) error {
	insertPattern := `INSERT INTO transmodel_servicepattern
		(service_pattern_id, origin, destination, description, geom, revision_id, line_name)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`

	row := pattern.Pattern
	var patternID int64
	err := session.Tx().QueryRowContext(ctx, insertPattern,
		row.ServicePatternID, row.Origin, row.Destination, row.Description,
		row.Geom, revisionID, row.LineName).Scan(&patternID)
	if err != nil {
		return err
	}

	junction := `INSERT INTO transmodel_service_service_patterns (service_id, servicepattern_id) VALUES ($1, $2)`
	if _, err := session.Tx().ExecContext(ctx, junction, serviceID, patternID); err != nil {
		return err
	}

	journeyIDs := make([]int64, len(pattern.Journeys))
	insertJourney := `INSERT INTO transmodel_vehiclejourney
		(start_time, direction, journey_code, line_ref, departure_day_shift, service_pattern_id, block_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	insertPeriod := `INSERT INTO transmodel_flexibleserviceoperationperiod
		(vehicle_journey_id, start_time, end_time) VALUES ($1, $2, $3)`

	for i, journey := range pattern.Journeys {
		j := journey.Journey
		err := session.Tx().QueryRowContext(ctx, insertJourney,
			j.StartTime, j.Direction, j.JourneyCode, j.LineRef,
			j.DepartureDayShift, patternID, j.BlockNumber).Scan(&journeyIDs[i])
		if err != nil {
			return err
		}

		for _, period := range journey.OperationPeriods {
			if _, err := session.Tx().ExecContext(ctx, insertPeriod,
				journeyIDs[i], period.StartTime, period.EndTime); err != nil {
				return err
			}
		}
	}

	insertStop := `INSERT INTO transmodel_servicepatternstop
		(sequence_number, atco_code, naptan_stop_id, servicepattern_id, departure_time,
		 is_timing_point, txc_common_name, vehicle_journey_id, auto_sequence_number)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	for _, stop := range pattern.Stops {
		var naptanID *int64
		if id, ok := naptanIDs[stop.AtcoCode]; ok {
			naptanID = &id
		}

		var journeyID *int64
		if len(journeyIDs) > 0 {
			journeyID = &journeyIDs[0]
		}

		_, err := session.Tx().ExecContext(ctx, insertStop,
			stop.SequenceNumber, stop.AtcoCode, naptanID, patternID, stop.DepartureTime,
			stop.IsTimingPoint, stop.TXCCommonName, journeyID, stop.SequenceNumber)
		if err != nil {
			return err
		}
	}

	return nil
}
