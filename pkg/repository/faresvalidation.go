package repository

import (
	"context"

	"github.com/transitflow/transitflow/pkg/database"
	"github.com/transitflow/transitflow/pkg/faresvalidator"
	"github.com/transitflow/transitflow/pkg/metrics"
	"github.com/transitflow/transitflow/pkg/transmodel"
)

// FaresValidationRepository persists validator observations and the
// per-revision report summary.
type FaresValidationRepository struct {
	manager *database.Manager
}

func NewFaresValidationRepository(manager *database.Manager) *FaresValidationRepository {
	return &FaresValidationRepository{manager: manager}
}

// SaveReport writes every observation and the summary row in one scope.
func (r *FaresValidationRepository) SaveReport(ctx context.Context, revisionID int64, reportFileName string, observations []faresvalidator.Observation) error {
	return WithSession(ctx, r.manager, func(session *Session) error {
		insert := `INSERT INTO fares_validator_faresvalidation
			(revision_id, code, file_name, error_line_no, type_of_observation, category, error, reference, importance)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

		for _, observation := range observations {
			_, err := session.Tx().ExecContext(ctx, insert,
				revisionID, observation.Code, observation.Filename, observation.Line,
				observation.TypeOfObservation, observation.Category,
				observation.Error, observation.Reference, observation.Importance)
			if err != nil {
				return wrap(err, insert, revisionID, observation.Filename)
			}
			metrics.ObservationsEmitted.Inc()
		}

		summary := `INSERT INTO fares_validator_faresvalidationresult
			(revision_id, count, report_file_name, created, modified)
			VALUES ($1, $2, $3, NOW(), NOW())
			ON CONFLICT (revision_id) DO UPDATE SET count = $2, report_file_name = $3, modified = NOW()`
		if _, err := session.Tx().ExecContext(ctx, summary, revisionID, len(observations), reportFileName); err != nil {
			return wrap(err, summary, revisionID)
		}

		return nil
	})
}

// SaveMetadata writes the aggregated fares metadata for a revision's dataset
// metadata row and its per-file catalogue entry.
func (r *FaresValidationRepository) SaveMetadata(ctx context.Context, metadata *transmodel.FaresMetadata, catalogue *transmodel.DataCatalogueMetadata) error {
	return WithSession(ctx, r.manager, func(session *Session) error {
		insert := `INSERT INTO fares_faresmetadata
			(datasetmetadata_ptr_id, num_of_fare_zones, num_of_lines, num_of_sales_offer_packages,
			 num_of_fare_products, num_of_user_profiles, valid_from, valid_to)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			ON CONFLICT (datasetmetadata_ptr_id) DO UPDATE SET
				num_of_fare_zones = $2, num_of_lines = $3, num_of_sales_offer_packages = $4,
				num_of_fare_products = $5, num_of_user_profiles = $6, valid_from = $7, valid_to = $8`
		_, err := session.Tx().ExecContext(ctx, insert,
			metadata.DatasetMetadataPtrID, metadata.NumOfFareZones, metadata.NumOfLines,
			metadata.NumOfSalesOfferPackages, metadata.NumOfFareProducts,
			metadata.NumOfUserProfiles, metadata.ValidFrom, metadata.ValidTo)
		if err != nil {
			return wrap(err, insert, metadata.DatasetMetadataPtrID)
		}

		entry := `INSERT INTO fares_datacataloguemetadata
			(fares_metadata_id, xml_file_name, valid_from, valid_to, national_operator_code,
			 line_id, line_name, atco_area, tariff_basis, product_type, product_name, user_type)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
			RETURNING id`
		err = session.Tx().QueryRowContext(ctx, entry,
			metadata.DatasetMetadataPtrID, catalogue.XMLFileName, catalogue.ValidFrom,
			catalogue.ValidTo, catalogue.NationalOperatorCode, catalogue.LineID,
			catalogue.LineName, catalogue.AtcoArea, catalogue.TariffBasis,
			catalogue.ProductType, catalogue.ProductName, catalogue.UserType).Scan(&catalogue.ID)
		if err != nil {
			return wrap(err, entry, metadata.DatasetMetadataPtrID, catalogue.XMLFileName)
		}

		metrics.RowsWritten.WithLabelValues("fares_datacataloguemetadata").Inc()

		return nil
	})
}
