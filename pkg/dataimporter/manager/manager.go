// Package manager drives an ETL run end to end: fetch the dataset, unpack
// it, parse and validate every document, lower it and write the rows, with
// the task result row tracking progress and the first failure.
package manager

import (
	"archive/zip"
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/sourcegraph/conc/pool"

	"github.com/transitflow/transitflow/pkg/dataimporter/datasets"
	"github.com/transitflow/transitflow/pkg/database"
	"github.com/transitflow/transitflow/pkg/etl"
	"github.com/transitflow/transitflow/pkg/faresvalidator"
	"github.com/transitflow/transitflow/pkg/metrics"
	"github.com/transitflow/transitflow/pkg/naptan"
	"github.com/transitflow/transitflow/pkg/netex"
	"github.com/transitflow/transitflow/pkg/pipelineerror"
	"github.com/transitflow/transitflow/pkg/repository"
	"github.com/transitflow/transitflow/pkg/transmodel"
	"github.com/transitflow/transitflow/pkg/transxchange"
)

// importWorkers caps the per-file import concurrency of one run.
const importWorkers = 4

type Manager struct {
	db        *database.Manager
	persister *etl.Persister

	tasks     *repository.TaskResultRepository
	revisions *repository.RevisionRepository
	fares     *repository.FaresValidationRepository
	stops     *repository.NaptanRepository
}

func New(db *database.Manager) *Manager {
	return &Manager{
		db:        db,
		persister: etl.NewPersister(db),
		tasks:     repository.NewTaskResultRepository(db),
		revisions: repository.NewRevisionRepository(db),
		fares:     repository.NewFaresValidationRepository(db),
		stops:     repository.NewNaptanRepository(db),
	}
}

// file is one document of a run, already read into memory.
type file struct {
	Name    string
	Content []byte
}

// ImportDataset runs one ETL pass over the dataset for the given revision.
// The returned task id identifies the pipelines_datasetetltaskresult row;
// the first failure is recorded there and later failures of the same run do
// not overwrite it.
func (m *Manager) ImportDataset(ctx context.Context, dataset datasets.DataSet, revisionID int64, sourceOverride string) (string, error) {
	taskID := uuid.NewString()
	if err := m.tasks.StartTask(ctx, taskID, revisionID); err != nil {
		return taskID, err
	}

	err := m.runImport(ctx, dataset, revisionID, sourceOverride, taskID)
	if err != nil {
		classified := pipelineerror.Classify(err)
		if markErr := m.tasks.MarkError(ctx, taskID, "dataset_etl", classified.Code, classified.Error()); markErr != nil {
			log.Error().Err(markErr).Str("task", taskID).Msg("Failed to record task failure")
		}
		return taskID, err
	}

	if err := m.tasks.MarkSuccess(ctx, taskID); err != nil {
		return taskID, err
	}

	return taskID, nil
}

func (m *Manager) runImport(ctx context.Context, dataset datasets.DataSet, revisionID int64, sourceOverride string, taskID string) error {
	if err := m.tasks.MarkStarted(ctx, taskID); err != nil {
		return err
	}

	source := dataset.Source
	if sourceOverride != "" {
		source = sourceOverride
	}

	files, err := collectFiles(source, dataset.UnpackBundle)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return pipelineerror.New(pipelineerror.CodeNoDataFound, fmt.Errorf("%s contains no XML documents", source))
	}

	log.Info().
		Str("dataset", dataset.Identifier).
		Str("task", taskID).
		Int("files", len(files)).
		Msg("Importing dataset")

	var naptanIDs map[string]int64
	if dataset.Format == datasets.FormatTransXChange {
		naptanIDs, err = m.persister.LoadNaptanIDs(ctx, 5000)
		if err != nil {
			return err
		}
	}

	var done atomic.Int64
	workers := pool.New().WithErrors().WithMaxGoroutines(importWorkers)

	for _, f := range files {
		workers.Go(func() error {
			if err := m.importFile(ctx, dataset.Format, f, revisionID, naptanIDs); err != nil {
				return fmt.Errorf("%s: %w", f.Name, err)
			}

			progress := int(done.Add(1)) * 100 / len(files)
			if err := m.tasks.UpdateProgress(ctx, taskID, progress); err != nil {
				log.Warn().Err(err).Str("task", taskID).Msg("Failed to update task progress")
			}

			return nil
		})
	}

	return workers.Wait()
}

func (m *Manager) importFile(ctx context.Context, format datasets.Format, f file, revisionID int64, naptanIDs map[string]int64) error {
	switch format {
	case datasets.FormatNaPTAN:
		return m.importNaptan(ctx, f)
	case datasets.FormatTransXChange:
		return m.importTransXChange(ctx, f, revisionID, naptanIDs)
	case datasets.FormatNeTExFares:
		return m.importNetexFares(ctx, f, revisionID)
	default:
		return fmt.Errorf("unrecognised dataset format %s", format)
	}
}

func (m *Manager) importNaptan(ctx context.Context, f file) error {
	doc, err := naptan.ParseXMLFile(bytes.NewReader(f.Content))
	if err != nil {
		metrics.DocumentsParsed.WithLabelValues("naptan", "error").Inc()
		return err
	}
	metrics.DocumentsParsed.WithLabelValues("naptan", "ok").Inc()

	rows := make([]*transmodel.NaptanStopPoint, 0, len(doc.StopPoints))
	for _, stopPoint := range doc.StopPoints {
		if !stopPoint.Active() {
			continue
		}
		rows = append(rows, stopPoint.Row())
	}

	return repository.WithSession(ctx, m.db, func(session *repository.Session) error {
		return m.stops.UpsertStopPoints(ctx, session, rows)
	})
}

func (m *Manager) importTransXChange(ctx context.Context, f file, revisionID int64, naptanIDs map[string]int64) error {
	doc, err := transxchange.ParseXMLFile(bytes.NewReader(f.Content))
	if err != nil {
		metrics.DocumentsParsed.WithLabelValues("transxchange", "error").Inc()
		return err
	}
	metrics.DocumentsParsed.WithLabelValues("transxchange", "ok").Inc()

	output := etl.Transform(doc, f.Name)

	return m.persister.Persist(ctx, output, revisionID, naptanIDs)
}

func (m *Manager) importNetexFares(ctx context.Context, f file, revisionID int64) error {
	doc, err := netex.ParseXMLFile(bytes.NewReader(f.Content))
	if err != nil {
		metrics.DocumentsParsed.WithLabelValues("netex", "error").Inc()
		return err
	}
	metrics.DocumentsParsed.WithLabelValues("netex", "ok").Inc()

	observations := faresvalidator.Validate(f.Name, doc)
	reportName := strings.TrimSuffix(f.Name, filepath.Ext(f.Name)) + "_report.csv"
	if err := m.fares.SaveReport(ctx, revisionID, reportName, observations); err != nil {
		return err
	}

	metadata, catalogue := etl.FaresMetadata(doc, f.Name)
	metadata.DatasetMetadataPtrID = revisionID

	return m.fares.SaveMetadata(ctx, metadata, catalogue)
}

// PublishRevision flips a successfully processed revision live.
func (m *Manager) PublishRevision(ctx context.Context, revisionID int64) error {
	return m.revisions.PublishRevision(ctx, revisionID)
}

// collectFiles reads the source into per-document buffers, unpacking zip
// bundles. Nested archives are refused rather than recursed into.
func collectFiles(source string, bundle datasets.BundleFormat) ([]file, error) {
	content, err := readSource(source)
	if err != nil {
		return nil, err
	}

	if bundle != datasets.BundleFormatZIP {
		return []file{{Name: filepath.Base(source), Content: content}}, nil
	}

	archive, err := zip.NewReader(bytes.NewReader(content), int64(len(content)))
	if err != nil {
		return nil, err
	}

	var files []file
	for _, entry := range archive.File {
		name := entry.Name
		switch {
		case strings.HasSuffix(strings.ToLower(name), ".zip"):
			return nil, pipelineerror.New(pipelineerror.CodeNestedZipForbidden,
				fmt.Errorf("archive contains nested zip %s", name))
		case !strings.HasSuffix(strings.ToLower(name), ".xml"):
			continue
		}

		reader, err := entry.Open()
		if err != nil {
			return nil, err
		}
		entryContent, err := io.ReadAll(reader)
		reader.Close()
		if err != nil {
			return nil, err
		}

		files = append(files, file{Name: filepath.Base(name), Content: entryContent})
	}

	return files, nil
}

func readSource(source string) ([]byte, error) {
	if isValidURL(source) {
		resp, err := http.Get(source)
		if err != nil {
			return nil, err
		}
		defer resp.Body.Close()

		if resp.StatusCode != http.StatusOK {
			return nil, fmt.Errorf("download %s: %s", source, resp.Status)
		}

		return io.ReadAll(resp.Body)
	}

	return os.ReadFile(source)
}

func isValidURL(candidate string) bool {
	parsed, err := url.Parse(candidate)
	return err == nil && (parsed.Scheme == "http" || parsed.Scheme == "https") && parsed.Host != ""
}
