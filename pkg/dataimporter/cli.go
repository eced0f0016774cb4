// Package dataimporter exposes the ETL pipeline as CLI commands: importing
// registered datasets, publishing revisions and housekeeping over the
// resulting tables.
package dataimporter

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v2"

	"github.com/transitflow/transitflow/pkg/config"
	"github.com/transitflow/transitflow/pkg/database"
	"github.com/transitflow/transitflow/pkg/dataimporter/datasets"
	"github.com/transitflow/transitflow/pkg/dataimporter/manager"
	"github.com/transitflow/transitflow/pkg/repository"
	"github.com/transitflow/transitflow/pkg/tracks"

	_ "time/tzdata"
)

func RegisterCLI() *cli.Command {
	return &cli.Command{
		Name:  "data-importer",
		Usage: "Import transport datasets into the relational catalog",
		Subcommands: []*cli.Command{
			{
				Name:  "dataset",
				Usage: "Run the ETL pipeline over a registered dataset",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:     "id",
						Usage:    "ID of the dataset",
						Required: true,
					},
					&cli.Int64Flag{
						Name:     "revision",
						Usage:    "Dataset revision the run belongs to",
						Required: true,
					},
					&cli.StringFlag{
						Name:  "file",
						Usage: "Import from a local file instead of the registered source",
					},
					&cli.StringFlag{
						Name:  "repeat-every",
						Usage: "Repeat this import every X (e.g. 12h)",
					},
				},
				Action: func(c *cli.Context) error {
					dataset, err := datasets.Get(c.String("id"))
					if err != nil {
						return err
					}

					db, err := connect()
					if err != nil {
						return err
					}
					defer db.Close()

					importManager := manager.New(db)

					var repeatDuration time.Duration
					if repeatEvery := c.String("repeat-every"); repeatEvery != "" {
						repeatDuration, err = time.ParseDuration(repeatEvery)
						if err != nil {
							return err
						}
					}

					for {
						startTime := time.Now()

						taskID, err := importManager.ImportDataset(
							c.Context, dataset, c.Int64("revision"), c.String("file"))
						if err != nil {
							return err
						}

						log.Info().
							Str("dataset", dataset.Identifier).
							Str("task", taskID).
							Dur("elapsed", time.Since(startTime)).
							Msg("Dataset imported")

						if repeatDuration == 0 {
							return nil
						}

						select {
						case <-time.After(repeatDuration):
						case <-c.Context.Done():
							return c.Context.Err()
						}
					}
				},
			},
			{
				Name:  "list",
				Usage: "List the registered datasets",
				Action: func(c *cli.Context) error {
					registered, err := datasets.Registered()
					if err != nil {
						return err
					}

					for _, dataset := range registered {
						log.Info().
							Str("id", dataset.Identifier).
							Str("format", string(dataset.Format)).
							Str("provider", dataset.Provider.Name).
							Str("source", dataset.Source).
							Msg("Registered dataset")
					}

					return nil
				},
			},
			{
				Name:  "publish",
				Usage: "Publish a successfully processed revision",
				Flags: []cli.Flag{
					&cli.Int64Flag{
						Name:     "revision",
						Usage:    "ID of the revision",
						Required: true,
					},
				},
				Action: func(c *cli.Context) error {
					db, err := connect()
					if err != nil {
						return err
					}
					defer db.Close()

					return manager.New(db).PublishRevision(c.Context, c.Int64("revision"))
				},
			},
			{
				Name:  "similar-tracks",
				Usage: "Report near-identical track geometries sharing a stop pair",
				Flags: []cli.Flag{
					&cli.Float64Flag{
						Name:  "threshold",
						Usage: "Hausdorff distance threshold in metres",
						Value: tracks.DefaultThreshold,
					},
				},
				Action: func(c *cli.Context) error {
					db, err := connect()
					if err != nil {
						return err
					}
					defer db.Close()

					return reportSimilarTracks(c.Context, db, c.Float64("threshold"))
				},
			},
		},
	}
}

func connect() (*database.Manager, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}

	return database.NewManager(cfg, unissuableTokens{}), nil
}

// unissuableTokens is the CLI's token provider: commands run against local
// databases with password auth, so a token request means misconfiguration.
type unissuableTokens struct{}

func (unissuableTokens) IssueToken(context.Context) (string, time.Time, error) {
	return "", time.Time{}, errors.New("no IAM token provider configured, set PROJECT_ENV=local")
}

func reportSimilarTracks(ctx context.Context, db *database.Manager, threshold float64) error {
	trackRepository := repository.NewTrackRepository(db)

	pairs, err := trackRepository.FindDuplicateStopPointPairs(ctx)
	if err != nil {
		return err
	}
	if len(pairs) == 0 {
		log.Info().Msg("No stop pairs own more than one track")
		return nil
	}

	groups, errs := trackRepository.StreamSimilarTrackPairsByStopPoints(ctx, pairs, threshold)
	for group := range groups {
		for _, candidate := range group.Candidates {
			log.Info().
				Str("fromAtco", group.Pair.FromAtcoCode).
				Str("toAtco", group.Pair.ToAtcoCode).
				Int64("track", candidate.A).
				Int64("duplicateOf", candidate.B).
				Msg("Tracks are near-identical")
		}
	}

	return <-errs
}
