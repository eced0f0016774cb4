// Package metrics registers the process-wide Prometheus collectors.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	DocumentsParsed = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "busdata_documents_parsed_total",
		Help: "Documents parsed, by format and outcome.",
	}, []string{"format", "outcome"})

	ObservationsEmitted = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busdata_fares_observations_total",
		Help: "Observations emitted by the fares validator.",
	})

	RepositoryOperations = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "busdata_repository_operations_total",
		Help: "Repository statements executed, by table and outcome.",
	}, []string{"table", "operation", "outcome"})

	RowsWritten = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "busdata_rows_written_total",
		Help: "Rows inserted or updated, by table.",
	}, []string{"table"})

	EngineRefreshes = promauto.NewCounter(prometheus.CounterOpts{
		Name: "busdata_database_engine_refreshes_total",
		Help: "Connection engine rebuilds triggered by token expiry.",
	})
)
