// Package metrics registers the process's Prometheus collectors. Counters are
// package-level so pipelines can increment them without plumbing a registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// CollectRuns counts pipeline runs by job ("pizza", "news") and outcome
	// ("ok", "error").
	CollectRuns = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizza_index",
		Name:      "collect_runs_total",
		Help:      "Collection pipeline runs by job and outcome",
	}, []string{"job", "status"})

	// EventsIngested counts newly persisted news events by source.
	EventsIngested = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "pizza_index",
		Name:      "news_events_ingested_total",
		Help:      "Newly persisted news events by source",
	}, []string{"source"})

	// ReadingsRecorded counts persisted venue activity readings.
	ReadingsRecorded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "pizza_index",
		Name:      "activity_readings_total",
		Help:      "Persisted venue activity readings",
	})

	// LastCollect records the unix time of the last successful run per job.
	LastCollect = promauto.NewGaugeVec(prometheus.GaugeOpts{
		Namespace: "pizza_index",
		Name:      "last_collect_timestamp_seconds",
		Help:      "Unix time of the last successful collection per job",
	}, []string{"job"})
)
