package cachegw

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	artifactUploads = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cachegw_artifact_uploads_total",
		Help: "Artifacts accepted for storage.",
	})

	artifactDownloads = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cachegw_artifact_downloads_total",
		Help: "Artifact download attempts by outcome.",
	}, []string{"outcome"})

	artifactQueries = promauto.NewCounter(prometheus.CounterOpts{
		Name: "cachegw_artifact_queries_total",
		Help: "Batch existence queries served.",
	})

	usageEvents = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "cachegw_usage_events_total",
		Help: "Client-reported cache usage events by source and outcome.",
	}, []string{"source", "event"})
)
