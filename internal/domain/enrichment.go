package domain

import "time"

// MonitoredFirm is a market participant tracked by the enrichment
// pipeline, independent of registered platform firms.
type MonitoredFirm struct {
	ID                 string
	FirmName           string
	Country            string
	RegistrationNumber string
	FirmType           string
	Website            string
	Headquarters       string
	LastDataUpdate     *time.Time
	CreatedAt          time.Time
}

// EnrichmentJobType enumerates background job kinds.
type EnrichmentJobType string

const (
	JobTypeEnrichMonitoredFirm EnrichmentJobType = "enrich-monitored-firm"
	JobTypeFetchNews           EnrichmentJobType = "fetch-news"
)

// EnrichmentJobStatus enumerates job processing states.
type EnrichmentJobStatus string

const (
	JobStatusQueued     EnrichmentJobStatus = "queued"
	JobStatusProcessing EnrichmentJobStatus = "processing"
	JobStatusCompleted  EnrichmentJobStatus = "completed"
	JobStatusFailed     EnrichmentJobStatus = "failed"
)

// EnrichmentJob is a unit of background work claimed by the worker.
// Payload and Result are opaque JSON documents.
type EnrichmentJob struct {
	ID           string
	JobType      EnrichmentJobType
	Status       EnrichmentJobStatus
	Payload      []byte
	Result       []byte
	ErrorMessage string
	CreatedAt    time.Time
	CompletedAt  *time.Time
}
