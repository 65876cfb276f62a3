package service

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/config"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/enrichment"
	"github.com/syndicate-plus/syndicate-service/internal/repository"
	apperrors "github.com/syndicate-plus/syndicate-service/pkg/util"
)

// EnrichmentService owns the background data-refresh pipeline for
// monitored firms: job enqueueing, claiming and dispatch.
type EnrichmentService struct {
	jobs     repository.EnrichmentJobRepository
	firms    repository.MonitoredFirmRepository
	registry enrichment.RegistryClient
	news     enrichment.NewsClient
	logger   *zap.Logger
	cfg      config.EnrichmentConfig
}

// EnrichmentDependencies bundles what EnrichmentService needs.
type EnrichmentDependencies struct {
	Jobs     repository.EnrichmentJobRepository
	Firms    repository.MonitoredFirmRepository
	Registry enrichment.RegistryClient
	News     enrichment.NewsClient
	Logger   *zap.Logger
	Config   config.EnrichmentConfig
}

// NewEnrichmentService creates the service.
func NewEnrichmentService(deps EnrichmentDependencies) *EnrichmentService {
	return &EnrichmentService{
		jobs:     deps.Jobs,
		firms:    deps.Firms,
		registry: deps.Registry,
		news:     deps.News,
		logger:   deps.Logger,
		cfg:      deps.Config,
	}
}

// enrichFirmPayload is the payload for both job types.
type enrichFirmPayload struct {
	MonitoredFirmID string `json:"monitored_firm_id"`
}

// EnqueueFirmRefresh queues an enrich-monitored-firm job followed by a
// fetch-news job for the given monitored firm.
func (s *EnrichmentService) EnqueueFirmRefresh(ctx context.Context, firmID string) error {
	payload, err := json.Marshal(enrichFirmPayload{MonitoredFirmID: firmID})
	if err != nil {
		return apperrors.NewInternalError(err)
	}
	for _, jobType := range []domain.EnrichmentJobType{domain.JobTypeEnrichMonitoredFirm, domain.JobTypeFetchNews} {
		job := &domain.EnrichmentJob{JobType: jobType, Payload: payload}
		if err := s.jobs.Enqueue(ctx, job); err != nil {
			return apperrors.MapError(err)
		}
	}
	return nil
}

// QueueStaleFirms enqueues refresh jobs for monitored firms whose data
// is missing or older than a day.
func (s *EnrichmentService) QueueStaleFirms(ctx context.Context) (int, error) {
	stale, err := s.firms.ListStale(ctx, s.cfg.BatchSize)
	if err != nil {
		return 0, apperrors.MapError(err)
	}
	queued := 0
	for _, firm := range stale {
		if err := s.EnqueueFirmRefresh(ctx, firm.ID); err != nil {
			s.logger.Warn("failed to enqueue refresh", zap.String("monitored_firm_id", firm.ID), zap.Error(err))
			continue
		}
		queued++
	}
	return queued, nil
}

// ProcessJobs claims up to the configured batch of queued jobs and runs
// them sequentially. Each job is bounded by the configured job timeout.
// Returns how many jobs were processed (completed or failed).
func (s *EnrichmentService) ProcessJobs(ctx context.Context) (int, error) {
	claimed, err := s.jobs.ClaimQueued(ctx, s.cfg.BatchSize)
	if err != nil {
		return 0, apperrors.MapError(err)
	}

	for _, job := range claimed {
		jobCtx, cancel := context.WithTimeout(ctx, s.cfg.JobTimeout())
		result, runErr := s.runJob(jobCtx, job)
		cancel()

		if runErr != nil {
			s.logger.Warn("enrichment job failed",
				zap.String("job_id", job.ID),
				zap.String("job_type", string(job.JobType)),
				zap.Error(runErr))
			if err := s.jobs.MarkFailed(ctx, job.ID, runErr.Error()); err != nil {
				s.logger.Error("failed to mark job failed", zap.String("job_id", job.ID), zap.Error(err))
			}
			continue
		}
		if err := s.jobs.MarkCompleted(ctx, job.ID, result); err != nil {
			s.logger.Error("failed to mark job completed", zap.String("job_id", job.ID), zap.Error(err))
		}
	}
	return len(claimed), nil
}

func (s *EnrichmentService) runJob(ctx context.Context, job domain.EnrichmentJob) ([]byte, error) {
	var payload enrichFirmPayload
	if err := json.Unmarshal(job.Payload, &payload); err != nil {
		return nil, fmt.Errorf("decode payload: %w", err)
	}
	if payload.MonitoredFirmID == "" {
		return nil, fmt.Errorf("payload missing monitored_firm_id")
	}

	firm, err := s.firms.GetByID(ctx, payload.MonitoredFirmID)
	if err != nil {
		return nil, fmt.Errorf("load monitored firm: %w", err)
	}

	switch job.JobType {
	case domain.JobTypeEnrichMonitoredFirm:
		return s.enrichFirm(ctx, firm)
	case domain.JobTypeFetchNews:
		return s.fetchNews(ctx, firm)
	default:
		return nil, fmt.Errorf("unknown job type %q", job.JobType)
	}
}

func (s *EnrichmentService) enrichFirm(ctx context.Context, firm *domain.MonitoredFirm) ([]byte, error) {
	if firm.RegistrationNumber == "" {
		return nil, fmt.Errorf("monitored firm %s has no registration number", firm.ID)
	}
	profile, err := s.registry.CompanyByNumber(ctx, firm.RegistrationNumber)
	if err != nil {
		return nil, err
	}
	if err := s.firms.TouchDataUpdate(ctx, firm.ID); err != nil {
		return nil, fmt.Errorf("touch data update: %w", err)
	}
	return json.Marshal(profile)
}

func (s *EnrichmentService) fetchNews(ctx context.Context, firm *domain.MonitoredFirm) ([]byte, error) {
	articles, err := s.news.RecentArticles(ctx, firm.FirmName, newsArticleLimit)
	if err != nil {
		return nil, err
	}
	return json.Marshal(struct {
		FirmName string               `json:"firm_name"`
		Articles []enrichment.Article `json:"articles"`
	}{FirmName: firm.FirmName, Articles: articles})
}

const newsArticleLimit = 10
