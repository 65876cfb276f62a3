package service

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/config"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/enrichment"
)

type fakeJobRepo struct {
	jobs map[string]*domain.EnrichmentJob
}

func newFakeJobRepo() *fakeJobRepo {
	return &fakeJobRepo{jobs: map[string]*domain.EnrichmentJob{}}
}

func (r *fakeJobRepo) Enqueue(ctx context.Context, job *domain.EnrichmentJob) error {
	job.ID = uuid.NewString()
	job.Status = domain.JobStatusQueued
	job.CreatedAt = time.Now()
	r.jobs[job.ID] = job
	return nil
}

func (r *fakeJobRepo) ClaimQueued(ctx context.Context, limit int) ([]domain.EnrichmentJob, error) {
	var claimed []domain.EnrichmentJob
	for _, job := range r.jobs {
		if len(claimed) >= limit {
			break
		}
		if job.Status == domain.JobStatusQueued {
			job.Status = domain.JobStatusProcessing
			claimed = append(claimed, *job)
		}
	}
	return claimed, nil
}

func (r *fakeJobRepo) MarkCompleted(ctx context.Context, id string, result []byte) error {
	job, ok := r.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	job.Status = domain.JobStatusCompleted
	job.Result = result
	job.CompletedAt = &now
	return nil
}

func (r *fakeJobRepo) MarkFailed(ctx context.Context, id string, errorMessage string) error {
	job, ok := r.jobs[id]
	if !ok {
		return pgx.ErrNoRows
	}
	job.Status = domain.JobStatusFailed
	job.ErrorMessage = errorMessage
	return nil
}

func (r *fakeJobRepo) countByStatus(status domain.EnrichmentJobStatus) int {
	count := 0
	for _, job := range r.jobs {
		if job.Status == status {
			count++
		}
	}
	return count
}

type fakeMonitoredRepo struct {
	firms map[string]*domain.MonitoredFirm
}

func newFakeMonitoredRepo(firms ...*domain.MonitoredFirm) *fakeMonitoredRepo {
	repo := &fakeMonitoredRepo{firms: map[string]*domain.MonitoredFirm{}}
	for _, firm := range firms {
		if firm.ID == "" {
			firm.ID = uuid.NewString()
		}
		repo.firms[firm.ID] = firm
	}
	return repo
}

func (r *fakeMonitoredRepo) Create(ctx context.Context, firm *domain.MonitoredFirm) error {
	firm.ID = uuid.NewString()
	firm.CreatedAt = time.Now()
	r.firms[firm.ID] = firm
	return nil
}

func (r *fakeMonitoredRepo) GetByID(ctx context.Context, id string) (*domain.MonitoredFirm, error) {
	firm, ok := r.firms[id]
	if !ok {
		return nil, pgx.ErrNoRows
	}
	return firm, nil
}

func (r *fakeMonitoredRepo) ListStale(ctx context.Context, limit int) ([]domain.MonitoredFirm, error) {
	var result []domain.MonitoredFirm
	for _, firm := range r.firms {
		if len(result) >= limit {
			break
		}
		if firm.LastDataUpdate == nil {
			result = append(result, *firm)
		}
	}
	return result, nil
}

func (r *fakeMonitoredRepo) TouchDataUpdate(ctx context.Context, id string) error {
	firm, ok := r.firms[id]
	if !ok {
		return pgx.ErrNoRows
	}
	now := time.Now()
	firm.LastDataUpdate = &now
	return nil
}

type fakeRegistryClient struct {
	profile *enrichment.CompanyProfile
	err     error
}

func (c *fakeRegistryClient) CompanyByNumber(ctx context.Context, number string) (*enrichment.CompanyProfile, error) {
	if c.err != nil {
		return nil, c.err
	}
	return c.profile, nil
}

type fakeNewsClient struct {
	articles []enrichment.Article
}

func (c *fakeNewsClient) RecentArticles(ctx context.Context, firmName string, limit int) ([]enrichment.Article, error) {
	return c.articles, nil
}

func newEnrichmentFixture(t *testing.T, registry enrichment.RegistryClient, firms ...*domain.MonitoredFirm) (*EnrichmentService, *fakeJobRepo, *fakeMonitoredRepo) {
	t.Helper()
	jobs := newFakeJobRepo()
	monitored := newFakeMonitoredRepo(firms...)
	svc := NewEnrichmentService(EnrichmentDependencies{
		Jobs:     jobs,
		Firms:    monitored,
		Registry: registry,
		News:     &fakeNewsClient{articles: []enrichment.Article{{Title: "Beta Capital raises fund"}}},
		Logger:   zap.NewNop(),
		Config: config.EnrichmentConfig{
			Enabled:           true,
			BatchSize:         10,
			JobTimeoutSeconds: 5,
		},
	})
	return svc, jobs, monitored
}

func TestEnqueueFirmRefreshQueuesBothJobTypes(t *testing.T) {
	firm := &domain.MonitoredFirm{ID: "mf-1", FirmName: "Beta Capital", RegistrationNumber: "01234567"}
	svc, jobs, _ := newEnrichmentFixture(t, &fakeRegistryClient{profile: &enrichment.CompanyProfile{CompanyName: "Beta Capital"}}, firm)

	if err := svc.EnqueueFirmRefresh(context.Background(), "mf-1"); err != nil {
		t.Fatalf("EnqueueFirmRefresh: %v", err)
	}
	if got := jobs.countByStatus(domain.JobStatusQueued); got != 2 {
		t.Fatalf("expected 2 queued jobs, got %d", got)
	}
}

func TestProcessJobsCompletesAndTouchesFirm(t *testing.T) {
	firm := &domain.MonitoredFirm{ID: "mf-1", FirmName: "Beta Capital", RegistrationNumber: "01234567"}
	svc, jobs, monitored := newEnrichmentFixture(t, &fakeRegistryClient{profile: &enrichment.CompanyProfile{CompanyName: "Beta Capital", CompanyStatus: "active"}}, firm)

	if err := svc.EnqueueFirmRefresh(context.Background(), "mf-1"); err != nil {
		t.Fatalf("EnqueueFirmRefresh: %v", err)
	}
	processed, err := svc.ProcessJobs(context.Background())
	if err != nil {
		t.Fatalf("ProcessJobs: %v", err)
	}
	if processed != 2 {
		t.Fatalf("expected 2 processed jobs, got %d", processed)
	}
	if got := jobs.countByStatus(domain.JobStatusCompleted); got != 2 {
		t.Fatalf("expected 2 completed jobs, got %d", got)
	}

	stored, _ := monitored.GetByID(context.Background(), "mf-1")
	if stored.LastDataUpdate == nil {
		t.Fatal("expected data update timestamp after enrichment")
	}

	for _, job := range jobs.jobs {
		if job.JobType != domain.JobTypeEnrichMonitoredFirm {
			continue
		}
		var profile enrichment.CompanyProfile
		if err := json.Unmarshal(job.Result, &profile); err != nil {
			t.Fatalf("decode result: %v", err)
		}
		if profile.CompanyStatus != "active" {
			t.Fatalf("expected registry payload in result, got %s", string(job.Result))
		}
	}
}

func TestProcessJobsMarksFailuresWithMessage(t *testing.T) {
	firm := &domain.MonitoredFirm{ID: "mf-1", FirmName: "Beta Capital", RegistrationNumber: "01234567"}
	svc, jobs, _ := newEnrichmentFixture(t, &fakeRegistryClient{err: errors.New("registry down")}, firm)

	if err := svc.EnqueueFirmRefresh(context.Background(), "mf-1"); err != nil {
		t.Fatalf("EnqueueFirmRefresh: %v", err)
	}
	if _, err := svc.ProcessJobs(context.Background()); err != nil {
		t.Fatalf("ProcessJobs: %v", err)
	}
	if got := jobs.countByStatus(domain.JobStatusFailed); got != 1 {
		t.Fatalf("expected 1 failed job (registry), got %d", got)
	}
	// News fetch does not depend on the registry and still completes.
	if got := jobs.countByStatus(domain.JobStatusCompleted); got != 1 {
		t.Fatalf("expected 1 completed job (news), got %d", got)
	}
	for _, job := range jobs.jobs {
		if job.Status == domain.JobStatusFailed && job.ErrorMessage == "" {
			t.Fatal("failed job must carry an error message")
		}
	}
}

func TestQueueStaleFirms(t *testing.T) {
	fresh := time.Now()
	svc, jobs, _ := newEnrichmentFixture(t, &fakeRegistryClient{},
		&domain.MonitoredFirm{ID: "stale", FirmName: "Old Data Ltd", RegistrationNumber: "111"},
		&domain.MonitoredFirm{ID: "fresh", FirmName: "New Data Ltd", RegistrationNumber: "222", LastDataUpdate: &fresh},
	)

	queued, err := svc.QueueStaleFirms(context.Background())
	if err != nil {
		t.Fatalf("QueueStaleFirms: %v", err)
	}
	if queued != 1 {
		t.Fatalf("expected 1 stale firm queued, got %d", queued)
	}
	if got := jobs.countByStatus(domain.JobStatusQueued); got != 2 {
		t.Fatalf("expected 2 queued jobs for the stale firm, got %d", got)
	}
}
