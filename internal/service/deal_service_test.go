package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/events"
)

func newDealFixture(t *testing.T, deals ...*domain.Deal) (*DealService, *fakeDealRepo, *recordingDispatcher) {
	t.Helper()
	repo := newFakeDealRepo(deals...)
	dispatcher := &recordingDispatcher{}
	return NewDealService(repo, dispatcher, zap.NewNop()), repo, dispatcher
}

func validDealInput() DealCreateInput {
	return DealCreateInput{
		DealName:     "Project Comet",
		Sector:       "technology",
		Jurisdiction: "UK",
		DealType:     "acquisition",
		TargetAmount: 25_000_000,
	}
}

func TestCreateDealDefaultsToDraft(t *testing.T) {
	svc, _, dispatcher := newDealFixture(t)

	deal, err := svc.Create(context.Background(), "owner", validDealInput())
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if deal.Status != domain.DealStatusDraft {
		t.Fatalf("expected draft status, got %s", deal.Status)
	}
	if deal.OwnerFirmID != "owner" {
		t.Fatalf("expected owner as owner firm, got %s", deal.OwnerFirmID)
	}
	if !dispatcher.published(events.EventDealCreated) {
		t.Fatal("expected deal_created event")
	}
}

func TestCreateDealRequiresFields(t *testing.T) {
	svc, _, _ := newDealFixture(t)

	input := validDealInput()
	input.Sector = "  "
	_, err := svc.Create(context.Background(), "owner", input)
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestCreateDealRequiresPositiveAmount(t *testing.T) {
	svc, _, _ := newDealFixture(t)

	input := validDealInput()
	input.TargetAmount = 0
	_, err := svc.Create(context.Background(), "owner", input)
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestGetDealAccessControl(t *testing.T) {
	deal := &domain.Deal{
		ID:               "deal-1",
		OwnerFirmID:      "owner",
		DealName:         "Project Comet",
		SyndicateMembers: []string{"member"},
	}
	svc, _, _ := newDealFixture(t, deal)

	if _, err := svc.Get(context.Background(), "owner", "deal-1"); err != nil {
		t.Fatalf("owner access: %v", err)
	}
	if _, err := svc.Get(context.Background(), "member", "deal-1"); err != nil {
		t.Fatalf("member access: %v", err)
	}
	_, err := svc.Get(context.Background(), "stranger", "deal-1")
	assertDomainCode(t, err, "FORBIDDEN")
}

func TestUpdateDealByNonOwnerReportsNotFound(t *testing.T) {
	deal := &domain.Deal{ID: "deal-1", OwnerFirmID: "owner", DealName: "Project Comet"}
	svc, _, _ := newDealFixture(t, deal)

	name := "Renamed"
	_, err := svc.Update(context.Background(), "stranger", "deal-1", DealUpdateInput{DealName: &name})
	assertDomainCode(t, err, "NOT_FOUND")
}

func TestUpdateDealPartial(t *testing.T) {
	deal := &domain.Deal{ID: "deal-1", OwnerFirmID: "owner", DealName: "Project Comet", Sector: "technology"}
	svc, repo, _ := newDealFixture(t, deal)

	name := "Project Halley"
	updated, err := svc.Update(context.Background(), "owner", "deal-1", DealUpdateInput{DealName: &name})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.DealName != "Project Halley" {
		t.Fatalf("expected renamed deal, got %s", updated.DealName)
	}
	if updated.Sector != "technology" {
		t.Fatalf("untouched field must survive, got %s", updated.Sector)
	}

	stored, _ := repo.GetByID(context.Background(), "deal-1")
	if stored.DealName != "Project Halley" {
		t.Fatal("update not persisted")
	}
}
