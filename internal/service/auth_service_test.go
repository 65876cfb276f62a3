package service

import (
	"context"
	"testing"

	"go.uber.org/zap"

	"github.com/syndicate-plus/syndicate-service/internal/config"
	"github.com/syndicate-plus/syndicate-service/internal/domain"
	"github.com/syndicate-plus/syndicate-service/internal/events"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeFirmRepo, *fakeResetRepo, *recordingDispatcher) {
	t.Helper()
	cfg := config.Config{
		App: config.AppConfig{BaseURL: "http://localhost:3000"},
		Auth: config.AuthConfig{
			JWTSecret:               "test-secret",
			AccessTokenTTLMinutes:   60,
			PasswordResetTTLMinutes: 60,
			BcryptCost:              4,
		},
	}
	firms := newFakeFirmRepo()
	resets := newFakeResetRepo()
	dispatcher := &recordingDispatcher{}

	svc := NewAuthService(cfg, AuthDependencies{
		FirmRepo:          firms,
		PasswordResetRepo: resets,
		TxRunner:          fakeTxRunner{},
		Dispatcher:        dispatcher,
		Logger:            zap.NewNop(),
	})
	return svc, firms, resets, dispatcher
}

func TestRegisterAndLogin(t *testing.T) {
	svc, _, _, dispatcher := newAuthFixture(t)

	firm, token, _, err := svc.Register(context.Background(), "Alpha Advisors", "alpha@example.com", "s3cretpass", "Jo Bloggs")
	if err != nil {
		t.Fatalf("Register: %v", err)
	}
	if token == "" {
		t.Fatal("expected a session token")
	}
	if firm.Role != domain.FirmRoleUser || firm.Status != domain.FirmStatusActive {
		t.Fatalf("unexpected defaults: role=%s status=%s", firm.Role, firm.Status)
	}
	if firm.Profile.ContactPerson != "Jo Bloggs" {
		t.Fatalf("expected contact person, got %q", firm.Profile.ContactPerson)
	}
	if !dispatcher.published(events.EventFirmRegistered) {
		t.Fatal("expected firm_registered event")
	}

	logged, loginToken, _, err := svc.Login(context.Background(), "alpha@example.com", "s3cretpass")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if logged.ID != firm.ID || loginToken == "" {
		t.Fatal("login did not return the registered firm")
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, _, _, err := svc.Register(context.Background(), "Alpha", "alpha@example.com", "s3cretpass", ""); err != nil {
		t.Fatalf("first Register: %v", err)
	}
	_, _, _, err := svc.Register(context.Background(), "Copycat", "alpha@example.com", "otherpass1", "")
	assertDomainCode(t, err, "CONFLICT")
}

func TestLoginWrongPasswordUnauthorized(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	if _, _, _, err := svc.Register(context.Background(), "Alpha", "alpha@example.com", "s3cretpass", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	_, _, _, err := svc.Login(context.Background(), "alpha@example.com", "wrongpass")
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestLoginUnknownEmailUnauthorized(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	_, _, _, err := svc.Login(context.Background(), "ghost@example.com", "whatever1")
	assertDomainCode(t, err, "UNAUTHORIZED")
}

func TestForgotPasswordUnknownEmailIsSilent(t *testing.T) {
	svc, _, resets, dispatcher := newAuthFixture(t)

	if err := svc.ForgotPassword(context.Background(), "ghost@example.com"); err != nil {
		t.Fatalf("ForgotPassword must not reveal unknown emails: %v", err)
	}
	if len(resets.tokens) != 0 {
		t.Fatal("no token should be issued for an unknown email")
	}
	if dispatcher.published(events.EventPasswordResetIssued) {
		t.Fatal("no reset event for an unknown email")
	}
}

func TestPasswordResetRoundTrip(t *testing.T) {
	svc, _, resets, dispatcher := newAuthFixture(t)

	if _, _, _, err := svc.Register(context.Background(), "Alpha", "alpha@example.com", "s3cretpass", ""); err != nil {
		t.Fatalf("Register: %v", err)
	}
	if err := svc.ForgotPassword(context.Background(), "alpha@example.com"); err != nil {
		t.Fatalf("ForgotPassword: %v", err)
	}
	if !dispatcher.published(events.EventPasswordResetIssued) {
		t.Fatal("expected password_reset_issued event")
	}
	if len(resets.tokens) != 1 {
		t.Fatalf("expected 1 reset token, got %d", len(resets.tokens))
	}

	// The service only ever sees the plaintext inside the reset URL;
	// recover it from the published event to complete the flow.
	var resetURL string
	for _, e := range dispatcher.events {
		if e.Type == events.EventPasswordResetIssued {
			resetURL = e.Payload.(events.PasswordResetIssuedPayload).ResetURL
		}
	}
	const marker = "?token="
	idx := len(resetURL) - 64
	if idx < 0 || resetURL[idx-len(marker):idx] != marker {
		t.Fatalf("unexpected reset URL shape: %s", resetURL)
	}
	plaintext := resetURL[idx:]

	if err := svc.ResetPassword(context.Background(), plaintext, "brandnewpass"); err != nil {
		t.Fatalf("ResetPassword: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "alpha@example.com", "brandnewpass"); err != nil {
		t.Fatalf("login with new password: %v", err)
	}
	if _, _, _, err := svc.Login(context.Background(), "alpha@example.com", "s3cretpass"); err == nil {
		t.Fatal("old password must no longer work")
	}

	// Second use of the same token must fail.
	err := svc.ResetPassword(context.Background(), plaintext, "anothernewpass")
	assertDomainCode(t, err, "VALIDATION_FAILED")
}

func TestResetPasswordTooShortRejected(t *testing.T) {
	svc, _, _, _ := newAuthFixture(t)

	err := svc.ResetPassword(context.Background(), "sometoken", "short")
	assertDomainCode(t, err, "VALIDATION_FAILED")
}
