package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/fluxt/fluxt-api/internal/core/domain"
	"github.com/fluxt/fluxt-api/internal/core/ports"
	"github.com/fluxt/fluxt-api/internal/pkg/password"
)

const adminPassword = "admin-secret"

func newAuthFixture() (*AuthService, *stubUserRepo, *stubSessionStore, *password.Hasher) {
	users := newStubUserRepo()
	sessions := newStubSessionStore()
	hasher := password.NewHasher(password.MinCost)
	svc := NewAuthService(users, sessions, hasher, adminPassword, zerolog.Nop())
	return svc, users, sessions, hasher
}

func seedUser(t *testing.T, users *stubUserRepo, hasher *password.Hasher, email, pass string, enabled bool) *domain.User {
	t.Helper()

	user := &domain.User{
		ID:        "id-" + email,
		CreatedAt: time.Now().UTC(),
		Email:     email,
		FirstName: "Test",
		LastName:  "User",
		Role:      domain.RoleUser,
		Enabled:   enabled,
	}
	if pass != "" {
		digest, err := hasher.Hash(pass)
		if err != nil {
			t.Fatalf("hashing: %v", err)
		}
		user.PasswordHash = digest
	}
	if err := users.Create(context.Background(), user); err != nil {
		t.Fatalf("seeding user: %v", err)
	}
	return user
}

func TestAuthenticate_NoCredentialsNoSession(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	if _, err := svc.Authenticate(context.Background(), "", nil, false); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthenticate_SuperAdmin(t *testing.T) {
	svc, _, sessions, _ := newAuthFixture()

	res, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "admin", Password: adminPassword}, false)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if res.Principal.Role() != domain.RoleAdministrator {
		t.Fatalf("expected administrator role, got %s", res.Principal.Role())
	}
	if res.Principal.UserID() != "" {
		t.Fatalf("super admin must have no user id")
	}
	if res.SessionID == "" {
		t.Fatalf("fresh login must establish a session")
	}

	marker, err := sessions.Get(context.Background(), res.SessionID)
	if err != nil || marker == nil {
		t.Fatalf("expected a stored marker, got %v %v", marker, err)
	}
	if !marker.Admin || marker.UserID != "" {
		t.Fatalf("expected an admin-only marker, got %+v", marker)
	}
}

func TestAuthenticate_SuperAdminWrongPassword(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	_, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "admin", Password: "nope"}, false)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestAuthenticate_User(t *testing.T) {
	svc, users, sessions, hasher := newAuthFixture()
	user := seedUser(t, users, hasher, "alice@example.com", "pass123", true)

	res, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "alice@example.com", Password: "pass123"}, false)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if res.Principal.UserID() != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, res.Principal.UserID())
	}

	marker, _ := sessions.Get(context.Background(), res.SessionID)
	if marker == nil || marker.UserID != user.ID || marker.Admin {
		t.Fatalf("expected a user-only marker, got %+v", marker)
	}
}

func TestAuthenticate_UserEmailCaseInsensitive(t *testing.T) {
	svc, users, _, hasher := newAuthFixture()
	seedUser(t, users, hasher, "alice@example.com", "pass123", true)

	res, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "Alice@Example.COM", Password: "pass123"}, false)
	if err != nil {
		t.Fatalf("expected case-insensitive email match, got %v", err)
	}
	if res.Principal.AuthInfo().Email != "alice@example.com" {
		t.Fatalf("unexpected email: %s", res.Principal.AuthInfo().Email)
	}
}

func TestAuthenticate_DisabledUser(t *testing.T) {
	svc, users, _, hasher := newAuthFixture()
	seedUser(t, users, hasher, "bob@example.com", "pass123", false)

	_, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "bob@example.com", Password: "pass123"}, false)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for disabled user, got %v", err)
	}
}

func TestAuthenticate_PasswordNotSet(t *testing.T) {
	svc, users, _, hasher := newAuthFixture()
	seedUser(t, users, hasher, "carol@example.com", "", true)

	_, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "carol@example.com", Password: ""}, false)
	if !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for unset password, got %v", err)
	}
}

func TestAuthenticate_SuperAdminPrecedence(t *testing.T) {
	svc, users, _, hasher := newAuthFixture()
	// A stored user whose email collides with the admin identifier and whose
	// password equals the admin password must still resolve as super admin.
	seedUser(t, users, hasher, "admin", adminPassword, true)

	res, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "admin", Password: adminPassword}, false)
	if err != nil {
		t.Fatalf("Authenticate returned error: %v", err)
	}
	if res.Principal.UserID() != "" {
		t.Fatalf("colliding identifier resolved to a stored user")
	}
}

func TestAuthenticate_SessionPrecedence(t *testing.T) {
	svc, users, _, hasher := newAuthFixture()
	user := seedUser(t, users, hasher, "alice@example.com", "pass123", true)

	res, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "alice@example.com", Password: "pass123"}, false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	// Change the password behind the session's back; the marker must still
	// authenticate without any credential check.
	stored, _ := users.FindByID(context.Background(), user.ID)
	digest, _ := hasher.Hash("different")
	stored.PasswordHash = digest
	if err := users.Update(context.Background(), stored); err != nil {
		t.Fatalf("updating password: %v", err)
	}

	res2, err := svc.Authenticate(context.Background(), res.SessionID, nil, false)
	if err != nil {
		t.Fatalf("session resume failed: %v", err)
	}
	if res2.Principal.UserID() != user.ID {
		t.Fatalf("expected user %s, got %s", user.ID, res2.Principal.UserID())
	}
	if res2.SessionID != "" {
		t.Fatalf("marker resume must not establish a new session")
	}
}

func TestAuthenticate_StaleMarkerFallsThrough(t *testing.T) {
	svc, users, sessions, hasher := newAuthFixture()
	user := seedUser(t, users, hasher, "alice@example.com", "pass123", true)

	res, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "alice@example.com", Password: "pass123"}, false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := users.Delete(context.Background(), user.ID); err != nil {
		t.Fatalf("deleting user: %v", err)
	}

	// Marker alone no longer resolves.
	if _, err := svc.Authenticate(context.Background(), res.SessionID, nil, false); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for stale marker, got %v", err)
	}
	// And the stale marker has been dropped.
	if marker, _ := sessions.Get(context.Background(), res.SessionID); marker != nil {
		t.Fatalf("expected stale marker to be removed, got %+v", marker)
	}

	// Stale marker plus valid admin credentials re-authenticates.
	res2, err := svc.Authenticate(context.Background(), res.SessionID,
		&ports.Credentials{Username: "admin", Password: adminPassword}, false)
	if err != nil {
		t.Fatalf("expected credentials to win over stale marker: %v", err)
	}
	if res2.SessionID == "" {
		t.Fatalf("expected a fresh session after fallthrough")
	}
}

func TestDeauthenticate(t *testing.T) {
	svc, _, sessions, _ := newAuthFixture()

	res, err := svc.Authenticate(context.Background(), "",
		&ports.Credentials{Username: "admin", Password: adminPassword}, false)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}

	if err := svc.Deauthenticate(context.Background(), res.SessionID); err != nil {
		t.Fatalf("Deauthenticate returned error: %v", err)
	}
	if marker, _ := sessions.Get(context.Background(), res.SessionID); marker != nil {
		t.Fatalf("expected marker to be gone")
	}
	// Idempotent, including for unknown sessions.
	if err := svc.Deauthenticate(context.Background(), res.SessionID); err != nil {
		t.Fatalf("repeat Deauthenticate returned error: %v", err)
	}
	if err := svc.Deauthenticate(context.Background(), ""); err != nil {
		t.Fatalf("empty-session Deauthenticate returned error: %v", err)
	}
}
