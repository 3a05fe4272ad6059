package mitarbeiter

import (
	"context"
	"testing"
	"time"

	"github.com/fleischhandel/backend/internal/domain/mitarbeiter"
	"github.com/fleischhandel/backend/internal/domain/shared"
	"github.com/fleischhandel/backend/internal/infrastructure/auth"
	"github.com/fleischhandel/backend/internal/infrastructure/config"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type mitarbeiterRepoStub struct {
	byID   map[uuid.UUID]*mitarbeiter.Mitarbeiter
	byName map[string]*mitarbeiter.Mitarbeiter
	saved  []*mitarbeiter.Mitarbeiter
}

func newMitarbeiterRepoStub() *mitarbeiterRepoStub {
	return &mitarbeiterRepoStub{
		byID:   make(map[uuid.UUID]*mitarbeiter.Mitarbeiter),
		byName: make(map[string]*mitarbeiter.Mitarbeiter),
	}
}

func (r *mitarbeiterRepoStub) add(m *mitarbeiter.Mitarbeiter) {
	r.byID[m.ID] = m
	r.byName[m.Benutzername] = m
}

func (r *mitarbeiterRepoStub) FindByID(_ context.Context, id uuid.UUID) (*mitarbeiter.Mitarbeiter, error) {
	if m, ok := r.byID[id]; ok {
		return m, nil
	}
	return nil, shared.ErrNotFound
}

func (r *mitarbeiterRepoStub) FindByBenutzername(_ context.Context, benutzername string) (*mitarbeiter.Mitarbeiter, error) {
	if m, ok := r.byName[benutzername]; ok {
		return m, nil
	}
	return nil, shared.ErrNotFound
}

func (r *mitarbeiterRepoStub) FindAll(_ context.Context, _ shared.Filter) ([]mitarbeiter.Mitarbeiter, error) {
	out := make([]mitarbeiter.Mitarbeiter, 0, len(r.byID))
	for _, m := range r.byID {
		out = append(out, *m)
	}
	return out, nil
}

func (r *mitarbeiterRepoStub) Count(_ context.Context, _ shared.Filter) (int64, error) {
	return int64(len(r.byID)), nil
}

func (r *mitarbeiterRepoStub) ExistsByBenutzername(_ context.Context, benutzername string) (bool, error) {
	_, ok := r.byName[benutzername]
	return ok, nil
}

func (r *mitarbeiterRepoStub) Save(_ context.Context, m *mitarbeiter.Mitarbeiter) error {
	r.add(m)
	r.saved = append(r.saved, m)
	return nil
}

func (r *mitarbeiterRepoStub) Delete(_ context.Context, id uuid.UUID) error {
	if m, ok := r.byID[id]; ok {
		delete(r.byName, m.Benutzername)
		delete(r.byID, id)
		return nil
	}
	return shared.ErrNotFound
}

func newTestAuthService(t *testing.T, repo *mitarbeiterRepoStub) *AuthService {
	t.Helper()
	jwtService := auth.NewJWTService(config.JWTConfig{
		Secret:                 "test-secret-for-auth-service-tests",
		AccessTokenExpiration:  15 * time.Minute,
		RefreshTokenExpiration: 168 * time.Hour,
		Issuer:                 "fleischhandel-test",
		MaxRefreshCount:        10,
	})
	return NewAuthService(repo, jwtService, auth.NewInMemoryTokenBlacklist(), zap.NewNop())
}

func newTestMitarbeiter(t *testing.T, benutzername, passwort string, rollen ...mitarbeiter.Rolle) *mitarbeiter.Mitarbeiter {
	t.Helper()
	hash, err := mitarbeiter.HashPasswort(passwort)
	require.NoError(t, err)
	m, err := mitarbeiter.NewMitarbeiter(benutzername, "Test Person", hash, rollen)
	require.NoError(t, err)
	return m
}

func TestAuthService_Login(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	m := newTestMitarbeiter(t, "hans", "geheim123", mitarbeiter.RolleVerkauf)
	repo.add(m)
	svc := newTestAuthService(t, repo)

	result, err := svc.Login(context.Background(), LoginRequest{
		Benutzername: "hans",
		Passwort:     "geheim123",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, result.Tokens.AccessToken)
	assert.NotEmpty(t, result.Tokens.RefreshToken)
	assert.Equal(t, "Bearer", result.Tokens.TokenType)
	assert.Equal(t, "hans", result.Mitarbeiter.Benutzername)
	assert.Equal(t, []string{"verkauf"}, result.Mitarbeiter.Rollen)
}

func TestAuthService_Login_WrongPasswort(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	repo.add(newTestMitarbeiter(t, "hans", "geheim123", mitarbeiter.RolleVerkauf))
	svc := newTestAuthService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Benutzername: "hans",
		Passwort:     "falsch123",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_UnknownBenutzername(t *testing.T) {
	svc := newTestAuthService(t, newMitarbeiterRepoStub())

	_, err := svc.Login(context.Background(), LoginRequest{
		Benutzername: "niemand",
		Passwort:     "geheim123",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	// unknown user and wrong password are indistinguishable
	assert.Equal(t, "INVALID_CREDENTIALS", domainErr.Code)
}

func TestAuthService_Login_Deactivated(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	m := newTestMitarbeiter(t, "hans", "geheim123", mitarbeiter.RolleVerkauf)
	m.Deactivate()
	repo.add(m)
	svc := newTestAuthService(t, repo)

	_, err := svc.Login(context.Background(), LoginRequest{
		Benutzername: "hans",
		Passwort:     "geheim123",
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_Refresh(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	m := newTestMitarbeiter(t, "hans", "geheim123", mitarbeiter.RolleVerkauf)
	repo.add(m)
	svc := newTestAuthService(t, repo)

	login, err := svc.Login(context.Background(), LoginRequest{
		Benutzername: "hans",
		Passwort:     "geheim123",
	})
	require.NoError(t, err)

	// role change between login and refresh shows up in the new token
	require.NoError(t, m.SetRollen([]mitarbeiter.Rolle{mitarbeiter.RolleFahrer}))

	refreshed, err := svc.Refresh(context.Background(), RefreshRequest{
		RefreshToken: login.Tokens.RefreshToken,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.Tokens.RefreshToken, refreshed.RefreshToken)
}

func TestAuthService_Refresh_SingleUse(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	repo.add(newTestMitarbeiter(t, "hans", "geheim123", mitarbeiter.RolleVerkauf))
	svc := newTestAuthService(t, repo)

	login, err := svc.Login(context.Background(), LoginRequest{
		Benutzername: "hans",
		Passwort:     "geheim123",
	})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_Refresh_DeactivatedAccount(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	m := newTestMitarbeiter(t, "hans", "geheim123", mitarbeiter.RolleVerkauf)
	repo.add(m)
	svc := newTestAuthService(t, repo)

	login, err := svc.Login(context.Background(), LoginRequest{
		Benutzername: "hans",
		Passwort:     "geheim123",
	})
	require.NoError(t, err)

	m.Deactivate()

	_, err = svc.Refresh(context.Background(), RefreshRequest{RefreshToken: login.Tokens.RefreshToken})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ACCOUNT_DEACTIVATED", domainErr.Code)
}

func TestAuthService_Refresh_InvalidToken(t *testing.T) {
	svc := newTestAuthService(t, newMitarbeiterRepoStub())

	_, err := svc.Refresh(context.Background(), RefreshRequest{RefreshToken: "not-a-token"})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "TOKEN_INVALID", domainErr.Code)
}

func TestAuthService_ChangePasswort(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	m := newTestMitarbeiter(t, "hans", "geheim123", mitarbeiter.RolleVerkauf)
	repo.add(m)
	svc := newTestAuthService(t, repo)

	err := svc.ChangePasswort(context.Background(), m.ID, ChangePasswortRequest{
		AltesPasswort: "geheim123",
		NeuesPasswort: "nochgeheimer456",
	})
	require.NoError(t, err)
	assert.True(t, m.VerifyPasswort("nochgeheimer456"))
	assert.False(t, m.VerifyPasswort("geheim123"))
}

func TestAuthService_ChangePasswort_WrongOld(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	m := newTestMitarbeiter(t, "hans", "geheim123", mitarbeiter.RolleVerkauf)
	repo.add(m)
	svc := newTestAuthService(t, repo)

	err := svc.ChangePasswort(context.Background(), m.ID, ChangePasswortRequest{
		AltesPasswort: "falsch",
		NeuesPasswort: "nochgeheimer456",
	})
	require.Error(t, err)
	assert.True(t, m.VerifyPasswort("geheim123"))
}

func TestMitarbeiterService_Create(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	svc := NewMitarbeiterService(repo)

	resp, err := svc.Create(context.Background(), CreateMitarbeiterRequest{
		Benutzername: "erika",
		Name:         "Erika Muster",
		Passwort:     "geheim123",
		Rollen:       []string{"kommissionierung", "lager"},
		Telefon:      "+49 170 1234567",
	})
	require.NoError(t, err)
	assert.Equal(t, "erika", resp.Benutzername)
	assert.Equal(t, []string{"kommissionierung", "lager"}, resp.Rollen)
	assert.True(t, resp.Aktiv)

	// stored hash verifies against the plaintext
	stored := repo.byName["erika"]
	require.NotNil(t, stored)
	assert.True(t, stored.VerifyPasswort("geheim123"))
	assert.NotEqual(t, "geheim123", stored.PasswortHash)
}

func TestMitarbeiterService_Create_DuplicateBenutzername(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	repo.add(newTestMitarbeiter(t, "erika", "geheim123", mitarbeiter.RolleLager))
	svc := NewMitarbeiterService(repo)

	_, err := svc.Create(context.Background(), CreateMitarbeiterRequest{
		Benutzername: "erika",
		Name:         "Erika Muster",
		Passwort:     "geheim123",
		Rollen:       []string{"lager"},
	})
	require.Error(t, err)
	var domainErr *shared.DomainError
	require.ErrorAs(t, err, &domainErr)
	assert.Equal(t, "ALREADY_EXISTS", domainErr.Code)
}

func TestMitarbeiterService_SetRollen(t *testing.T) {
	repo := newMitarbeiterRepoStub()
	m := newTestMitarbeiter(t, "erika", "geheim123", mitarbeiter.RolleLager)
	repo.add(m)
	svc := NewMitarbeiterService(repo)

	resp, err := svc.SetRollen(context.Background(), m.ID, SetRollenRequest{
		Rollen: []string{"fahrer"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"fahrer"}, resp.Rollen)

	_, err = svc.SetRollen(context.Background(), m.ID, SetRollenRequest{
		Rollen: []string{"superuser"},
	})
	assert.Error(t, err)
}
