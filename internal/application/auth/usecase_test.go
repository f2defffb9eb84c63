package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/application/auth"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/infrastructure/memory"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/pkg/jwt"
)

const (
	testSecret   = "secret-de-test-au-moins-32-caracteres"
	testPassword = "mot2passe-solide"
)

func newAuthUC(store *memory.Store) *auth.AuthUseCase {
	return auth.NewAuthUseCase(store.Users(), auth.JWTConfig{
		Secret:     testSecret,
		ExpMinutes: 60,
		Issuer:     "gestion-commerciale-test",
	})
}

func TestRegister_CreeUnOperateur(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	u, err := uc.Register(context.Background(), "karim", testPassword, "Karim Benali", entity.RoleGestionnaire)
	require.NoError(t, err)
	assert.Equal(t, "karim", u.Username)
	assert.Equal(t, entity.RoleGestionnaire, u.Role)
	assert.True(t, u.Active)
	// Jamais le mot de passe en clair.
	assert.NotEqual(t, testPassword, u.PasswordHash)
	assert.NotEmpty(t, u.PasswordHash)
}

func TestRegister_MotDePasseTropCourt(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.Register(context.Background(), "karim", "court", "", entity.RoleCaissier)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_RoleInconnu(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, err := uc.Register(context.Background(), "karim", testPassword, "", "super-admin")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRegister_UsernameDuplique(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)
	ctx := context.Background()

	_, err := uc.Register(ctx, "karim", testPassword, "", entity.RoleCaissier)
	require.NoError(t, err)

	_, err = uc.Register(ctx, "karim", testPassword, "", entity.RoleCaissier)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestLogin_RetourneUnTokenValide(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)
	ctx := context.Background()

	created, err := uc.Register(ctx, "karim", testPassword, "Karim Benali", entity.RoleAdmin)
	require.NoError(t, err)

	token, u, err := uc.Login(ctx, "karim", testPassword)
	require.NoError(t, err)
	assert.Equal(t, created.ID, u.ID)
	require.NotEmpty(t, token)

	// Le token porte l'identité et le rôle.
	userID, username, role, err := jwt.Parse(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, created.ID, userID)
	assert.Equal(t, "karim", username)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestLogin_MauvaisMotDePasse(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)
	ctx := context.Background()

	_, err := uc.Register(ctx, "karim", testPassword, "", entity.RoleCaissier)
	require.NoError(t, err)

	_, _, err = uc.Login(ctx, "karim", "pas-le-bon")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestLogin_UtilisateurInconnu(t *testing.T) {
	store := memory.NewStore()
	uc := newAuthUC(store)

	_, _, err := uc.Login(context.Background(), "fantome", testPassword)
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
