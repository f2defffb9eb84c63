package auth

import (
	"context"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/repository"
	"github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/pkg/jwt"
)

// JWTConfig configuration de génération des tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase authentification des opérateurs : création de compte et login.
// Le username authentifié devient l'acteur des écritures de stock et du
// journal des annulations.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construit le cas d'usage.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crée un opérateur : hash bcrypt du mot de passe puis persistance.
// Retourne ErrDuplicate si le username existe déjà.
func (uc *AuthUseCase) Register(ctx context.Context, username, password, fullName, role string) (*entity.User, error) {
	if username == "" || len(password) < 8 {
		return nil, domain.ErrInvalidInput
	}
	switch role {
	case entity.RoleAdmin, entity.RoleGestionnaire, entity.RoleCaissier:
	default:
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	u := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: string(hash),
		FullName:     fullName,
		Role:         role,
		Active:       true,
		CreatedAt:    time.Now(),
	}
	if err := uc.userRepo.Create(u); err != nil {
		return nil, err
	}
	return u, nil
}

// Login vérifie le mot de passe et retourne un token JWT signé.
func (uc *AuthUseCase) Login(ctx context.Context, username, password string) (string, *entity.User, error) {
	u, err := uc.userRepo.GetByUsername(username)
	if err != nil {
		return "", nil, err
	}
	if u == nil || !u.Active {
		return "", nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)); err != nil {
		return "", nil, domain.ErrUnauthorized
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, u.ID, u.Username, u.Role, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return "", nil, err
	}
	return token, u, nil
}
