package dto

import "github.com/djalleloulmi1-hash/gestion-commerciale-ecde-sub000/internal/domain/entity"

// RegisterRequest body pour POST /api/auth/register.
type RegisterRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Password string `json:"password" validate:"required,min=8"`
	FullName string `json:"full_name" validate:"required"`
	Role     string `json:"role" validate:"required,oneof=admin gestionnaire caissier"`
}

// LoginRequest body pour POST /api/auth/login.
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// UserResponse opérateur en réponse (jamais le hash).
type UserResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
	Role     string `json:"role"`
}

// FromUser convertit l'entité en réponse.
func FromUser(u *entity.User) UserResponse {
	return UserResponse{ID: u.ID, Username: u.Username, FullName: u.FullName, Role: u.Role}
}

// LoginResponse jeton et profil après connexion.
type LoginResponse struct {
	Token string       `json:"token"`
	User  UserResponse `json:"user"`
}
