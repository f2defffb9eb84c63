package entity

import "time"

// Rôles des opérateurs.
const (
	RoleAdmin        = "admin"
	RoleGestionnaire = "gestionnaire"
	RoleCaissier     = "caissier"
)

// User représente un opérateur de l'application.
type User struct {
	ID           string
	Username     string
	PasswordHash string
	FullName     string
	Role         string
	Active       bool
	CreatedAt    time.Time
}
