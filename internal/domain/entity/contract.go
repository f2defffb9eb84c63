package entity

import "time"

// Contract représente une convention d'approvisionnement rattachable à une facture.
type Contract struct {
	ID        string
	ClientID  string
	Reference string
	StartDate time.Time
	EndDate   time.Time
	Active    bool
	CreatedAt time.Time
}

// ValidOn vérifie que le contrat est actif et couvre la date donnée.
func (c *Contract) ValidOn(date time.Time) bool {
	if !c.Active {
		return false
	}
	if date.Before(c.StartDate) {
		return false
	}
	return !date.After(c.EndDate)
}
