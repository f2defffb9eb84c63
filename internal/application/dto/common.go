package dto

// ErrorResponse corps d'erreur HTTP.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// PageRequest pagination des listes.
type PageRequest struct {
	Limit int `query:"limit" validate:"min=0,max=500"`
}

// DefaultPage applique la valeur par défaut si Limit est nul.
func (p *PageRequest) DefaultPage() {
	if p.Limit <= 0 {
		p.Limit = 50
	}
}
