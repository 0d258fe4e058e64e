package response_models

type DentistResponse struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	Active       bool   `json:"active"`
	PendingSetup bool   `json:"pending_setup"`
	Specialty    string `json:"specialty,omitempty"`
	Phone        string `json:"phone,omitempty"`
	Bio          string `json:"bio,omitempty"`
}
