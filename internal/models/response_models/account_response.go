package response_models

type AccountResponse struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	Active bool   `json:"active"`
}

// ProvisionResponse reports the outcome of inviting a dentist. Otp is only
// populated outside production so integration environments can complete the
// flow without a mailbox.
type ProvisionResponse struct {
	ID        string `json:"id"`
	Email     string `json:"email"`
	EmailSent bool   `json:"email_sent"`
	Otp       string `json:"otp,omitempty"`
}
