package request_models

type CreateDentistRequest struct {
	Name  string `json:"name" binding:"required,min=2,max=100"`
	Email string `json:"email" binding:"required,email"`
}

type CreateDentistWithProfileRequest struct {
	Name      string `json:"name" binding:"required,min=2,max=100"`
	Email     string `json:"email" binding:"required,email"`
	Specialty string `json:"specialty" binding:"required"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
}

type UpdateDentistProfileRequest struct {
	Name      *string `json:"name"`
	Specialty *string `json:"specialty"`
	Phone     *string `json:"phone"`
	Bio       *string `json:"bio"`
	Active    *bool   `json:"active"`
}
