package request_models

type CreateServiceRequest struct {
	Name            string `json:"name" binding:"required,min=2,max=120"`
	Description     string `json:"description"`
	Price           int64  `json:"price" binding:"required,min=0"`
	DurationMinutes int    `json:"duration_minutes"`
}

type UpdateServiceRequest struct {
	Name            *string `json:"name"`
	Description     *string `json:"description"`
	Price           *int64  `json:"price"`
	DurationMinutes *int    `json:"duration_minutes"`
	Active          *bool   `json:"active"`
}
