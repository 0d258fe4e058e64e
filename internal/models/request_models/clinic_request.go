package request_models

import "encoding/json"

type UpsertClinicProfileRequest struct {
	Name         string          `json:"name" binding:"required"`
	About        string          `json:"about"`
	Address      string          `json:"address"`
	Phone        string          `json:"phone"`
	Email        string          `json:"email" binding:"omitempty,email"`
	OpeningHours json.RawMessage `json:"opening_hours"`
	SocialLinks  json.RawMessage `json:"social_links"`
}

type UpsertFaqRequest struct {
	Question string `json:"question" binding:"required"`
	Answer   string `json:"answer" binding:"required"`
	Position int    `json:"position"`
}

type UpsertGalleryImageRequest struct {
	Title    string `json:"title"`
	URL      string `json:"url" binding:"required,url"`
	Position int    `json:"position"`
}
