package db_models

import "gorm.io/datatypes"

// ClinicProfile holds the marketing-site content. A single row is kept and
// upserted in place.
type ClinicProfile struct {
	BaseModel
	Name         string
	About        string `gorm:"type:text"`
	Address      string
	Phone        string         `gorm:"size:32"`
	Email        string
	OpeningHours datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
	SocialLinks  datatypes.JSON `gorm:"type:jsonb;default:'{}'"`
}

type FAQEntry struct {
	BaseModel
	Question string `gorm:"type:text"`
	Answer   string `gorm:"type:text"`
	Position int    `gorm:"index"`
}

type GalleryImage struct {
	BaseModel
	Title    string
	URL      string
	Position int `gorm:"index"`
}
