package db_models

import "github.com/google/uuid"

type DentistProfile struct {
	BaseModel
	UserID    uuid.UUID `gorm:"type:uuid;uniqueIndex"`
	Specialty string
	Phone     string `gorm:"size:32"`
	Bio       string `gorm:"type:text"`
}
