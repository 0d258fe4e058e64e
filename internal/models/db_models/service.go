package db_models

// Service is a catalog entry. Price is in minor currency units and is looked
// up at billing time; visits snapshot the price onto their line items.
type Service struct {
	BaseModel
	Name            string `gorm:"uniqueIndex"`
	Description     string `gorm:"type:text"`
	Price           int64
	DurationMinutes int
	Active          bool `gorm:"default:true"`
}
