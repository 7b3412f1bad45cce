package models

import (
	"time"
)

// Property represents a real-estate listing
type Property struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"not null" json:"title"`
	Location    string    `json:"location"`
	Price       float64   `gorm:"not null;check:price >= 0" json:"price"`
	Description string    `gorm:"type:text" json:"description"`
	ImageS3Key  *string   `json:"image_s3_key"`                 // nullable, S3 key for the listing photo
	ImageURL    *string   `gorm:"-" json:"image_url,omitempty"` // computed field, presigned URL for the photo
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// TableName specifies the table name for the Property model
func (Property) TableName() string {
	return "properties"
}
