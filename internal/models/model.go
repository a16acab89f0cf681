package models

import "time"

// Model represents a trained model artifact pinned to the storage network.
// Models are immutable after creation; CreatedAt is assigned once by the store.
type Model struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Description string    `gorm:"size:1024" json:"description"`
	ContentID   string    `gorm:"size:255;index" json:"contentId"`
	CreatedAt   time.Time `gorm:"not null" json:"createdAt"`
}

// TableName overrides the table name for Model
func (Model) TableName() string {
	return "models"
}
