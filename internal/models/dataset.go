package models

import (
	"time"

	"gorm.io/datatypes"
)

// StatusPending is the status assigned to datasets and relationships at creation.
const StatusPending = "pending"

// Dataset represents an uploaded training dataset pinned to the storage network.
// Only Status is mutable after creation; UploadedAt is assigned once by the store.
type Dataset struct {
	ID          uint64         `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string         `gorm:"size:255;not null" json:"name"`
	Description string         `gorm:"size:1024" json:"description"`
	Size        string         `gorm:"size:32" json:"size"`
	Status      string         `gorm:"size:64;not null;default:pending" json:"status"`
	ContentID   string         `gorm:"size:255;index" json:"contentId"`
	Metadata    datatypes.JSON `gorm:"type:json" json:"metadata,omitempty"`
	UploadedAt  time.Time      `gorm:"not null" json:"uploadedAt"`
}

// TableName overrides the table name for Dataset
func (Dataset) TableName() string {
	return "datasets"
}
