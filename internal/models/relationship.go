package models

import "time"

// Relationship records that a model was trained using a dataset.
// Referential existence of DatasetID and ModelID is checked at the API
// boundary, not enforced by the store. Only Status is mutable after creation.
type Relationship struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	DatasetID uint64    `gorm:"not null;index" json:"datasetId"`
	ModelID   uint64    `gorm:"not null;index" json:"modelId"`
	Status    string    `gorm:"size:64;not null;default:pending" json:"status"`
	UsageDate time.Time `gorm:"not null" json:"usageDate"`
}

// TableName overrides the table name for Relationship
func (Relationship) TableName() string {
	return "relationships"
}
