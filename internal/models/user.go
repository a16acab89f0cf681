package models

import "time"

// User is a dashboard account. The password is stored as a bcrypt hash and
// never serialized into API responses.
type User struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username  string    `gorm:"uniqueIndex;size:255;not null" json:"username"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
}

// TableName overrides the table name for User
func (User) TableName() string {
	return "users"
}
