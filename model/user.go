package model

import "time"

// User is one account record. The password hash never leaves the server.
type User struct {
	ID           string    `gorm:"primaryKey;type:char(36)" json:"id"`
	Username     string    `gorm:"type:varchar(191);uniqueIndex:idx_users_username;not null" json:"username"`
	Email        string    `gorm:"type:varchar(191);uniqueIndex:idx_users_email;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(255);not null" json:"-"`
	Feedback     string    `gorm:"type:text" json:"feedback,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// TableName pins the table name used by the unique index names above.
func (User) TableName() string {
	return "users"
}
