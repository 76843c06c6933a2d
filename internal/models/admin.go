package models

import "time"

// RoleAdmin is the role assigned to every registered administrator.
const RoleAdmin = "admin"

// Admin represents an administrator account stored in the database.
type Admin struct {
	ID uint64 `gorm:"primaryKey;autoIncrement"` // Primary key.

	Username string `gorm:"type:text;not null;uniqueIndex"` // Unique login name.
	Password string `gorm:"type:text;not null"`             // Hashed password, never serialized.

	Role   string `gorm:"type:text;not null;default:admin"` // Authorization role.
	Active bool   `gorm:"not null;default:true"`            // Whether the admin can sign in.

	CreatedAt time.Time `gorm:"not null;autoCreateTime"` // Creation timestamp.
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime"` // Last update timestamp.
}
