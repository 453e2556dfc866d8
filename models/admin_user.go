package models

import "time"

// AdminUser represents the admin_users table
type AdminUser struct {
	ID           int        `gorm:"primaryKey;autoIncrement;column:id" json:"id"`
	Username     string     `gorm:"column:username;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"column:password_hash" json:"-"`
	FullName     string     `gorm:"column:full_name" json:"full_name"`
	Role         string     `gorm:"column:role;default:reviewer" json:"role"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	LastLogin    *time.Time `gorm:"column:last_login" json:"last_login,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at" json:"created_at"`
}

// TableName overrides the table name for AdminUser
func (AdminUser) TableName() string {
	return "admin_users"
}
