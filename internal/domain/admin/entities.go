package admin

import (
	"errors"
	"time"
)

var ErrNotFound = errors.New("admin not found")

type User struct {
	ID           string     `gorm:"column:id;primaryKey;size:36" json:"id"`
	Email        string     `gorm:"column:email;size:255;not null;uniqueIndex:ux_admin_users_email" json:"email"`
	Name         string     `gorm:"column:name;size:200" json:"name"`
	PasswordHash string     `gorm:"column:password_hash;size:100;not null" json:"-"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at,omitempty"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "admin_users" }
