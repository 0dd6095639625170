package models

import "gorm.io/gorm"

// User is a registered buyer.
type User struct {
	gorm.Model
	Username     string `gorm:"size:80;not null;uniqueIndex"  json:"username"`
	Email        string `gorm:"size:150;not null;uniqueIndex" json:"email"`
	PasswordHash string `gorm:"size:255;not null"             json:"-"` // bcrypt, never serialised
	Phone        string `gorm:"size:20"                       json:"phone,omitempty"`
	Address      string `gorm:"type:text"                     json:"address,omitempty"`
}
