package model

import "time"

/*

User is an account that can authenticate against the API.

Id: primary key
Name: display name
Email: login identifier, unique
PasswordHash: bcrypt hash of the password, never serialized
Role: one of "user", "seller", "coach", "admin"
CreatedAt: time when entity is created
*/
type User struct {
	Id           int64  `gorm:"primaryKey" json:"id"`
	Name         string `gorm:"not null" json:"name"`
	Email        string `gorm:"uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"not null" json:"-"`
	Role         string `gorm:"not null;default:'user'" json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}
