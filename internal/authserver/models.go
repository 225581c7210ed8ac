package authserver

import "time"

// StartingBalance is credited to every new account.
const StartingBalance = 1000.00

// SessionTTL is how long an issued session token stays valid.
const SessionTTL = 7 * 24 * time.Hour

type Account struct {
	ID           uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Username     string  `gorm:"unique;not null"          json:"username"`
	Email        string  `gorm:"unique;not null"          json:"email"`
	PasswordHash string  `gorm:"not null"                 json:"-"`
	Balance      float64 `gorm:"not null"                 json:"balance"`
}

type UserSession struct {
	ID        uint      `gorm:"primaryKey"      json:"id"`
	Token     string    `gorm:"unique;not null" json:"token"`
	AccountID uint      `gorm:"index;not null"  json:"account_id"`
	ExpiresAt time.Time `gorm:"not null"        json:"expires_at"`
}
