package models

import "time"

// RefreshToken defines a stored refresh token based on the 'refresh_tokens' table
type RefreshToken struct {
	ID         int64     `json:"id" db:"id"`
	Token      string    `json:"token" db:"token"`
	StudentID  int64     `json:"studentId" db:"student_id"`
	ExpiryDate time.Time `json:"expiryDate" db:"expiry_date"`
	IsRevoked  bool      `json:"isRevoked" db:"is_revoked"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
}
