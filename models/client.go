package models

import "time"

type Role string

const (
	RoleAdmin  Role = "ADMIN"
	RoleClient Role = "CLIENT"
)

type Client struct {
	Id         string    `bson:"_id" json:"id"`
	Name       string    `bson:"name" json:"name"`
	Mobile     string    `bson:"mobile" json:"mobile"`
	IsApproved bool      `bson:"isApproved" json:"isApproved"`
	CreatedAt  time.Time `bson:"createdAt" json:"createdAt"`
}

type User struct {
	Id           string    `bson:"_id" json:"id"`
	Email        string    `bson:"email" json:"email"`
	// Persisted through the row codec; handlers must never echo this struct.
	PasswordHash string    `bson:"passwordHash" json:"passwordHash"`
	Role         Role      `bson:"role" json:"role"`
	IsActive     bool      `bson:"isActive" json:"isActive"`
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}

type RefreshToken struct {
	Id         string     `bson:"_id" json:"id"`
	UserId     string     `bson:"userId" json:"userId"`
	TokenHash  string     `bson:"tokenHash" json:"tokenHash"`
	ExpiresAt  time.Time  `bson:"expiresAt" json:"expiresAt"`
	CreatedAt  time.Time  `bson:"createdAt" json:"createdAt"`
	RevokedAt  *time.Time `bson:"revokedAt,omitempty" json:"revokedAt,omitempty"`
	ReplacedBy *string    `bson:"replacedBy,omitempty" json:"replacedBy,omitempty"`
}

type OTPSession struct {
	Id        string    `bson:"_id" json:"id"`
	Mobile    string    `bson:"mobile" json:"mobile"`
	Code      string    `bson:"code" json:"code"`
	ExpiresAt time.Time `bson:"expiresAt" json:"expiresAt"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
}
