package model

import "time"

// AccountID uniquely identifies an account
type AccountID int64

// Account holds a user's identity, display and social fields
type Account struct {
	ID           AccountID
	Username     string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext

	// Portfolio fields
	Tagline   string
	Bio       string
	Course    string
	Faction   string
	AvatarURL string

	// Status & socials
	Status      string
	Skills      string
	PublicEmail string
	LinkedIn    string
	GitHub      string

	// Certifications in display order
	Certifications []Certification

	CreatedAt time.Time
}

// Certification is a single entry of an account's certification list
type Certification struct {
	Name   string `json:"name"`
	Issuer string `json:"issuer"`
	Date   string `json:"date"`
}
