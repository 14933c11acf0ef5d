package db_models

import "time"

// AdminCredential is the singleton admin record. Password holds a bcrypt hash,
// or plaintext for records written before hashing was introduced.
type AdminCredential struct {
	NativeID        string
	Username        string
	Password        string
	PasswordVersion int
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
