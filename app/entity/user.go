package entity

import (
	"database/sql"
	"time"
)

// User is the identity record owned by the user-management subsystem. The
// lockout columns are written by that subsystem; this service only reads them
// during credential verification.
type User struct {
	ID                 uint64
	UserName           string
	NormalizedUserName string
	Email              string
	NormalizedEmail    string
	PasswordHash       string
	EmailConfirmed     bool
	AccessFailedCount  int
	LockoutEnabled     bool
	LockoutEnd         sql.NullTime
	SecurityStamp      string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// RefreshToken stores only the bcrypt hash of the token value. The plaintext
// is returned to the caller once at login and never persisted. At most one
// live row exists per user: the issuer deletes before it creates.
type RefreshToken struct {
	ID        uint64
	UserID    uint64
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
