package service

import (
	"context"
	"errors"
	"time"

	"github.com/notewell/ms-notes-auth/app/entity"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// PasswordCheckResult is the outcome of a lockout-aware password check.
type PasswordCheckResult int

const (
	PasswordCheckSucceeded PasswordCheckResult = iota
	PasswordCheckFailed
	PasswordCheckLockedOut
)

func (r PasswordCheckResult) String() string {
	switch r {
	case PasswordCheckSucceeded:
		return "succeeded"
	case PasswordCheckLockedOut:
		return "locked_out"
	default:
		return "failed"
	}
}

type userFinder interface {
	FindByNormalizedEmail(ctx context.Context, normalizedEmail string) (*entity.User, error)
}

// CredentialVerifier checks an email/password pair against the user store.
// It only reads: lockout counters are maintained by the user-management
// subsystem.
type CredentialVerifier struct {
	userRepo userFinder
}

func NewCredentialVerifier(userRepo userFinder) *CredentialVerifier {
	return &CredentialVerifier{userRepo: userRepo}
}

// VerifyCredentials looks up the user by normalized email and checks the
// password against the stored hash. A lookup miss returns (nil,
// PasswordCheckFailed, nil); a non-nil error means a collaborator fault, not
// a credential rejection. Malformed email input is not special-cased: it
// proceeds to lookup and misses there.
func (v *CredentialVerifier) VerifyCredentials(ctx context.Context, email, password string) (*entity.User, PasswordCheckResult, error) {
	normalizedEmail := NormalizeEmail(email)

	user, err := v.userRepo.FindByNormalizedEmail(ctx, normalizedEmail)
	if err != nil {
		return nil, PasswordCheckFailed, err
	}
	if user == nil {
		logrus.WithField("email", email).Debug("credential check: user not found")
		return nil, PasswordCheckFailed, nil
	}

	if user.LockoutEnabled && user.LockoutEnd.Valid && user.LockoutEnd.Time.After(time.Now()) {
		logrus.WithFields(logrus.Fields{
			"user_id":     user.ID,
			"lockout_end": user.LockoutEnd.Time,
		}).Warn("credential check: account locked out")
		return user, PasswordCheckLockedOut, nil
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		if errors.Is(err, bcrypt.ErrMismatchedHashAndPassword) {
			logrus.WithField("user_id", user.ID).Warn("credential check: password rejected")
			return user, PasswordCheckFailed, nil
		}
		return nil, PasswordCheckFailed, err
	}

	return user, PasswordCheckSucceeded, nil
}
