package password

import (
	"kuponbot/internal/pkg/errs"

	"golang.org/x/crypto/bcrypt"
)

var (
	ErrHashingFailed   = errs.New("password hashing failed")
	ErrMismatch        = errs.New("password does not match")
	ErrInvalidPassword = errs.New("invalid password")
)

const DefaultCost = bcrypt.DefaultCost

// Hash returns the bcrypt hash stored in OPERATOR_PASSWORD_HASH.
func Hash(password string) (string, error) {
	if password == "" {
		return "", ErrInvalidPassword
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), DefaultCost)
	if err != nil {
		return "", errs.Mark(errs.Wrap(err, "bcrypt"), ErrHashingFailed)
	}
	return string(hashed), nil
}

func Compare(hashed, password string) error {
	if hashed == "" || password == "" {
		return ErrInvalidPassword
	}

	err := bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password))
	switch {
	case errs.Is(err, bcrypt.ErrMismatchedHashAndPassword):
		return ErrMismatch
	case err != nil:
		return errs.Wrap(err, "failed to compare password hash")
	}
	return nil
}
