package voucher

import (
	"crypto/rand"
	"errors"
	"math/big"
	"regexp"
	"strings"
)

var (
	ErrInvalidCode     = errors.New("invalid voucher code format")
	ErrInvalidType     = errors.New("invalid voucher type")
	ErrInvalidStatus   = errors.New("invalid voucher status")
	ErrInvalidAmount   = errors.New("voucher amount must be positive")
	ErrInvalidValidity = errors.New("voucher validity must be at least one day")
)

const (
	CodeLength   = 8
	codeAlphabet = "0123456789abcdefghijklmnopqrstuvwxyz"
)

var codeRegex = regexp.MustCompile(`^[0-9a-z]{8}$`)

type Code string

// GenerateCode draws CodeLength symbols uniformly from the alphabet.
func GenerateCode() (Code, error) {
	max := big.NewInt(int64(len(codeAlphabet)))
	buf := make([]byte, CodeLength)
	for i := range buf {
		n, err := rand.Int(rand.Reader, max)
		if err != nil {
			return "", err
		}
		buf[i] = codeAlphabet[n.Int64()]
	}
	return Code(buf), nil
}

// NewCode normalizes user input; lookups are case-insensitive.
func NewCode(s string) (Code, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if !codeRegex.MatchString(s) {
		return "", ErrInvalidCode
	}
	return Code(s), nil
}

func (c Code) String() string {
	return string(c)
}

type Status string

const (
	StatusActive  Status = "ACTIVE"
	StatusUsed    Status = "USED"
	StatusExpired Status = "EXPIRED"
)

func (s Status) String() string {
	return string(s)
}

func NewStatus(s string) (Status, error) {
	switch st := Status(s); st {
	case StatusActive, StatusUsed, StatusExpired:
		return st, nil
	default:
		return "", ErrInvalidStatus
	}
}

type Type string

const (
	TypeBirthday    Type = "BIRTHDAY"
	TypeAnniversary Type = "ANNIVERSARY"
	TypeSpecial     Type = "SPECIAL"
)

func (t Type) String() string {
	return string(t)
}

func NewType(s string) (Type, error) {
	switch tp := Type(strings.ToUpper(strings.TrimSpace(s))); tp {
	case TypeBirthday, TypeAnniversary, TypeSpecial:
		return tp, nil
	default:
		return "", ErrInvalidType
	}
}
