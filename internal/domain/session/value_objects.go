package session

import (
	"errors"
	"strings"
	"time"
	"unicode"
	"unicode/utf8"
)

var (
	ErrInvalidLanguage     = errors.New("unsupported language")
	ErrInvalidRole         = errors.New("invalid role")
	ErrInvalidPhone        = errors.New("invalid phone number")
	ErrInvalidFullName     = errors.New("full name must contain first and last name")
	ErrInvalidBirthDate    = errors.New("birth date must be in dd.MM.yyyy format")
	ErrBirthDateOutOfRange = errors.New("birth date implies an implausible age")
)

const (
	BirthDateLayout = "02.01.2006"

	minAgeYears = 10
	maxAgeYears = 100
)

type Phone struct {
	value string
}

// NewPhone accepts the number from a contact share, with or without a leading plus.
func NewPhone(s string) (Phone, error) {
	s = strings.TrimSpace(s)
	digits := strings.TrimPrefix(s, "+")
	if len(digits) < 7 || len(digits) > 15 {
		return Phone{}, ErrInvalidPhone
	}
	for _, r := range digits {
		if r < '0' || r > '9' {
			return Phone{}, ErrInvalidPhone
		}
	}
	return Phone{value: "+" + digits}, nil
}

func (p Phone) Value() string {
	return p.value
}

type FullName struct {
	value string
}

func NewFullName(s string) (FullName, error) {
	s = strings.TrimSpace(s)
	if utf8.RuneCountInString(s) < 3 || !strings.ContainsFunc(s, unicode.IsSpace) {
		return FullName{}, ErrInvalidFullName
	}
	return FullName{value: s}, nil
}

func (n FullName) Value() string {
	return n.value
}

// FirstName is the leading word, used for greetings.
func (n FullName) FirstName() string {
	if f := strings.Fields(n.value); len(f) > 0 {
		return f[0]
	}
	return n.value
}

type BirthDate struct {
	day   int
	month time.Month
	year  int
}

// ParseBirthDate validates s against now: the implied age must be strictly
// between 10 and 100 years, so both boundary birthdays are rejected.
func ParseBirthDate(s string, now time.Time) (BirthDate, error) {
	t, err := time.ParseInLocation(BirthDateLayout, strings.TrimSpace(s), now.Location())
	if err != nil {
		return BirthDate{}, ErrInvalidBirthDate
	}

	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	oldest := today.AddDate(-maxAgeYears, 0, 0)
	youngest := today.AddDate(-minAgeYears, 0, 0)
	if !t.After(oldest) || !t.Before(youngest) {
		return BirthDate{}, ErrBirthDateOutOfRange
	}

	return BirthDate{day: t.Day(), month: t.Month(), year: t.Year()}, nil
}

// ReconstructBirthDate parses a stored value without the age check.
func ReconstructBirthDate(s string) (BirthDate, error) {
	t, err := time.Parse(BirthDateLayout, strings.TrimSpace(s))
	if err != nil {
		return BirthDate{}, ErrInvalidBirthDate
	}
	return BirthDate{day: t.Day(), month: t.Month(), year: t.Year()}, nil
}

func (b BirthDate) IsZero() bool {
	return b.year == 0
}

func (b BirthDate) String() string {
	if b.IsZero() {
		return ""
	}
	return time.Date(b.year, b.month, b.day, 0, 0, 0, 0, time.UTC).Format(BirthDateLayout)
}

// FallsOn compares day and month only. Feb 29 birthdays are observed on
// Feb 28 in common years.
func (b BirthDate) FallsOn(day time.Time) bool {
	if b.IsZero() {
		return false
	}
	_, m, d := day.Date()
	if b.month == time.February && b.day == 29 && !isLeap(day.Year()) {
		return m == time.February && d == 28
	}
	return m == b.month && d == b.day
}

func isLeap(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
