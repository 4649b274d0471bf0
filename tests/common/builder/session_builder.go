//go:build unit || e2e

package builder

import (
	"time"

	"kuponbot/internal/domain/session"
)

var tashkent = time.FixedZone("Asia/Tashkent", 5*60*60)

// FixedNow is the reference instant used across builders.
var FixedNow = time.Date(2026, time.March, 1, 10, 0, 0, 0, tashkent)

type SessionBuilder struct {
	TelegramID int64
	Username   string
	Language   string
	Phone      string
	FullName   string
	BirthDate  string
	State      session.State
	Role       session.Role
	Now        time.Time
}

func NewSessionBuilder() *SessionBuilder {
	return &SessionBuilder{
		TelegramID: 5001,
		Username:   "@tester",
		Language:   "uz",
		Phone:      "+998901234567",
		FullName:   "Ism Familiya",
		BirthDate:  "15.03.1995",
		State:      session.StateRegistered,
		Role:       session.RoleCustomer,
		Now:        FixedNow,
	}
}

func (b *SessionBuilder) With(mutate func(*SessionBuilder)) *SessionBuilder {
	mutate(b)
	return b
}

func (b *SessionBuilder) WithTelegramID(id int64) *SessionBuilder {
	b.TelegramID = id
	return b
}

func (b *SessionBuilder) WithState(s session.State) *SessionBuilder {
	b.State = s
	return b
}

func (b *SessionBuilder) WithFullName(n string) *SessionBuilder {
	b.FullName = n
	return b
}

func (b *SessionBuilder) WithBirthDate(d string) *SessionBuilder {
	b.BirthDate = d
	return b
}

func (b *SessionBuilder) WithPhone(p string) *SessionBuilder {
	b.Phone = p
	return b
}

func (b *SessionBuilder) WithLanguage(l string) *SessionBuilder {
	b.Language = l
	return b
}

func (b *SessionBuilder) AsAdmin() *SessionBuilder {
	b.Role = session.RoleAdmin
	return b
}

// BuildDomain walks the onboarding transitions until the target state is
// reached, so every collected field goes through its validator.
func (b *SessionBuilder) BuildDomain() (*session.Session, error) {
	s := session.New(b.TelegramID, b.Username, b.Role, b.Now)
	steps := []func() error{
		func() error {
			lang, err := session.NewLanguage(b.Language)
			if err != nil {
				return err
			}
			return s.ChooseLanguage(lang, b.Now)
		},
		func() error {
			p, err := session.NewPhone(b.Phone)
			if err != nil {
				return err
			}
			return s.ShareContact(p, b.Now)
		},
		func() error {
			n, err := session.NewFullName(b.FullName)
			if err != nil {
				return err
			}
			return s.SetFullName(n, b.Now)
		},
		func() error {
			bd, err := session.ParseBirthDate(b.BirthDate, b.Now)
			if err != nil {
				return err
			}
			return s.SetBirthDate(bd, b.Now)
		},
		func() error {
			return s.CompleteRegistration(b.Now)
		},
	}

	for _, step := range steps {
		if s.State() == b.State {
			break
		}
		if err := step(); err != nil {
			return nil, err
		}
	}
	return s, nil
}

func (b *SessionBuilder) MustBuild() *session.Session {
	s, err := b.BuildDomain()
	if err != nil {
		panic(err)
	}
	return s
}
