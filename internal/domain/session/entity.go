package session

import (
	"errors"
	"time"
)

var ErrInvalidTransition = errors.New("transition not allowed from current state")

// Session is the per-user conversation record. Telegram IDs are treated as
// opaque identities; fields other than state are collected along onboarding.
type Session struct {
	telegramID      int64
	username        string
	phone           Phone
	fullName        FullName
	birthDate       BirthDate
	language        Language
	state           State
	role            Role
	cashbackBalance int64
	lastUpdateID    int64
	createdAt       time.Time
	updatedAt       time.Time

	// set when a persisted state could not be recognized
	recovered bool
}

// New starts onboarding for an unseen identity in WAITING_LANGUAGE.
func New(telegramID int64, username string, role Role, now time.Time) *Session {
	return &Session{
		telegramID: telegramID,
		username:   username,
		state:      StateWaitingLanguage,
		role:       role,
		createdAt:  now,
		updatedAt:  now,
	}
}

type Snapshot struct {
	TelegramID      int64
	Username        string
	Phone           string
	FullName        string
	BirthDate       string
	Language        string
	State           string
	Role            string
	CashbackBalance int64
	LastUpdateID    int64
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// Reconstruct rebuilds a session from storage. Unknown states are reset to
// START; malformed optional fields are dropped rather than failing the load.
func Reconstruct(s Snapshot) *Session {
	st, ok := ParseState(s.State)
	out := &Session{
		telegramID:      s.TelegramID,
		username:        s.Username,
		phone:           Phone{value: s.Phone},
		fullName:        FullName{value: s.FullName},
		language:        Language(s.Language),
		state:           st,
		role:            Role(s.Role),
		cashbackBalance: s.CashbackBalance,
		lastUpdateID:    s.LastUpdateID,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		recovered:       !ok,
	}
	if s.BirthDate != "" {
		if bd, err := ReconstructBirthDate(s.BirthDate); err == nil {
			out.birthDate = bd
		}
	}
	if !out.role.IsValid() {
		out.role = RoleCustomer
	}
	if !out.language.IsValid() {
		out.language = ""
	}
	return out
}

func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		TelegramID:      s.telegramID,
		Username:        s.username,
		Phone:           s.phone.Value(),
		FullName:        s.fullName.Value(),
		BirthDate:       s.birthDate.String(),
		Language:        s.language.String(),
		State:           s.state.String(),
		Role:            s.role.String(),
		CashbackBalance: s.cashbackBalance,
		LastUpdateID:    s.lastUpdateID,
		CreatedAt:       s.createdAt,
		UpdatedAt:       s.updatedAt,
	}
}

func (s *Session) advance(from, to State, now time.Time) error {
	if s.state != from || !from.CanAdvanceTo(to) {
		return ErrInvalidTransition
	}
	s.state = to
	s.updatedAt = now
	return nil
}

// BeginOnboarding moves a START record to language selection.
func (s *Session) BeginOnboarding(now time.Time) error {
	return s.advance(StateStart, StateWaitingLanguage, now)
}

func (s *Session) ChooseLanguage(lang Language, now time.Time) error {
	if !lang.IsValid() {
		return ErrInvalidLanguage
	}
	if err := s.advance(StateWaitingLanguage, StateWaitingContact, now); err != nil {
		return err
	}
	s.language = lang
	return nil
}

func (s *Session) ShareContact(phone Phone, now time.Time) error {
	if err := s.advance(StateWaitingContact, StateWaitingFullName, now); err != nil {
		return err
	}
	s.phone = phone
	return nil
}

func (s *Session) SetFullName(name FullName, now time.Time) error {
	if err := s.advance(StateWaitingFullName, StateWaitingBirthDate, now); err != nil {
		return err
	}
	s.fullName = name
	return nil
}

func (s *Session) SetBirthDate(bd BirthDate, now time.Time) error {
	if err := s.advance(StateWaitingBirthDate, StateWaitingChannelSubscription, now); err != nil {
		return err
	}
	s.birthDate = bd
	return nil
}

func (s *Session) CompleteRegistration(now time.Time) error {
	return s.advance(StateWaitingChannelSubscription, StateRegistered, now)
}

// ResetToStart is the only backwards edge; used to recover corrupt records.
func (s *Session) ResetToStart(now time.Time) {
	s.state = StateStart
	s.updatedAt = now
	s.recovered = false
}

// AcceptUpdate records an inbound update id and reports whether it is new.
// Telegram ids grow monotonically, so anything at or below the last seen id
// is a redelivery or arrived out of order. Zero ids are always accepted.
func (s *Session) AcceptUpdate(updateID int64) bool {
	if updateID == 0 {
		return true
	}
	if updateID <= s.lastUpdateID {
		return false
	}
	s.lastUpdateID = updateID
	return true
}

func (s *Session) UpdateUsername(username string, now time.Time) bool {
	if username == "" || username == s.username {
		return false
	}
	s.username = username
	s.updatedAt = now
	return true
}

func (s *Session) ApplyRole(r Role) {
	if r.IsValid() {
		s.role = r
	}
}

func (s *Session) Can(p Permission) bool {
	return s.role.Can(p)
}

func (s *Session) IsRegistered() bool {
	return s.state == StateRegistered
}

// Recovered reports whether the stored state was unknown at load time.
func (s *Session) Recovered() bool {
	return s.recovered
}

func (s *Session) TelegramID() int64      { return s.telegramID }
func (s *Session) Username() string       { return s.username }
func (s *Session) Phone() Phone           { return s.phone }
func (s *Session) FullName() FullName     { return s.fullName }
func (s *Session) BirthDate() BirthDate   { return s.birthDate }
func (s *Session) Language() Language     { return s.language }
func (s *Session) State() State           { return s.state }
func (s *Session) Role() Role             { return s.role }
func (s *Session) CashbackBalance() int64 { return s.cashbackBalance }
func (s *Session) LastUpdateID() int64    { return s.lastUpdateID }
func (s *Session) CreatedAt() time.Time   { return s.createdAt }
func (s *Session) UpdatedAt() time.Time   { return s.updatedAt }
