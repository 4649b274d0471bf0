package session

type State string

const (
	StateStart                      State = "START"
	StateWaitingLanguage            State = "WAITING_LANGUAGE"
	StateWaitingContact             State = "WAITING_CONTACT"
	StateWaitingFullName            State = "WAITING_FULL_NAME"
	StateWaitingBirthDate           State = "WAITING_BIRTH_DATE"
	StateWaitingChannelSubscription State = "WAITING_CHANNEL_SUBSCRIPTION"
	StateRegistered                 State = "REGISTERED"
)

// onboarding order; each state may only advance to the one after it
var onboarding = []State{
	StateStart,
	StateWaitingLanguage,
	StateWaitingContact,
	StateWaitingFullName,
	StateWaitingBirthDate,
	StateWaitingChannelSubscription,
	StateRegistered,
}

func (s State) String() string {
	return string(s)
}

func (s State) IsValid() bool {
	return s.step() >= 0
}

func (s State) step() int {
	for i, st := range onboarding {
		if st == s {
			return i
		}
	}
	return -1
}

// CanAdvanceTo reports whether next is the single forward edge from s.
func (s State) CanAdvanceTo(next State) bool {
	i := s.step()
	return i >= 0 && i+1 < len(onboarding) && onboarding[i+1] == next
}

func ParseState(v string) (State, bool) {
	s := State(v)
	if !s.IsValid() {
		return StateStart, false
	}
	return s, true
}

type Language string

const (
	LanguageUzLatin    Language = "uz"
	LanguageUzCyrillic Language = "uz_cyrl"
	LanguageRussian    Language = "ru"
)

func (l Language) String() string {
	return string(l)
}

func (l Language) IsValid() bool {
	switch l {
	case LanguageUzLatin, LanguageUzCyrillic, LanguageRussian:
		return true
	default:
		return false
	}
}

func NewLanguage(s string) (Language, error) {
	l := Language(s)
	if !l.IsValid() {
		return "", ErrInvalidLanguage
	}
	return l, nil
}
