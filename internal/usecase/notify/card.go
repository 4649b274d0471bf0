package notify

import (
	"strconv"
	"strings"

	"kuponbot/internal/domain/session"
)

// Card is the identity block shown to operators in alerts.
type Card struct {
	Name   string
	Handle string
	ID     string
	Phone  string
}

func CardOf(s *session.Session) Card {
	return Card{
		Name:   orDash(s.FullName().Value()),
		Handle: orDash(strings.TrimPrefix(s.Username(), "@")),
		ID:     strconv.FormatInt(s.TelegramID(), 10),
		Phone:  orDash(s.Phone().Value()),
	}
}

func orDash(v string) string {
	if v == "" {
		return "-"
	}
	return v
}
