package notify

import "context"

// ReplyKeyboard is a small fixed keyboard of option strings.
type ReplyKeyboard struct {
	Rows [][]string
	// RequestContact turns the first button into a contact-share request.
	RequestContact bool
	OneTime        bool
}

// InlineButton carries either a URL or a callback token.
type InlineButton struct {
	Text string
	URL  string
	Data string
}

type OutboundMessage struct {
	ChatID         int64
	Text           string
	ParseMode      string
	Reply          *ReplyKeyboard
	Inline         [][]InlineButton
	RemoveKeyboard bool
}

// Sender is the outbound chat channel.
type Sender interface {
	Send(ctx context.Context, msg OutboundMessage) error
	// Copy re-sends an already posted message (photo, video, text) to another chat.
	Copy(ctx context.Context, to, fromChat int64, messageID int) error
	AnswerCallback(ctx context.Context, callbackID, text string) error
}

// MembershipChecker returns the raw member status of a user in a channel.
type MembershipChecker interface {
	MemberStatus(ctx context.Context, channel string, userID int64) (string, error)
}

type AdminDirectory interface {
	Admins() []int64
}
