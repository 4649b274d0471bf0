package conversation

import "strings"

// Callback tokens carried by inline buttons.
const (
	CallbackCheckSubscription = "check_subscription"
	CallbackConfirmBroadcast  = "confirm_broadcast"
	CallbackCancelBroadcast   = "cancel_broadcast"
)

type Contact struct {
	Phone string
	// UserID is the owner of the shared contact; 0 when Telegram omits it.
	UserID int64
}

type Callback struct {
	ID   string
	Data string
}

// Media references a photo or video already posted in ChatID.
type Media struct {
	ChatID    int64
	MessageID int
}

// Update is one inbound event, already stripped of transport details.
type Update struct {
	ID       int64
	SenderID int64
	ChatID   int64
	Username string
	Text     string
	Contact  *Contact
	Callback *Callback
	Media    *Media
}

func (u Update) IsContact() bool {
	return u.Contact != nil
}

func (u Update) IsCallback(data string) bool {
	return u.Callback != nil && u.Callback.Data == data
}

func (u Update) HasText() bool {
	return strings.TrimSpace(u.Text) != ""
}

func (u Update) replyTo() int64 {
	if u.ChatID != 0 {
		return u.ChatID
	}
	return u.SenderID
}

// command splits "/cmd@bot args" into "/cmd" and "args".
func (u Update) command() (string, string) {
	text := strings.TrimSpace(u.Text)
	if !strings.HasPrefix(text, "/") {
		return "", ""
	}
	name, args, _ := strings.Cut(text, " ")
	name, _, _ = strings.Cut(name, "@")
	return strings.ToLower(name), strings.TrimSpace(args)
}

// subscribedStatuses are the chat member statuses counted as subscribed.
var subscribedStatuses = map[string]bool{
	"member":        true,
	"administrator": true,
	"creator":       true,
	"owner":         true,
}

func IsSubscribed(status string) bool {
	return subscribedStatuses[strings.ToLower(status)]
}
