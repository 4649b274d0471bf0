package conversation

import (
	"context"

	"kuponbot/internal/usecase/notify"
)

type copyRequest struct {
	fromChat  int64
	messageID int
}

// outbox collects everything an update produces while its transaction runs.
// It is reset on every attempt because the transaction may be retried.
type outbox struct {
	messages      []notify.OutboundMessage
	adminTexts    []string
	adminCopies   []copyRequest
	callbackID    string
	callbackText  string
	answerPending bool
	tasks         []func(ctx context.Context)
	registered    bool
}

func (o *outbox) reset() {
	*o = outbox{}
}

func (o *outbox) send(msg notify.OutboundMessage) {
	o.messages = append(o.messages, msg)
}

func (o *outbox) text(chatID int64, text string) {
	o.send(notify.OutboundMessage{ChatID: chatID, Text: text})
}

func (o *outbox) toAdmins(text string) {
	o.adminTexts = append(o.adminTexts, text)
}

func (o *outbox) copyToAdmins(fromChat int64, messageID int) {
	o.adminCopies = append(o.adminCopies, copyRequest{fromChat: fromChat, messageID: messageID})
}

func (o *outbox) answer(callbackID, text string) {
	o.callbackID = callbackID
	o.callbackText = text
	o.answerPending = callbackID != ""
}

// later runs after the transaction commits and the lock is released.
func (o *outbox) later(task func(ctx context.Context)) {
	o.tasks = append(o.tasks, task)
}
