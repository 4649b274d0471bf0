// Package notify delivers single messages to users and operators. Send
// failures are logged and reported as booleans; they never reach callers as errors.
package notify

import (
	"context"
	"log/slog"
)

type Dispatcher struct {
	sender Sender
	admins AdminDirectory
	logger *slog.Logger
}

func NewDispatcher(sender Sender, admins AdminDirectory, logger *slog.Logger) *Dispatcher {
	return &Dispatcher{sender: sender, admins: admins, logger: logger}
}

func (d *Dispatcher) Send(ctx context.Context, msg OutboundMessage) bool {
	if err := d.sender.Send(ctx, msg); err != nil {
		d.logger.WarnContext(ctx, "failed to send message", "chat_id", msg.ChatID, "error", err)
		return false
	}
	return true
}

func (d *Dispatcher) ToUser(ctx context.Context, chatID int64, text string) bool {
	return d.Send(ctx, OutboundMessage{ChatID: chatID, Text: text})
}

func (d *Dispatcher) Copy(ctx context.Context, to, fromChat int64, messageID int) bool {
	if err := d.sender.Copy(ctx, to, fromChat, messageID); err != nil {
		d.logger.WarnContext(ctx, "failed to copy message", "chat_id", to, "message_id", messageID, "error", err)
		return false
	}
	return true
}

// ToAdmins sends text to every operator and returns how many received it.
func (d *Dispatcher) ToAdmins(ctx context.Context, text string) int {
	delivered := 0
	for _, id := range d.admins.Admins() {
		if d.ToUser(ctx, id, text) {
			delivered++
		}
	}
	return delivered
}

func (d *Dispatcher) AnswerCallback(ctx context.Context, callbackID, text string) {
	if callbackID == "" {
		return
	}
	if err := d.sender.AnswerCallback(ctx, callbackID, text); err != nil {
		d.logger.DebugContext(ctx, "failed to answer callback", "error", err)
	}
}

func (d *Dispatcher) Admins() []int64 {
	return d.admins.Admins()
}
