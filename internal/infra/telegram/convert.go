package telegram

import (
	"kuponbot/internal/usecase/conversation"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// ToUpdate keeps private-chat messages and callback queries; everything
// else (channel posts, group chatter, edits) is dropped.
func ToUpdate(u tgbotapi.Update) (conversation.Update, bool) {
	switch {
	case u.Message != nil:
		return fromMessage(int64(u.UpdateID), u.Message)
	case u.CallbackQuery != nil:
		return fromCallback(int64(u.UpdateID), u.CallbackQuery)
	}
	return conversation.Update{}, false
}

func fromMessage(id int64, m *tgbotapi.Message) (conversation.Update, bool) {
	if m.From == nil || m.Chat == nil || !m.Chat.IsPrivate() {
		return conversation.Update{}, false
	}
	out := conversation.Update{
		ID:       id,
		SenderID: m.From.ID,
		ChatID:   m.Chat.ID,
		Username: m.From.UserName,
		Text:     m.Text,
	}
	if m.Contact != nil {
		out.Contact = &conversation.Contact{Phone: m.Contact.PhoneNumber, UserID: m.Contact.UserID}
	}
	if len(m.Photo) > 0 || m.Video != nil {
		out.Media = &conversation.Media{ChatID: m.Chat.ID, MessageID: m.MessageID}
		out.Text = m.Caption
	}
	return out, true
}

func fromCallback(id int64, q *tgbotapi.CallbackQuery) (conversation.Update, bool) {
	if q.From == nil {
		return conversation.Update{}, false
	}
	out := conversation.Update{
		ID:       id,
		SenderID: q.From.ID,
		ChatID:   q.From.ID,
		Username: q.From.UserName,
		Callback: &conversation.Callback{ID: q.ID, Data: q.Data},
	}
	if q.Message != nil && q.Message.Chat != nil {
		if !q.Message.Chat.IsPrivate() {
			return conversation.Update{}, false
		}
		out.ChatID = q.Message.Chat.ID
	}
	return out, true
}
