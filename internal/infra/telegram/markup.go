package telegram

import (
	"kuponbot/internal/usecase/notify"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// replyMarkup picks one keyboard; inline buttons win over a reply keyboard.
func replyMarkup(msg notify.OutboundMessage) any {
	switch {
	case len(msg.Inline) > 0:
		return inlineKeyboard(msg.Inline)
	case msg.Reply != nil:
		return replyKeyboard(msg.Reply)
	case msg.RemoveKeyboard:
		return tgbotapi.NewRemoveKeyboard(true)
	}
	return nil
}

func replyKeyboard(kb *notify.ReplyKeyboard) tgbotapi.ReplyKeyboardMarkup {
	rows := make([][]tgbotapi.KeyboardButton, 0, len(kb.Rows))
	for i, labels := range kb.Rows {
		row := make([]tgbotapi.KeyboardButton, 0, len(labels))
		for j, label := range labels {
			if kb.RequestContact && i == 0 && j == 0 {
				row = append(row, tgbotapi.NewKeyboardButtonContact(label))
				continue
			}
			row = append(row, tgbotapi.NewKeyboardButton(label))
		}
		rows = append(rows, row)
	}
	markup := tgbotapi.NewReplyKeyboard(rows...)
	markup.OneTimeKeyboard = kb.OneTime
	return markup
}

func inlineKeyboard(buttons [][]notify.InlineButton) tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(buttons))
	for _, line := range buttons {
		row := make([]tgbotapi.InlineKeyboardButton, 0, len(line))
		for _, b := range line {
			if b.URL != "" {
				row = append(row, tgbotapi.NewInlineKeyboardButtonURL(b.Text, b.URL))
				continue
			}
			row = append(row, tgbotapi.NewInlineKeyboardButtonData(b.Text, b.Data))
		}
		rows = append(rows, row)
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}
