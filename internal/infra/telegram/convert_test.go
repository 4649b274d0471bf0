//go:build unit

package telegram

import (
	"testing"

	"kuponbot/internal/usecase/conversation"

	"github.com/google/go-cmp/cmp"
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func TestToUpdate(t *testing.T) {
	user := &tgbotapi.User{ID: 77, UserName: "ali"}
	private := &tgbotapi.Chat{ID: 77, Type: "private"}
	group := &tgbotapi.Chat{ID: -500, Type: "group"}

	tests := []struct {
		name string
		in   tgbotapi.Update
		want conversation.Update
		keep bool
	}{
		{
			name: "text message",
			in:   tgbotapi.Update{UpdateID: 10, Message: &tgbotapi.Message{MessageID: 1, From: user, Chat: private, Text: "/start"}},
			want: conversation.Update{ID: 10, SenderID: 77, ChatID: 77, Username: "ali", Text: "/start"},
			keep: true,
		},
		{
			name: "contact share",
			in: tgbotapi.Update{UpdateID: 11, Message: &tgbotapi.Message{
				MessageID: 2, From: user, Chat: private,
				Contact: &tgbotapi.Contact{PhoneNumber: "998901234567", UserID: 77},
			}},
			want: conversation.Update{
				ID: 11, SenderID: 77, ChatID: 77, Username: "ali",
				Contact: &conversation.Contact{Phone: "998901234567", UserID: 77},
			},
			keep: true,
		},
		{
			name: "photo with caption",
			in: tgbotapi.Update{UpdateID: 12, Message: &tgbotapi.Message{
				MessageID: 3, From: user, Chat: private, Caption: "new frames",
				Photo: []tgbotapi.PhotoSize{{FileID: "f"}},
			}},
			want: conversation.Update{
				ID: 12, SenderID: 77, ChatID: 77, Username: "ali", Text: "new frames",
				Media: &conversation.Media{ChatID: 77, MessageID: 3},
			},
			keep: true,
		},
		{
			name: "callback",
			in: tgbotapi.Update{UpdateID: 13, CallbackQuery: &tgbotapi.CallbackQuery{
				ID: "q1", From: user, Data: "check_subscription",
				Message: &tgbotapi.Message{MessageID: 4, Chat: private},
			}},
			want: conversation.Update{
				ID: 13, SenderID: 77, ChatID: 77, Username: "ali",
				Callback: &conversation.Callback{ID: "q1", Data: "check_subscription"},
			},
			keep: true,
		},
		{
			name: "group message dropped",
			in:   tgbotapi.Update{UpdateID: 14, Message: &tgbotapi.Message{From: user, Chat: group, Text: "hi"}},
		},
		{
			name: "channel post dropped",
			in:   tgbotapi.Update{UpdateID: 15, ChannelPost: &tgbotapi.Message{Chat: &tgbotapi.Chat{ID: -100, Type: "channel"}}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, keep := ToUpdate(tt.in)
			if keep != tt.keep {
				t.Fatalf("keep = %v, want %v", keep, tt.keep)
			}
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("ToUpdate() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
