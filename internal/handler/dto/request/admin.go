package request

import (
	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/usecase/commands"
)

type BroadcastRequest struct {
	Message string `json:"message" binding:"required,max=4096"`
}

type SendSingleRequest struct {
	TelegramID int64  `json:"telegramId" binding:"required"`
	Message    string `json:"message" binding:"required,max=4096"`
}

type CreateVoucherRequest struct {
	TelegramID int64  `json:"telegramId" binding:"required"`
	Amount     int64  `json:"amount" binding:"required,gt=0"`
	Type       string `json:"type" binding:"required"`
	ValidDays  int    `json:"validDays" binding:"required,min=1,max=3650"`
}

func (r *CreateVoucherRequest) ToCommand() (commands.CreateVoucherRequest, error) {
	typ, err := voucher.NewType(r.Type)
	if err != nil {
		return commands.CreateVoucherRequest{}, err
	}
	return commands.CreateVoucherRequest{
		OwnerID:   r.TelegramID,
		Amount:    r.Amount,
		Type:      typ,
		ValidDays: r.ValidDays,
	}, nil
}

type CashbackRequest struct {
	Amount      int64  `json:"amount" binding:"required,gt=0"`
	Description string `json:"description" binding:"max=255"`
}
