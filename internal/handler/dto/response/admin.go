package response

import (
	"time"

	"kuponbot/internal/domain/cashback"
	"kuponbot/internal/domain/session"
	"kuponbot/internal/domain/voucher"
	"kuponbot/internal/usecase/broadcast"
	"kuponbot/internal/usecase/commands"
	"kuponbot/internal/usecase/queries"
	"kuponbot/internal/usecase/scheduler"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// Entities expose state through getters; copier reads them as methods and
// these converters flatten the value objects into JSON scalars.
var copyOpts = copier.Option{
	Converters: []copier.TypeConverter{
		stringer(uuid.UUID{}, func(v any) string { return v.(uuid.UUID).String() }),
		stringer(voucher.Code(""), func(v any) string { return v.(voucher.Code).String() }),
		stringer(voucher.Status(""), func(v any) string { return v.(voucher.Status).String() }),
		stringer(voucher.Type(""), func(v any) string { return v.(voucher.Type).String() }),
		stringer(session.Phone{}, func(v any) string { return v.(session.Phone).Value() }),
		stringer(session.FullName{}, func(v any) string { return v.(session.FullName).Value() }),
		stringer(session.BirthDate{}, func(v any) string { return v.(session.BirthDate).String() }),
		stringer(session.Language(""), func(v any) string { return v.(session.Language).String() }),
		stringer(session.State(""), func(v any) string { return v.(session.State).String() }),
		stringer(session.Role(""), func(v any) string { return v.(session.Role).String() }),
		stringer(cashback.EntryType(""), func(v any) string { return string(v.(cashback.EntryType)) }),
		stringer(cashback.EntryStatus(""), func(v any) string { return string(v.(cashback.EntryStatus)) }),
		stringer(cashback.Percentage{}, func(v any) string { return v.(cashback.Percentage).String() }),
		{
			SrcType: time.Time{},
			DstType: int64(0),
			Fn: func(src any) (any, error) {
				return src.(time.Time).Unix(), nil
			},
		},
		{
			SrcType: (*time.Time)(nil),
			DstType: (*int64)(nil),
			Fn: func(src any) (any, error) {
				t := src.(*time.Time)
				if t == nil {
					return (*int64)(nil), nil
				}
				u := t.Unix()
				return &u, nil
			},
		},
	},
}

func stringer(src any, fn func(any) string) copier.TypeConverter {
	return copier.TypeConverter{
		SrcType: src,
		DstType: copier.String,
		Fn: func(v any) (any, error) {
			return fn(v), nil
		},
	}
}

type VoucherResponse struct {
	ID        string `json:"id"`
	Code      string `json:"code"`
	OwnerID   int64  `json:"ownerId"`
	Amount    int64  `json:"amount"`
	Status    string `json:"status"`
	Type      string `json:"type"`
	CreatedAt int64  `json:"createdAt"`
	ExpiresAt int64  `json:"expiresAt"`
	UsedAt    *int64 `json:"usedAt,omitempty"`
}

func FromVoucher(v *voucher.Voucher) (*VoucherResponse, error) {
	res := &VoucherResponse{}
	if err := copier.CopyWithOption(res, v, copyOpts); err != nil {
		return nil, err
	}
	return res, nil
}

func FromVouchers(vs []*voucher.Voucher) ([]*VoucherResponse, error) {
	res := make([]*VoucherResponse, 0, len(vs))
	for _, v := range vs {
		r, err := FromVoucher(v)
		if err != nil {
			return nil, err
		}
		res = append(res, r)
	}
	return res, nil
}

type CashbackEntryResponse struct {
	ID             string `json:"id"`
	Type           string `json:"type"`
	Status         string `json:"status"`
	PurchaseAmount int64  `json:"purchaseAmount"`
	CashbackAmount int64  `json:"cashbackAmount"`
	Percentage     string `json:"percentage"`
	Description    string `json:"description"`
	CreatedAt      int64  `json:"createdAt"`
	UsedAt         *int64 `json:"usedAt,omitempty"`
}

type CashbackStatsResponse struct {
	Balance     int64 `json:"balance"`
	TotalEarned int64 `json:"totalEarned"`
	TotalUsed   int64 `json:"totalUsed"`
	Refunded    int64 `json:"refunded"`
}

type CashbackResultResponse struct {
	Entry   *CashbackEntryResponse `json:"entry"`
	Balance int64                  `json:"balance"`
}

type CashbackHistoryResponse struct {
	Stats   CashbackStatsResponse    `json:"stats"`
	Entries []*CashbackEntryResponse `json:"entries"`
}

func FromCashbackResult(r *commands.CashbackResult) (*CashbackResultResponse, error) {
	entry := &CashbackEntryResponse{}
	if err := copier.CopyWithOption(entry, r.Entry, copyOpts); err != nil {
		return nil, err
	}
	return &CashbackResultResponse{Entry: entry, Balance: r.Balance}, nil
}

func FromCashbackHistory(entries []*cashback.Entry, stats cashback.Stats) (*CashbackHistoryResponse, error) {
	res := &CashbackHistoryResponse{Entries: make([]*CashbackEntryResponse, 0, len(entries))}
	if err := copier.Copy(&res.Stats, &stats); err != nil {
		return nil, err
	}
	for _, e := range entries {
		item := &CashbackEntryResponse{}
		if err := copier.CopyWithOption(item, e, copyOpts); err != nil {
			return nil, err
		}
		res.Entries = append(res.Entries, item)
	}
	return res, nil
}

type UserResponse struct {
	TelegramID      int64                 `json:"telegramId"`
	Username        string                `json:"username"`
	Phone           string                `json:"phone"`
	FullName        string                `json:"fullName"`
	BirthDate       string                `json:"birthDate"`
	Language        string                `json:"language"`
	State           string                `json:"state"`
	Role            string                `json:"role"`
	CashbackBalance int64                 `json:"cashbackBalance"`
	CreatedAt       int64                 `json:"createdAt"`
	Vouchers        []*VoucherResponse    `json:"vouchers"`
	Cashback        CashbackStatsResponse `json:"cashback"`
}

func FromProfile(p *queries.ProfileView) (*UserResponse, error) {
	res := &UserResponse{}
	if err := copier.CopyWithOption(res, p.Session, copyOpts); err != nil {
		return nil, err
	}
	vouchers, err := FromVouchers(p.Vouchers)
	if err != nil {
		return nil, err
	}
	res.Vouchers = vouchers
	if err := copier.Copy(&res.Cashback, &p.Cashback); err != nil {
		return nil, err
	}
	return res, nil
}

type StatsResponse struct {
	Registered int64            `json:"registered"`
	Onboarding int64            `json:"onboarding"`
	Sessions   map[string]int64 `json:"sessions"`
	Vouchers   map[string]int64 `json:"vouchers"`
}

func FromOverview(o *queries.OverviewView) *StatsResponse {
	res := &StatsResponse{
		Registered: o.Registered(),
		Onboarding: o.Onboarding(),
		Sessions:   make(map[string]int64, len(o.Sessions)),
		Vouchers:   make(map[string]int64, len(o.Vouchers)),
	}
	for st, n := range o.Sessions {
		res.Sessions[st.String()] = n
	}
	for st, n := range o.Vouchers {
		res.Vouchers[st.String()] = n
	}
	return res
}

type BroadcastResponse struct {
	Total       int     `json:"total"`
	Success     int     `json:"success"`
	Failure     int     `json:"failure"`
	SuccessRate float64 `json:"successRate"`
}

func FromBroadcastResult(r broadcast.Result) *BroadcastResponse {
	return &BroadcastResponse{
		Total:       r.Total,
		Success:     r.Success,
		Failure:     r.Failure,
		SuccessRate: r.SuccessRate(),
	}
}

type SendSingleResponse struct {
	Delivered bool `json:"delivered"`
}

type SweepResponse struct {
	Sweep    string `json:"sweep"`
	Matched  int    `json:"matched"`
	Notified int    `json:"notified"`
	Skipped  int    `json:"skipped"`
	Expired  int64  `json:"expired"`
}

func FromReport(r scheduler.Report) *SweepResponse {
	res := &SweepResponse{}
	_ = copier.Copy(res, &r)
	return res
}
