package cashback

// Stats is the ledger folded into totals.
type Stats struct {
	Balance     int64
	TotalEarned int64
	TotalUsed   int64
	Refunded    int64
}

// Replay recomputes the balance from entries. The stored balance column must
// always equal Replay(entries).Balance.
func Replay(entries []*Entry) Stats {
	var s Stats
	for _, e := range entries {
		switch e.Type() {
		case TypeEarned:
			s.TotalEarned += e.CashbackAmount()
		case TypeUsed:
			s.TotalUsed += e.CashbackAmount()
		case TypeRefunded:
			s.Refunded += e.CashbackAmount()
		}
		s.Balance += e.Delta()
	}
	return s
}
