package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// MonthlyInvoice (cuota) computed amount due for a member for one calendar
// month. Derived and recomputable: one logical row per (member, year, month)
// with upsert semantics, safe to regenerate until the charge is processed.
type MonthlyInvoice struct {
	MemberID         int64
	Year             int
	Month            int
	ClassesScheduled int
	ClassesBilled    int
	UnitPrice        decimal.Decimal
	GrossAmount      decimal.Decimal
	DiscountPct      decimal.Decimal
	NetAmount        decimal.Decimal
	GeneratedAt      time.Time
}

// IsZero true для нулевого счета (член клуба приостановил план)
func (i *MonthlyInvoice) IsZero() bool {
	return i.ClassesBilled == 0 && i.NetAmount.IsZero()
}
