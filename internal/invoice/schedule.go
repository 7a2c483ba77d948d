package invoice

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/MrJamesThe3rd/facturaas/internal/apperr"
)

// Schedule splits gross into installments payments, the first due on
// issueDate and each following one periodDays later. Every installment but
// the last gets gross/installments rounded to cents; the last absorbs the
// remainder so the amounts add up to gross exactly.
func Schedule(gross decimal.Decimal, installments, periodDays int, issueDate time.Time) ([]Payment, error) {
	if installments < 1 {
		return nil, apperr.Validation("installments must be at least 1")
	}

	if periodDays < 0 {
		return nil, apperr.Validation("period days must not be negative")
	}

	if !gross.IsPositive() {
		return nil, apperr.Validation("invoice total must be positive to schedule payments")
	}

	n := int64(installments)
	base := gross.DivRound(decimal.NewFromInt(n), 2)
	last := gross.Sub(base.Mul(decimal.NewFromInt(n - 1)))

	if !base.IsPositive() || !last.IsPositive() {
		return nil, apperr.Validation("invoice total %s is too small for %d installments", gross.StringFixed(2), installments)
	}

	payments := make([]Payment, installments)

	for i := range payments {
		amount := base
		if i == installments-1 {
			amount = last
		}

		payments[i] = Payment{
			Number:  i + 1,
			DueDate: issueDate.AddDate(0, 0, i*periodDays),
			Amount:  amount,
			State:   PaymentPending,
		}
	}

	return payments, nil
}
