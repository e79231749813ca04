package commission

import "github.com/shopspring/decimal"

// CurrencyPrecision is the number of minor-unit digits amounts are kept in.
const CurrencyPrecision = 2

// Calculate returns the platform fee on a cash amount at the given rate,
// truncated to the currency's minor unit. Truncation, not rounding, so the fee
// never exceeds amount*rate. The result is frozen by the caller at proposal
// time and never recomputed on an open negotiation.
func Calculate(amount, rate decimal.Decimal) decimal.Decimal {
	if amount.Sign() <= 0 || rate.Sign() <= 0 {
		return decimal.Zero
	}
	return amount.Mul(rate).Truncate(CurrencyPrecision)
}

// Total returns the amount a payer is charged: the cash leg plus its frozen
// commission.
func Total(amount, fee decimal.Decimal) decimal.Decimal {
	return amount.Add(fee)
}
