package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

var errNegativeAmount = errors.New("amount must not be negative")

// ParseAmount reads a user-entered money amount. Grouping commas, spaces and
// a leading currency symbol are tolerated ("₹1,00,000", "$ 2,500.50").
func ParseAmount(raw string) (decimal.Decimal, error) {
	s := strings.TrimSpace(raw)
	s = strings.TrimLeft(s, "$₹€£")
	s = strings.NewReplacer(",", "", " ", "").Replace(s)
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, err
	}
	if d.IsNegative() {
		return decimal.Zero, errNegativeAmount
	}
	return d, nil
}

// FinancialSummary is the dashboard roll-up of a profile.
type FinancialSummary struct {
	TotalAssets      decimal.Decimal `json:"totalAssets"`
	TotalLiabilities decimal.Decimal `json:"totalLiabilities"`
	NetWorth         decimal.Decimal `json:"netWorth"`
	LiquidAssets     decimal.Decimal `json:"liquidAssets"`
	MonthlySurplus   decimal.Decimal `json:"monthlySurplus"`
}

// Summarize totals the amount fields of a profile. Missing or unparseable
// amounts count as zero.
func Summarize(f ProfileFields) FinancialSummary {
	assets := sumAmounts(
		f.PrimaryResidence,
		f.OtherRealEstate,
		f.RetirementAccounts,
		f.InvestmentAccounts,
		f.CashAccounts,
	)
	liabilities := sumAmounts(
		f.Mortgage,
		f.CarLoans,
		f.CreditCardDebt,
		f.StudentLoans,
		f.OtherDebts,
	)
	liquid := sumAmounts(
		f.CashSavings,
		f.CashAccounts,
		f.InvestmentAccounts,
		f.RetirementAccounts,
	)

	return FinancialSummary{
		TotalAssets:      assets,
		TotalLiabilities: liabilities,
		NetWorth:         assets.Sub(liabilities),
		LiquidAssets:     liquid,
		MonthlySurplus:   amountOf(f.MonthlyIncome).Sub(amountOf(f.MonthlyExpenses)),
	}
}

func sumAmounts(values ...*string) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(amountOf(v))
	}
	return total
}

func amountOf(v *string) decimal.Decimal {
	if v == nil {
		return decimal.Zero
	}
	d, err := ParseAmount(*v)
	if err != nil {
		return decimal.Zero
	}
	return d
}
