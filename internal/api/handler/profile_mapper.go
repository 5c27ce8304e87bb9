package handler

import (
	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// --- Request → domain ---

// toFields must only be called on a validated request.
func (r profileRequest) toFields() domain.ProfileFields {
	return domain.ProfileFields{
		Age:              toAge(r.Age),
		MaritalStatus:    r.MaritalStatus,
		Dependents:       r.Dependents,
		EmploymentStatus: r.EmploymentStatus,

		MonthlyIncome:   r.MonthlyIncome,
		AnnualIncome:    r.AnnualIncome,
		ExtraIncome:     r.ExtraIncome,
		MonthlyExpenses: r.MonthlyExpenses,

		PrimaryResidence:   r.PrimaryResidence,
		Vehicles:           r.Vehicles,
		Investments:        r.Investments,
		CashSavings:        r.CashSavings,
		RetirementAccounts: r.RetirementAccounts,
		InvestmentAccounts: r.InvestmentAccounts,
		CashAccounts:       r.CashAccounts,
		OtherRealEstate:    r.OtherRealEstate,

		Mortgage:       r.Mortgage,
		CarLoans:       r.CarLoans,
		CreditCardDebt: r.CreditCardDebt,
		StudentLoans:   r.StudentLoans,
		OtherDebts:     r.OtherDebts,

		FinancialGoals: r.FinancialGoals,
		ShortTermGoals: r.ShortTermGoals,
		FinancialGoal:  r.FinancialGoal,
		Savings:        r.Savings,
		Contribution:   r.Contribution,
		RiskTolerance:  r.RiskTolerance,
		Experience:     r.Experience,

		DebtLiabilities:       r.DebtLiabilities,
		CurrentDebts:          r.CurrentDebts,
		OutstandingDebts:      r.OutstandingDebts,
		TotalOutstandingDebts: r.TotalOutstandingDebts,
		Insurance:             r.Insurance,
		InsuranceCoverage:     r.InsuranceCoverage,
		InsurancePolicies:     r.InsurancePolicies,
	}
}

func toAge(n *numberInput) *int {
	if n == nil {
		return nil
	}
	v, ok := n.Int()
	if !ok {
		return nil
	}
	return &v
}
