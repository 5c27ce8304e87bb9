package domain

import (
	"reflect"
	"time"
)

// ProfileFields holds the questionnaire answers. Every field is optional and
// independently nullable; a nil pointer means "not provided".
type ProfileFields struct {
	// Personal
	Age              *int    `json:"age,omitempty" bson:"age,omitempty"`
	MaritalStatus    *string `json:"maritalStatus,omitempty" bson:"marital_status,omitempty"`
	Dependents       *string `json:"dependents,omitempty" bson:"dependents,omitempty"`
	EmploymentStatus *string `json:"employmentStatus,omitempty" bson:"employment_status,omitempty"`

	// Income
	MonthlyIncome   *string `json:"monthlyIncome,omitempty" bson:"monthly_income,omitempty"`
	AnnualIncome    *string `json:"annualIncome,omitempty" bson:"annual_income,omitempty"`
	ExtraIncome     *string `json:"extraIncome,omitempty" bson:"extra_income,omitempty"`
	MonthlyExpenses *string `json:"monthlyExpenses,omitempty" bson:"monthly_expenses,omitempty"`

	// Assets
	PrimaryResidence   *string `json:"primaryResidence,omitempty" bson:"primary_residence,omitempty"`
	Vehicles           *string `json:"vehicles,omitempty" bson:"vehicles,omitempty"`
	Investments        *string `json:"investments,omitempty" bson:"investments,omitempty"`
	CashSavings        *string `json:"cashSavings,omitempty" bson:"cash_savings,omitempty"`
	RetirementAccounts *string `json:"retirementAccounts,omitempty" bson:"retirement_accounts,omitempty"`
	InvestmentAccounts *string `json:"investmentAccounts,omitempty" bson:"investment_accounts,omitempty"`
	CashAccounts       *string `json:"cashAccounts,omitempty" bson:"cash_accounts,omitempty"`
	OtherRealEstate    *string `json:"otherRealEstate,omitempty" bson:"other_real_estate,omitempty"`

	// Liabilities
	Mortgage       *string `json:"mortgage,omitempty" bson:"mortgage,omitempty"`
	CarLoans       *string `json:"carLoans,omitempty" bson:"car_loans,omitempty"`
	CreditCardDebt *string `json:"creditCardDebt,omitempty" bson:"credit_card_debt,omitempty"`
	StudentLoans   *string `json:"studentLoans,omitempty" bson:"student_loans,omitempty"`
	OtherDebts     *string `json:"otherDebts,omitempty" bson:"other_debts,omitempty"`

	// Goals & risk
	FinancialGoals *string `json:"financialGoals,omitempty" bson:"financial_goals,omitempty"`
	ShortTermGoals *string `json:"shortTermGoals,omitempty" bson:"short_term_goals,omitempty"`
	FinancialGoal  *string `json:"financialGoal,omitempty" bson:"financial_goal,omitempty"`
	Savings        *string `json:"savings,omitempty" bson:"savings,omitempty"`
	Contribution   *string `json:"contribution,omitempty" bson:"contribution,omitempty"`
	RiskTolerance  *string `json:"riskTolerance,omitempty" bson:"risk_tolerance,omitempty"`
	Experience     *string `json:"experience,omitempty" bson:"experience,omitempty"`

	// Debt & insurance
	DebtLiabilities       *string `json:"debtLiabilities,omitempty" bson:"debt_liabilities,omitempty"`
	CurrentDebts          *string `json:"currentDebts,omitempty" bson:"current_debts,omitempty"`
	OutstandingDebts      *string `json:"outstandingDebts,omitempty" bson:"outstanding_debts,omitempty"`
	TotalOutstandingDebts *string `json:"totalOutstandingDebts,omitempty" bson:"total_outstanding_debts,omitempty"`
	Insurance             *string `json:"insurance,omitempty" bson:"insurance,omitempty"`
	InsuranceCoverage     *string `json:"insuranceCoverage,omitempty" bson:"insurance_coverage,omitempty"`
	InsurancePolicies     *string `json:"insurancePolicies,omitempty" bson:"insurance_policies,omitempty"`
}

// FinancialProfile is the single questionnaire document owned by a user.
type FinancialProfile struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	ProfileFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Merge applies patch as a merge-patch: every non-nil field of patch
// overwrites the receiver, nil fields leave it untouched. Values are copied,
// so the result never aliases patch.
func (f *ProfileFields) Merge(patch ProfileFields) {
	dst := reflect.ValueOf(f).Elem()
	src := reflect.ValueOf(patch)
	for i := 0; i < src.NumField(); i++ {
		v := src.Field(i)
		if v.IsNil() {
			continue
		}
		cp := reflect.New(v.Elem().Type())
		cp.Elem().Set(v.Elem())
		dst.Field(i).Set(cp)
	}
}

// IsEmpty reports whether no field is set.
func (f ProfileFields) IsEmpty() bool {
	v := reflect.ValueOf(f)
	for i := 0; i < v.NumField(); i++ {
		if !v.Field(i).IsNil() {
			return false
		}
	}
	return true
}

// Clone returns a deep copy.
func (f ProfileFields) Clone() ProfileFields {
	var out ProfileFields
	out.Merge(f)
	return out
}
