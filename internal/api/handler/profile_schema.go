package handler

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// numberInput accepts a JSON number or a numeric string ("30"). Any other
// JSON value is kept as raw text so the validator reports it with the rest
// of the payload instead of failing the bind.
type numberInput string

func (n *numberInput) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		*n = numberInput(strings.TrimSpace(s))
		return nil
	}
	*n = numberInput(b)
	return nil
}

func (n numberInput) Int() (int, bool) {
	v, err := strconv.Atoi(string(n))
	return v, err == nil
}

// profileRequest is the questionnaire payload. Its fields mirror
// domain.ProfileFields; see toFields.
type profileRequest struct {
	Age              *numberInput `json:"age"              validate:"omitempty,integer,intmin=18,intmax=120"`
	MaritalStatus    *string      `json:"maritalStatus"    validate:"omitempty,oneof=Married Unmarried"`
	Dependents       *string      `json:"dependents"       validate:"omitempty,yesno"`
	EmploymentStatus *string      `json:"employmentStatus" validate:"omitempty,oneof=Employed Self-Employed Unemployed Retired"`

	MonthlyIncome   *string `json:"monthlyIncome"   validate:"omitempty,amount"`
	AnnualIncome    *string `json:"annualIncome"    validate:"omitempty,amount"`
	ExtraIncome     *string `json:"extraIncome"     validate:"omitempty,max=500"`
	MonthlyExpenses *string `json:"monthlyExpenses" validate:"omitempty,amount"`

	PrimaryResidence   *string `json:"primaryResidence"   validate:"omitempty,amount"`
	Vehicles           *string `json:"vehicles"           validate:"omitempty,amount"`
	Investments        *string `json:"investments"        validate:"omitempty,max=500"`
	CashSavings        *string `json:"cashSavings"        validate:"omitempty,amount"`
	RetirementAccounts *string `json:"retirementAccounts" validate:"omitempty,amount"`
	InvestmentAccounts *string `json:"investmentAccounts" validate:"omitempty,amount"`
	CashAccounts       *string `json:"cashAccounts"       validate:"omitempty,amount"`
	OtherRealEstate    *string `json:"otherRealEstate"    validate:"omitempty,amount"`

	Mortgage       *string `json:"mortgage"       validate:"omitempty,amount"`
	CarLoans       *string `json:"carLoans"       validate:"omitempty,amount"`
	CreditCardDebt *string `json:"creditCardDebt" validate:"omitempty,amount"`
	StudentLoans   *string `json:"studentLoans"   validate:"omitempty,amount"`
	OtherDebts     *string `json:"otherDebts"     validate:"omitempty,amount"`

	FinancialGoals *string `json:"financialGoals" validate:"omitempty,max=500"`
	ShortTermGoals *string `json:"shortTermGoals" validate:"omitempty,max=500"`
	FinancialGoal  *string `json:"financialGoal"  validate:"omitempty,max=500"`
	Savings        *string `json:"savings"        validate:"omitempty,bracket"`
	Contribution   *string `json:"contribution"   validate:"omitempty,bracket"`
	RiskTolerance  *string `json:"riskTolerance"  validate:"omitempty,oneof=Conservative Moderate Aggressive"`
	Experience     *string `json:"experience"     validate:"omitempty,max=500"`

	DebtLiabilities       *string `json:"debtLiabilities"       validate:"omitempty,max=500"`
	CurrentDebts          *string `json:"currentDebts"          validate:"omitempty,max=500"`
	OutstandingDebts      *string `json:"outstandingDebts"      validate:"omitempty,yesno"`
	TotalOutstandingDebts *string `json:"totalOutstandingDebts" validate:"omitempty,amount"`
	Insurance             *string `json:"insurance"             validate:"omitempty,max=500"`
	InsuranceCoverage     *string `json:"insuranceCoverage"     validate:"omitempty,max=500"`
	InsurancePolicies     *string `json:"insurancePolicies"     validate:"omitempty,max=500"`
}

// profileResponse flattens the stored questionnaire next to its metadata.
type profileResponse struct {
	ID     string `json:"id"`
	UserID string `json:"userId"`
	domain.ProfileFields
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func toProfileResponse(p *domain.FinancialProfile) profileResponse {
	return profileResponse{
		ID:            p.ID,
		UserID:        p.UserID,
		ProfileFields: p.ProfileFields,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

type submitFormResponse struct {
	Msg      string          `json:"msg"`
	FormData profileResponse `json:"formData"`
}

type formDataResponse struct {
	FormData profileResponse `json:"formData"`
}

type summaryResponse struct {
	Summary *domain.FinancialSummary `json:"summary"`
}
