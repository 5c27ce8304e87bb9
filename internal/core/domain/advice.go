package domain

import "strings"

// InvestmentCategory is the investment option advice is requested for.
// Values outside the known set are accepted as free text.
type InvestmentCategory string

const (
	CategoryStocks         InvestmentCategory = "Stocks"
	CategoryBonds          InvestmentCategory = "Bonds"
	CategoryMutualFunds    InvestmentCategory = "Mutual Funds"
	CategoryETFs           InvestmentCategory = "ETFs"
	CategoryRealEstate     InvestmentCategory = "Real Estate"
	CategoryCommodities    InvestmentCategory = "Commodities"
	CategoryCryptocurrency InvestmentCategory = "Cryptocurrency"
	CategoryIndexFunds     InvestmentCategory = "Index Funds"
	CategoryFixedDeposits  InvestmentCategory = "Fixed Deposits"
	CategoryPrivateEquity  InvestmentCategory = "Private Equity"
)

// KnownCategories lists the enumerated options in display order.
var KnownCategories = []InvestmentCategory{
	CategoryStocks,
	CategoryBonds,
	CategoryMutualFunds,
	CategoryETFs,
	CategoryRealEstate,
	CategoryCommodities,
	CategoryCryptocurrency,
	CategoryIndexFunds,
	CategoryFixedDeposits,
	CategoryPrivateEquity,
}

// NormalizeCategory maps case/spacing variants of a known option to its
// canonical spelling and returns free text trimmed but otherwise unchanged.
func NormalizeCategory(raw string) InvestmentCategory {
	trimmed := strings.Join(strings.Fields(raw), " ")
	for _, c := range KnownCategories {
		if strings.EqualFold(trimmed, string(c)) {
			return c
		}
	}
	return InvestmentCategory(trimmed)
}

// IsKnown reports whether c is one of the enumerated options.
func (c InvestmentCategory) IsKnown() bool {
	for _, k := range KnownCategories {
		if c == k {
			return true
		}
	}
	return false
}

// ProsAndCons is the two-sided section of an advice result.
type ProsAndCons struct {
	Pros []string `json:"pros"`
	Cons []string `json:"cons"`
}

// AdviceResult is the normalized investment advice returned to the caller.
// It is built per request and never persisted.
type AdviceResult struct {
	InvestmentType             InvestmentCategory `json:"investmentType"`
	PersonalizedAdvice         string             `json:"personalizedAdvice"`
	UnderstandingYourSituation []string           `json:"understandingYourSituation"`
	ProsAndCons                ProsAndCons        `json:"prosAndCons"`
	IsItRightForYou            string             `json:"isItRightForYou"`
	StepByStepStrategy         []string           `json:"stepByStepStrategy"`
	NextSteps                  []string           `json:"nextSteps"`
	ImportantConsiderations    []string           `json:"importantConsiderations"`
}

// GoalAnalysis estimates progress towards the user's goals.
type GoalAnalysis struct {
	ShortTermPercent      float64 `json:"shortTermPercent"`
	LongTermPercent       float64 `json:"longTermPercent"`
	ShortTermAmountNeeded float64 `json:"shortTermAmountNeeded"`
	LongTermAmountNeeded  float64 `json:"longTermAmountNeeded"`
}

// IsDegenerate reports the "nothing achieved" answer that carries no information.
func (g GoalAnalysis) IsDegenerate() bool {
	return g.ShortTermPercent == 0 && g.LongTermPercent == 0
}
