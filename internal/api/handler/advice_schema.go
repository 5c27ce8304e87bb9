package handler

import "github.com/finadvisor/assessment-api/internal/core/domain"

// adviceRequest matches what the dashboard sends: the chosen option plus an
// optional copy of the questionnaire used for this call only.
type adviceRequest struct {
	InvestmentPreference string          `json:"investmentPreference" validate:"required,max=100"`
	FormData             *profileRequest `json:"formData"`
}

type goalAnalysisRequest struct {
	FormData *profileRequest `json:"formData"`
}

type adviceResponse struct {
	Advice *domain.AdviceResult `json:"advice"`
}

type goalAnalysisResponse struct {
	Analysis *domain.GoalAnalysis `json:"analysis"`
}

func overridesOf(fd *profileRequest) domain.ProfileFields {
	if fd == nil {
		return domain.ProfileFields{}
	}
	return fd.toFields()
}
