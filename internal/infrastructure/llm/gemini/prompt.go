package gemini

import (
	"encoding/json"
	"fmt"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

const adviceInstructions = `You are a financial advisor AI specializing in tailored investment tips.
Consider the user's background, interests and risk tolerance. Give clear, concise
and practical advice for the selected investment option, balancing risk, returns
and long-term viability. If the user's background is unknown, give well-rounded
advice suitable for different risk appetites.`

const goalInstructions = `You are a financial advisor AI specializing in personalized investment guidance.
Analyze the user's financial background, goals and risk tolerance. Estimate what
percentage of their short-term and long-term goals they have already completed
(0-100) and the remaining amount needed for each. If the background is unknown,
base the estimate on the data that is available.`

func advicePrompt(snapshot domain.ProfileFields, category domain.InvestmentCategory) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode profile snapshot: %w", err)
	}
	return fmt.Sprintf("%s\n\nSelected investment option: %s\n\nUser Data: %s\n", adviceInstructions, category, data), nil
}

func goalPrompt(snapshot domain.ProfileFields) (string, error) {
	data, err := json.Marshal(snapshot)
	if err != nil {
		return "", fmt.Errorf("encode profile snapshot: %w", err)
	}
	return fmt.Sprintf("%s\n\nUser Data: %s\n", goalInstructions, data), nil
}
