package gemini

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

// Wire types for models/{model}:generateContent.

type part struct {
	Text string `json:"text"`
}

type content struct {
	Role  string `json:"role,omitempty"`
	Parts []part `json:"parts"`
}

type schema struct {
	Type             string             `json:"type"`
	Properties       map[string]*schema `json:"properties,omitempty"`
	Items            *schema            `json:"items,omitempty"`
	Required         []string           `json:"required,omitempty"`
	PropertyOrdering []string           `json:"propertyOrdering,omitempty"`
}

type generationConfig struct {
	Temperature      float64 `json:"temperature"`
	TopP             float64 `json:"topP"`
	TopK             int     `json:"topK"`
	MaxOutputTokens  int     `json:"maxOutputTokens"`
	ResponseMimeType string  `json:"responseMimeType"`
	ResponseSchema   *schema `json:"responseSchema"`
}

type generateRequest struct {
	Contents         []content        `json:"contents"`
	GenerationConfig generationConfig `json:"generationConfig"`
}

type candidate struct {
	Content      content `json:"content"`
	FinishReason string  `json:"finishReason"`
}

type generateResponse struct {
	Candidates     []candidate `json:"candidates"`
	PromptFeedback *struct {
		BlockReason string `json:"blockReason"`
	} `json:"promptFeedback,omitempty"`
}

func (r generateResponse) text() string {
	if len(r.Candidates) == 0 {
		return ""
	}
	var sb strings.Builder
	for _, p := range r.Candidates[0].Content.Parts {
		sb.WriteString(p.Text)
	}
	return sb.String()
}

// Section names the model is asked to produce.
const (
	keyPersonalizedAdvice = "Personalized Advice"
	keyUnderstanding      = "Understanding Your Situation"
	keyProsCons           = "Pros & Cons for You"
	keyRightForYou        = "Is it right for you?"
	keyStrategy           = "Step by step strategy"
	keyNextSteps          = "Next steps"
	keyConsiderations     = "Important Considerations"

	keyShortTerm       = "Short term"
	keyLongTerm        = "Long Term"
	keyShortTermNeeded = "Short term amount needed"
	keyLongTermNeeded  = "Long term amount needed"
)

func stringList() *schema {
	return &schema{Type: "ARRAY", Items: &schema{Type: "STRING"}}
}

func adviceSchema() *schema {
	order := []string{
		keyPersonalizedAdvice,
		keyUnderstanding,
		keyProsCons,
		keyRightForYou,
		keyStrategy,
		keyNextSteps,
		keyConsiderations,
	}
	return &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			keyPersonalizedAdvice: {Type: "STRING"},
			keyUnderstanding:      stringList(),
			keyProsCons: {
				Type: "OBJECT",
				Properties: map[string]*schema{
					"Pros": stringList(),
					"Cons": stringList(),
				},
				Required: []string{"Pros", "Cons"},
			},
			keyRightForYou:    {Type: "STRING"},
			keyStrategy:       stringList(),
			keyNextSteps:      stringList(),
			keyConsiderations: stringList(),
		},
		Required:         order,
		PropertyOrdering: order,
	}
}

func goalSchema() *schema {
	order := []string{keyShortTerm, keyLongTerm, keyShortTermNeeded, keyLongTermNeeded}
	return &schema{
		Type: "OBJECT",
		Properties: map[string]*schema{
			keyShortTerm:       {Type: "NUMBER"},
			keyLongTerm:        {Type: "NUMBER"},
			keyShortTermNeeded: {Type: "NUMBER"},
			keyLongTermNeeded:  {Type: "NUMBER"},
		},
		Required:         order,
		PropertyOrdering: order,
	}
}

// verdict accepts either a sentence or a list of sentences.
type verdict struct {
	text string
	set  bool
}

func (v *verdict) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err == nil {
		v.text, v.set = strings.TrimSpace(s), true
		return nil
	}
	var list []string
	if err := json.Unmarshal(b, &list); err != nil {
		return err
	}
	v.text, v.set = strings.TrimSpace(strings.Join(list, " ")), true
	return nil
}

// number accepts JSON numbers and numeric strings such as "45%" or "1,20,000".
type number struct {
	value float64
	set   bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	if bytes.Equal(b, []byte("null")) {
		return nil
	}
	var f float64
	if err := json.Unmarshal(b, &f); err == nil {
		n.value, n.set = f, true
		return nil
	}
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	d, err := domain.ParseAmount(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil {
		return err
	}
	n.value, n.set = d.InexactFloat64(), true
	return nil
}

type prosCons struct {
	Pros []string `json:"Pros"`
	Cons []string `json:"Cons"`
}

type adviceSections struct {
	PersonalizedAdvice      *string   `json:"Personalized Advice"`
	Understanding           *[]string `json:"Understanding Your Situation"`
	ProsCons                *prosCons `json:"Pros & Cons for You"`
	RightForYou             verdict   `json:"Is it right for you?"`
	Strategy                *[]string `json:"Step by step strategy"`
	NextSteps               *[]string `json:"Next steps"`
	ImportantConsiderations *[]string `json:"Important Considerations"`
}

type goalSections struct {
	ShortTerm       number `json:"Short term"`
	LongTerm        number `json:"Long Term"`
	ShortTermNeeded number `json:"Short term amount needed"`
	LongTermNeeded  number `json:"Long term amount needed"`
}

// stripFences removes a markdown code fence the model sometimes adds despite
// the JSON mime type.
func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

func schemaError(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrSchemaViolation, fmt.Sprintf(format, args...))
}

func parseAdvice(text string) (*domain.AdviceResult, error) {
	var s adviceSections
	if err := json.Unmarshal([]byte(stripFences(text)), &s); err != nil {
		return nil, schemaError("decode advice: %v", err)
	}

	var missing []string
	if s.PersonalizedAdvice == nil || strings.TrimSpace(*s.PersonalizedAdvice) == "" {
		missing = append(missing, keyPersonalizedAdvice)
	}
	if s.Understanding == nil {
		missing = append(missing, keyUnderstanding)
	}
	if s.ProsCons == nil || s.ProsCons.Pros == nil || s.ProsCons.Cons == nil {
		missing = append(missing, keyProsCons)
	}
	if !s.RightForYou.set || s.RightForYou.text == "" {
		missing = append(missing, keyRightForYou)
	}
	if s.Strategy == nil {
		missing = append(missing, keyStrategy)
	}
	if s.NextSteps == nil {
		missing = append(missing, keyNextSteps)
	}
	if s.ImportantConsiderations == nil {
		missing = append(missing, keyConsiderations)
	}
	if len(missing) > 0 {
		return nil, schemaError("missing sections %q", missing)
	}

	return &domain.AdviceResult{
		PersonalizedAdvice:         strings.TrimSpace(*s.PersonalizedAdvice),
		UnderstandingYourSituation: *s.Understanding,
		ProsAndCons: domain.ProsAndCons{
			Pros: s.ProsCons.Pros,
			Cons: s.ProsCons.Cons,
		},
		IsItRightForYou:         s.RightForYou.text,
		StepByStepStrategy:      *s.Strategy,
		NextSteps:               *s.NextSteps,
		ImportantConsiderations: *s.ImportantConsiderations,
	}, nil
}

func parseGoal(text string) (*domain.GoalAnalysis, error) {
	var s goalSections
	if err := json.Unmarshal([]byte(stripFences(text)), &s); err != nil {
		return nil, schemaError("decode goal analysis: %v", err)
	}
	if !s.ShortTerm.set || !s.LongTerm.set || !s.ShortTermNeeded.set || !s.LongTermNeeded.set {
		return nil, schemaError("missing goal sections")
	}

	for name, pct := range map[string]float64{keyShortTerm: s.ShortTerm.value, keyLongTerm: s.LongTerm.value} {
		if pct < 0 || pct > 100 {
			return nil, schemaError("%s out of range: %v", name, pct)
		}
	}
	if s.ShortTermNeeded.value < 0 || s.LongTermNeeded.value < 0 {
		return nil, schemaError("negative amount needed")
	}

	return &domain.GoalAnalysis{
		ShortTermPercent:      s.ShortTerm.value,
		LongTermPercent:       s.LongTerm.value,
		ShortTermAmountNeeded: s.ShortTermNeeded.value,
		LongTermAmountNeeded:  s.LongTermNeeded.value,
	}, nil
}
