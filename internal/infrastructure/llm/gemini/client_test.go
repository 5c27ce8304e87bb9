package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

const validAdvice = `{
  "Personalized Advice": "Given your moderate risk tolerance, start with index-heavy exposure.",
  "Understanding Your Situation": ["Stable income", "No dependents"],
  "Pros & Cons for You": {"Pros": ["Long-term growth"], "Cons": ["Short-term volatility"]},
  "Is it right for you?": "Yes, as part of a diversified plan.",
  "Step by step strategy": ["Build an emergency fund", "Invest monthly"],
  "Next steps": ["Open a brokerage account"],
  "Important Considerations": ["Fees", "Taxes"]
}`

// geminiServer answers every generateContent call with the given candidate text.
func geminiServer(t *testing.T, status int, candidateText string, inspect func(*http.Request, generateRequest)) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req generateRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("server could not decode request: %v", err)
		}
		if inspect != nil {
			inspect(r, req)
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if status != http.StatusOK {
			_, _ = w.Write([]byte(`{"error":{"message":"boom"}}`))
			return
		}
		resp := generateResponse{}
		if candidateText != "" {
			resp.Candidates = []candidate{{Content: content{Parts: []part{{Text: candidateText}}}, FinishReason: "STOP"}}
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func newTestClient(baseURL string) *Client {
	return NewClient(Config{APIKey: "test-key", BaseURL: baseURL, Timeout: 2 * time.Second}, zerolog.Nop())
}

func TestClient_InvestmentAdvice_Success(t *testing.T) {
	age := 35
	srv := geminiServer(t, http.StatusOK, validAdvice, func(r *http.Request, req generateRequest) {
		if r.URL.Path != "/v1beta/models/gemini-2.0-flash:generateContent" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("x-goog-api-key") != "test-key" {
			t.Errorf("api key header missing")
		}
		if req.GenerationConfig.ResponseMimeType != "application/json" {
			t.Errorf("expected JSON mime type")
		}
		if req.GenerationConfig.ResponseSchema == nil || len(req.GenerationConfig.ResponseSchema.Required) != 7 {
			t.Errorf("expected advice schema with 7 required sections")
		}
		prompt := req.Contents[0].Parts[0].Text
		if !strings.Contains(prompt, "Mutual Funds") || !strings.Contains(prompt, `"age":35`) {
			t.Errorf("prompt missing category or snapshot: %s", prompt)
		}
	})
	defer srv.Close()

	advice, err := newTestClient(srv.URL).InvestmentAdvice(context.Background(), domain.ProfileFields{Age: &age}, domain.CategoryMutualFunds)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advice.IsItRightForYou != "Yes, as part of a diversified plan." {
		t.Fatalf("unexpected verdict %q", advice.IsItRightForYou)
	}
	if len(advice.StepByStepStrategy) != 2 || advice.StepByStepStrategy[0] != "Build an emergency fund" {
		t.Fatalf("strategy order not preserved: %v", advice.StepByStepStrategy)
	}
	if len(advice.ProsAndCons.Pros) != 1 || len(advice.ProsAndCons.Cons) != 1 {
		t.Fatalf("unexpected pros/cons %+v", advice.ProsAndCons)
	}
}

func TestClient_InvestmentAdvice_AcceptsFencedAndListVerdict(t *testing.T) {
	text := "```json\n" + strings.Replace(validAdvice,
		`"Is it right for you?": "Yes, as part of a diversified plan."`,
		`"Is it right for you?": ["Yes.", "Keep it under 20% of savings."]`, 1) + "\n```"
	srv := geminiServer(t, http.StatusOK, text, nil)
	defer srv.Close()

	advice, err := newTestClient(srv.URL).InvestmentAdvice(context.Background(), domain.ProfileFields{}, domain.CategoryStocks)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advice.IsItRightForYou != "Yes. Keep it under 20% of savings." {
		t.Fatalf("unexpected verdict %q", advice.IsItRightForYou)
	}
}

func TestClient_InvestmentAdvice_SchemaViolations(t *testing.T) {
	cases := map[string]string{
		"not json":        "Sure! Here is some advice: buy low, sell high.",
		"missing section": strings.Replace(validAdvice, `"Next steps"`, `"Later steps"`, 1),
		"wrong type":      strings.Replace(validAdvice, `"Next steps": ["Open a brokerage account"]`, `"Next steps": 7`, 1),
	}
	for name, text := range cases {
		srv := geminiServer(t, http.StatusOK, text, nil)
		_, err := newTestClient(srv.URL).InvestmentAdvice(context.Background(), domain.ProfileFields{}, domain.CategoryBonds)
		srv.Close()
		if !errors.Is(err, domain.ErrSchemaViolation) {
			t.Errorf("%s: expected ErrSchemaViolation, got %v", name, err)
		}
	}
}

func TestClient_UpstreamFailures(t *testing.T) {
	t.Run("non-2xx", func(t *testing.T) {
		srv := geminiServer(t, http.StatusInternalServerError, "", nil)
		defer srv.Close()
		_, err := newTestClient(srv.URL).InvestmentAdvice(context.Background(), domain.ProfileFields{}, domain.CategoryETFs)
		if !errors.Is(err, domain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	})

	t.Run("no candidates", func(t *testing.T) {
		srv := geminiServer(t, http.StatusOK, "", nil)
		defer srv.Close()
		_, err := newTestClient(srv.URL).GoalCompletion(context.Background(), domain.ProfileFields{})
		if !errors.Is(err, domain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream, got %v", err)
		}
	})

	t.Run("timeout", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(time.Second):
			}
		}))
		defer srv.Close()

		c := NewClient(Config{APIKey: "k", BaseURL: srv.URL, Timeout: 50 * time.Millisecond}, zerolog.Nop())
		_, err := c.InvestmentAdvice(context.Background(), domain.ProfileFields{}, domain.CategoryStocks)
		if !errors.Is(err, domain.ErrUpstream) {
			t.Fatalf("expected ErrUpstream on timeout, got %v", err)
		}
	})
}

func TestClient_GoalCompletion(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, `{"Short term": "40%", "Long Term": 12.5, "Short term amount needed": "1,20,000", "Long term amount needed": 900000}`, nil)
	defer srv.Close()

	got, err := newTestClient(srv.URL).GoalCompletion(context.Background(), domain.ProfileFields{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := domain.GoalAnalysis{ShortTermPercent: 40, LongTermPercent: 12.5, ShortTermAmountNeeded: 120000, LongTermAmountNeeded: 900000}
	if *got != want {
		t.Fatalf("got %+v, want %+v", *got, want)
	}
}

func TestClient_GoalCompletion_OutOfRange(t *testing.T) {
	srv := geminiServer(t, http.StatusOK, `{"Short term": 140, "Long Term": 10, "Short term amount needed": 0, "Long term amount needed": 0}`, nil)
	defer srv.Close()

	if _, err := newTestClient(srv.URL).GoalCompletion(context.Background(), domain.ProfileFields{}); !errors.Is(err, domain.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}
