package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"

	"github.com/finadvisor/assessment-api/internal/core/domain"
	"github.com/finadvisor/assessment-api/internal/core/ports"
)

type stubAdviceService struct {
	adviceFn func(ctx context.Context, req ports.AdviceRequest) (*domain.AdviceResult, error)
	goalFn   func(ctx context.Context, req ports.AdviceRequest) (*domain.GoalAnalysis, error)
}

func (s *stubAdviceService) InvestmentAdvice(ctx context.Context, req ports.AdviceRequest) (*domain.AdviceResult, error) {
	return s.adviceFn(ctx, req)
}

func (s *stubAdviceService) GoalAnalysis(ctx context.Context, req ports.AdviceRequest) (*domain.GoalAnalysis, error) {
	return s.goalFn(ctx, req)
}

func TestAdviceHandler_InvestmentAdvice_Success(t *testing.T) {
	e := newTestEcho()
	stub := &stubAdviceService{
		adviceFn: func(ctx context.Context, req ports.AdviceRequest) (*domain.AdviceResult, error) {
			if req.UserID != "u1" {
				t.Fatalf("unexpected user %s", req.UserID)
			}
			if req.Category != domain.CategoryIndexFunds {
				t.Fatalf("expected normalized category, got %q", req.Category)
			}
			if req.Overrides.RiskTolerance == nil || *req.Overrides.RiskTolerance != "Moderate" {
				t.Fatalf("formData overrides not forwarded: %+v", req.Overrides)
			}
			return &domain.AdviceResult{InvestmentType: req.Category, PersonalizedAdvice: "Go slow."}, nil
		},
	}
	handler := NewAdviceHandler(stub)

	body := `{"investmentPreference":"index funds","formData":{"riskTolerance":"Moderate"}}`
	c, rec := authedContext(e, http.MethodPost, "/api/investment-advice", body, "u1")
	if err := handler.InvestmentAdvice(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["advice"]["investmentType"] != "Index Funds" || resp["advice"]["personalizedAdvice"] != "Go slow." {
		t.Fatalf("unexpected advice %+v", resp["advice"])
	}
}

func TestAdviceHandler_InvestmentAdvice_Validation(t *testing.T) {
	e := newTestEcho()
	stub := &stubAdviceService{
		adviceFn: func(ctx context.Context, req ports.AdviceRequest) (*domain.AdviceResult, error) {
			t.Fatalf("should not be called")
			return nil, nil
		},
	}
	handler := NewAdviceHandler(stub)

	c, _ := authedContext(e, http.MethodPost, "/api/investment-advice", `{"formData":{"age":7}}`, "u1")
	err := handler.InvestmentAdvice(c)

	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || len(vErr.Fields) != 2 {
		t.Fatalf("expected investmentPreference and age errors, got %v", err)
	}
}

func TestAdviceHandler_InvestmentAdvice_PropagatesServiceErrors(t *testing.T) {
	e := newTestEcho()
	stub := &stubAdviceService{
		adviceFn: func(ctx context.Context, req ports.AdviceRequest) (*domain.AdviceResult, error) {
			return nil, domain.ErrQuotaExceeded
		},
	}
	handler := NewAdviceHandler(stub)

	c, _ := authedContext(e, http.MethodPost, "/api/investment-advice", `{"investmentPreference":"Stocks"}`, "u1")
	if err := handler.InvestmentAdvice(c); !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
}

func TestAdviceHandler_GoalAnalysis_EmptyBody(t *testing.T) {
	e := newTestEcho()
	stub := &stubAdviceService{
		goalFn: func(ctx context.Context, req ports.AdviceRequest) (*domain.GoalAnalysis, error) {
			if !req.Overrides.IsEmpty() {
				t.Fatalf("expected no overrides")
			}
			return &domain.GoalAnalysis{ShortTermPercent: 40, LongTermPercent: 10}, nil
		},
	}
	handler := NewAdviceHandler(stub)

	c, rec := authedContext(e, http.MethodPost, "/api/goal-analysis", "", "u1")
	if err := handler.GoalAnalysis(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	var resp map[string]map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["analysis"]["shortTermPercent"] != float64(40) {
		t.Fatalf("unexpected analysis %+v", resp["analysis"])
	}
}
