package service

import (
	"context"
	"errors"
	"testing"

	"github.com/rs/zerolog"

	"github.com/finadvisor/assessment-api/internal/core/domain"
	"github.com/finadvisor/assessment-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// Stubs
// ---------------------------------------------------------------------------

type stubGateway struct {
	advice   *domain.AdviceResult
	analysis *domain.GoalAnalysis
	err      error

	calls        int
	lastSnapshot domain.ProfileFields
	lastCategory domain.InvestmentCategory
}

func (g *stubGateway) InvestmentAdvice(_ context.Context, snapshot domain.ProfileFields, category domain.InvestmentCategory) (*domain.AdviceResult, error) {
	g.calls++
	g.lastSnapshot = snapshot
	g.lastCategory = category
	if g.err != nil {
		return nil, g.err
	}
	out := *g.advice
	return &out, nil
}

func (g *stubGateway) GoalCompletion(_ context.Context, snapshot domain.ProfileFields) (*domain.GoalAnalysis, error) {
	g.calls++
	g.lastSnapshot = snapshot
	if g.err != nil {
		return nil, g.err
	}
	out := *g.analysis
	return &out, nil
}

type stubQuota struct {
	allow bool
	err   error
	calls int
}

func (q *stubQuota) Allow(context.Context, string) (bool, error) {
	q.calls++
	return q.allow, q.err
}

func sampleAdvice() *domain.AdviceResult {
	return &domain.AdviceResult{
		PersonalizedAdvice:         "Start small.",
		UnderstandingYourSituation: []string{"You have savings."},
		ProsAndCons:                domain.ProsAndCons{Pros: []string{"growth"}, Cons: []string{"volatility"}},
		IsItRightForYou:            "Yes, in moderation.",
		StepByStepStrategy:         []string{"Open an account"},
		NextSteps:                  []string{"Research brokers"},
		ImportantConsiderations:    []string{"Fees"},
	}
}

func TestAdviceService_InvestmentAdvice_UsesStoredProfileAndOverrides(t *testing.T) {
	repo := newStubProfileRepo()
	_, _ = repo.Upsert(context.Background(), "u1", domain.ProfileFields{Age: intPtr(30), RiskTolerance: strPtr("Conservative")})
	gw := &stubGateway{advice: sampleAdvice()}
	svc := NewAdviceService(repo, gw, &stubQuota{allow: true}, zerolog.Nop())

	advice, err := svc.InvestmentAdvice(context.Background(), ports.AdviceRequest{
		UserID:    "u1",
		Category:  domain.CategoryStocks,
		Overrides: domain.ProfileFields{RiskTolerance: strPtr("Aggressive")},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if advice.InvestmentType != domain.CategoryStocks {
		t.Fatalf("expected investment type to be echoed, got %q", advice.InvestmentType)
	}
	if *gw.lastSnapshot.Age != 30 || *gw.lastSnapshot.RiskTolerance != "Aggressive" {
		t.Fatalf("snapshot not merged as expected: %+v", gw.lastSnapshot)
	}

	stored, _ := repo.FindByUserID(context.Background(), "u1")
	if *stored.RiskTolerance != "Conservative" {
		t.Fatalf("overrides must never be persisted")
	}
}

func TestAdviceService_InvestmentAdvice_DegradedWithoutProfile(t *testing.T) {
	gw := &stubGateway{advice: sampleAdvice()}
	svc := NewAdviceService(newStubProfileRepo(), gw, nil, zerolog.Nop())

	advice, err := svc.InvestmentAdvice(context.Background(), ports.AdviceRequest{UserID: "new", Category: domain.CategoryBonds})
	if err != nil {
		t.Fatalf("degraded mode must still succeed, got %v", err)
	}
	if advice.PersonalizedAdvice == "" {
		t.Fatalf("expected advice body")
	}
	if !gw.lastSnapshot.IsEmpty() {
		t.Fatalf("expected empty snapshot, got %+v", gw.lastSnapshot)
	}
}

func TestAdviceService_InvestmentAdvice_RequiresCategory(t *testing.T) {
	gw := &stubGateway{advice: sampleAdvice()}
	svc := NewAdviceService(newStubProfileRepo(), gw, nil, zerolog.Nop())

	_, err := svc.InvestmentAdvice(context.Background(), ports.AdviceRequest{UserID: "u1"})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called")
	}
}

func TestAdviceService_GatewayErrorsPropagate(t *testing.T) {
	for _, gwErr := range []error{domain.ErrUpstream, domain.ErrSchemaViolation} {
		gw := &stubGateway{err: gwErr}
		svc := NewAdviceService(newStubProfileRepo(), gw, nil, zerolog.Nop())

		_, err := svc.InvestmentAdvice(context.Background(), ports.AdviceRequest{UserID: "u1", Category: domain.CategoryETFs})
		if !errors.Is(err, gwErr) {
			t.Fatalf("expected %v, got %v", gwErr, err)
		}
		if gw.calls != 1 {
			t.Fatalf("generation must not be retried, got %d calls", gw.calls)
		}
	}
}

func TestAdviceService_Quota(t *testing.T) {
	gw := &stubGateway{advice: sampleAdvice()}
	quota := &stubQuota{allow: false}
	svc := NewAdviceService(newStubProfileRepo(), gw, quota, zerolog.Nop())

	_, err := svc.InvestmentAdvice(context.Background(), ports.AdviceRequest{UserID: "u1", Category: domain.CategoryStocks})
	if !errors.Is(err, domain.ErrQuotaExceeded) {
		t.Fatalf("expected ErrQuotaExceeded, got %v", err)
	}
	if gw.calls != 0 {
		t.Fatalf("gateway must not be called once quota is exhausted")
	}

	quota.err = errors.New("redis down")
	if _, err := svc.InvestmentAdvice(context.Background(), ports.AdviceRequest{UserID: "u1", Category: domain.CategoryStocks}); err != nil {
		t.Fatalf("quota store errors must fail open, got %v", err)
	}
}

func TestAdviceService_GoalAnalysis_DegenerateResultRejected(t *testing.T) {
	repo := newStubProfileRepo()
	_, _ = repo.Upsert(context.Background(), "u1", domain.ProfileFields{CashSavings: strPtr("50,000")})
	gw := &stubGateway{analysis: &domain.GoalAnalysis{}}
	svc := NewAdviceService(repo, gw, nil, zerolog.Nop())

	if _, err := svc.GoalAnalysis(context.Background(), ports.AdviceRequest{UserID: "u1"}); !errors.Is(err, domain.ErrSchemaViolation) {
		t.Fatalf("expected ErrSchemaViolation, got %v", err)
	}
}

func TestAdviceService_GoalAnalysis_ZeroAllowedWithoutSavings(t *testing.T) {
	gw := &stubGateway{analysis: &domain.GoalAnalysis{ShortTermAmountNeeded: 1000}}
	svc := NewAdviceService(newStubProfileRepo(), gw, nil, zerolog.Nop())

	got, err := svc.GoalAnalysis(context.Background(), ports.AdviceRequest{UserID: "u1"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got.ShortTermAmountNeeded != 1000 {
		t.Fatalf("unexpected analysis %+v", got)
	}
}

func TestAdviceService_RequiresIdentity(t *testing.T) {
	svc := NewAdviceService(newStubProfileRepo(), &stubGateway{}, nil, zerolog.Nop())
	if _, err := svc.GoalAnalysis(context.Background(), ports.AdviceRequest{}); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}
