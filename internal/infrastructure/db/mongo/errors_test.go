package mongo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/x/mongo/driver/topology"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

func TestWrapStoreError(t *testing.T) {
	cases := []struct {
		name        string
		err         error
		unavailable bool
	}{
		{"server selection", topology.ServerSelectionError{Wrapped: errors.New("no reachable servers")}, true},
		{"wrapped server selection", fmt.Errorf("find: %w", topology.ServerSelectionError{Wrapped: errors.New("x")}), true},
		{"network label", mongo.CommandError{Code: 6, Labels: []string{"NetworkError"}}, true},
		{"deadline", context.DeadlineExceeded, true},
		{"client disconnected", mongo.ErrClientDisconnected, true},
		{"validation failure", mongo.CommandError{Code: 121, Name: "DocumentValidationFailure"}, false},
		{"plain", errors.New("boom"), false},
	}

	for _, tc := range cases {
		got := wrapStoreError("upsert profile", tc.err)
		if errors.Is(got, domain.ErrStoreUnavailable) != tc.unavailable {
			t.Errorf("%s: unavailable=%v, want %v (%v)", tc.name, !tc.unavailable, tc.unavailable, got)
		}
		if !strings.HasPrefix(got.Error(), "upsert profile: ") || !strings.Contains(got.Error(), tc.err.Error()) {
			t.Errorf("%s: expected op and cause in %q", tc.name, got)
		}
	}
}
