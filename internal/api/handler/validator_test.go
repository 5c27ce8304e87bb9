package handler

import (
	"encoding/json"
	"errors"
	"testing"

	"github.com/finadvisor/assessment-api/internal/core/domain"
)

func TestValidator_ProfileRules(t *testing.T) {
	v := NewValidator()
	s := func(v string) *string { return &v }
	n := func(v string) *numberInput { x := numberInput(v); return &x }

	cases := []struct {
		name    string
		req     profileRequest
		wantErr bool
	}{
		{"empty is structurally valid", profileRequest{}, false},
		{"adult age", profileRequest{Age: n("18")}, false},
		{"minor", profileRequest{Age: n("17")}, true},
		{"too old", profileRequest{Age: n("121")}, true},
		{"non-numeric age", profileRequest{Age: n("abc")}, true},
		{"formatted amount", profileRequest{CashSavings: s("₹ 1,00,000")}, false},
		{"negative amount", profileRequest{Mortgage: s("-1")}, true},
		{"range bracket", profileRequest{Savings: s("1,00,000-10,00,000")}, false},
		{"open bracket", profileRequest{Savings: s("1,00,00,000 and above")}, false},
		{"bad bracket", profileRequest{Contribution: s("some")}, true},
		{"flag", profileRequest{OutstandingDebts: s("No")}, false},
		{"bad flag", profileRequest{OutstandingDebts: s("no")}, true},
		{"enum", profileRequest{EmploymentStatus: s("Self-Employed")}, false},
		{"bad enum", profileRequest{MaritalStatus: s("Complicated")}, true},
	}

	for _, tc := range cases {
		err := v.Validate(&tc.req)
		if (err != nil) != tc.wantErr {
			t.Errorf("%s: wantErr=%v, got %v", tc.name, tc.wantErr, err)
		}
		if err != nil {
			var vErr *domain.ValidationError
			if !errors.As(err, &vErr) {
				t.Errorf("%s: expected *domain.ValidationError, got %T", tc.name, err)
			}
		}
	}
}

func TestValidator_UsesJSONFieldNames(t *testing.T) {
	v := NewValidator()
	age := numberInput("5")

	err := v.Validate(&profileRequest{Age: &age})
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) || len(vErr.Fields) != 1 {
		t.Fatalf("expected a single field error, got %v", err)
	}
	if vErr.Fields[0].Field != "age" || vErr.Fields[0].Message != "age must be at least 18" {
		t.Fatalf("unexpected field error %+v", vErr.Fields[0])
	}
}

func TestNumberInput_AcceptsNumbersAndNumericStrings(t *testing.T) {
	cases := []struct {
		body    string
		want    int
		wantInt bool
	}{
		{`{"age":30}`, 30, true},
		{`{"age":"30"}`, 30, true},
		{`{"age":" 42 "}`, 42, true},
		{`{"age":"abc"}`, 0, false},
		{`{"age":true}`, 0, false},
		{`{"age":30.5}`, 0, false},
	}
	for _, tc := range cases {
		var req profileRequest
		if err := json.Unmarshal([]byte(tc.body), &req); err != nil {
			t.Fatalf("%s: decode must not fail, got %v", tc.body, err)
		}
		if req.Age == nil {
			t.Fatalf("%s: expected age to be set", tc.body)
		}
		got, ok := req.Age.Int()
		if ok != tc.wantInt || got != tc.want {
			t.Errorf("%s: got (%d, %v), want (%d, %v)", tc.body, got, ok, tc.want, tc.wantInt)
		}
	}
}

func TestNumberInput_NullIsAbsent(t *testing.T) {
	var req profileRequest
	if err := json.Unmarshal([]byte(`{"age":null}`), &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}
	if req.Age != nil {
		t.Fatalf("null must leave age unset")
	}
	if req.toFields().Age != nil {
		t.Fatalf("null must map to an absent field")
	}
}

func TestValidator_NonNumericAgeIsAggregated(t *testing.T) {
	v := NewValidator()
	var req profileRequest
	if err := json.Unmarshal([]byte(`{"age":"abc","maritalStatus":"Single","monthlyIncome":"lots"}`), &req); err != nil {
		t.Fatalf("decode failed: %v", err)
	}

	err := v.Validate(&req)
	var vErr *domain.ValidationError
	if !errors.As(err, &vErr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	msgs := map[string]string{}
	for _, f := range vErr.Fields {
		msgs[f.Field] = f.Message
	}
	if len(msgs) != 3 {
		t.Fatalf("expected three field errors, got %+v", vErr.Fields)
	}
	if msgs["age"] != "age must be a whole number" {
		t.Errorf("unexpected age message %q", msgs["age"])
	}
}
