package report

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
)

func TestValidateAmount(t *testing.T) {
	cases := []struct {
		in       string
		ok       bool
		expected string
	}{
		{"1000", true, "1000"},
		{"1234.50", true, "1234.5"},
		{"0", true, "0"},
		{"  42 ", true, "42"},
		{"0.01", true, "0.01"},
		{"-5", false, ""},
		{"-0.01", false, ""},
		{"abc", false, ""},
		{"", false, ""},
		{"12,50", false, ""},
	}
	for _, tc := range cases {
		got, err := ValidateAmount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ValidateAmount(%q) unexpected error: %v", tc.in, err)
			}
			if got.String() != tc.expected {
				t.Fatalf("ValidateAmount(%q) expected %s, got %s", tc.in, tc.expected, got)
			}
			continue
		}
		if err == nil {
			t.Fatalf("ValidateAmount(%q) expected error, got %s", tc.in, got)
		}
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("ValidateAmount(%q) expected *ValidationError, got %T", tc.in, err)
		}
	}
}

func TestValidateCount(t *testing.T) {
	cases := []struct {
		in       string
		ok       bool
		expected int
	}{
		{"0", true, 0},
		{"17", true, 17},
		{" 3 ", true, 3},
		{"-1", false, 0},
		{"2.5", false, 0},
		{"many", false, 0},
		{"", false, 0},
	}
	for _, tc := range cases {
		got, err := ValidateCount(tc.in)
		if tc.ok {
			if err != nil {
				t.Fatalf("ValidateCount(%q) unexpected error: %v", tc.in, err)
			}
			if got != tc.expected {
				t.Fatalf("ValidateCount(%q) expected %d, got %d", tc.in, tc.expected, got)
			}
			continue
		}
		if err == nil {
			t.Fatalf("ValidateCount(%q) expected error, got %d", tc.in, got)
		}
	}
}

func fullDraft(totalIncome, cash, cashless string, clients int) *Draft {
	d := &Draft{}
	d.SetAmount(FieldTotalIncome, decimal.RequireFromString(totalIncome))
	d.SetAmount(FieldCash, decimal.RequireFromString(cash))
	d.SetAmount(FieldCashless, decimal.RequireFromString(cashless))
	d.SetAmount(FieldCashBalance, decimal.RequireFromString("250"))
	d.SetCount(clients)
	d.SetAmount(FieldCashToSuppliers, decimal.RequireFromString("100"))
	d.SetAmount(FieldCashlessToSuppliers, decimal.RequireFromString("50"))
	return d
}

func TestValidateDraft_Balanced(t *testing.T) {
	if err := ValidateDraft(fullDraft("1000", "600", "400", 12)); err != nil {
		t.Fatalf("balanced draft rejected: %v", err)
	}
	// Off by exactly the tolerance still passes.
	if err := ValidateDraft(fullDraft("1000.01", "600", "400", 12)); err != nil {
		t.Fatalf("draft within tolerance rejected: %v", err)
	}
}

func TestValidateDraft_Mismatch(t *testing.T) {
	err := ValidateDraft(fullDraft("1000", "600", "300", 12))
	if err == nil {
		t.Fatal("mismatched totals accepted")
	}
	if !strings.Contains(err.Error(), "300") {
		t.Fatalf("error should name the mismatching cashless value, got %q", err.Error())
	}
	if !strings.Contains(err.Error(), "600") || !strings.Contains(err.Error(), "1000") {
		t.Fatalf("error should name all three quantities, got %q", err.Error())
	}
}

func TestValidateDraft_MissingField(t *testing.T) {
	d := fullDraft("1000", "600", "400", 12)
	d.CashBalance = nil
	err := ValidateDraft(d)
	if err == nil {
		t.Fatal("incomplete draft accepted")
	}
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected *ValidationError, got %T", err)
	}
	if verr.Field != FieldCashBalance {
		t.Fatalf("expected missing field %q, got %q", FieldCashBalance, verr.Field)
	}
}

func TestValidateDraft_NegativeAmount(t *testing.T) {
	d := fullDraft("1000", "600", "400", 12)
	d.SetAmount(FieldCashBalance, decimal.RequireFromString("-250"))
	if err := ValidateDraft(d); err == nil {
		t.Fatal("negative cash balance accepted")
	}
}

func unset(d *Draft, field Field) {
	switch field {
	case FieldTotalIncome:
		d.TotalIncome = nil
	case FieldCash:
		d.Cash = nil
	case FieldCashless:
		d.Cashless = nil
	case FieldCashBalance:
		d.CashBalance = nil
	case FieldClientsCount:
		d.ClientsCount = nil
	case FieldCashToSuppliers:
		d.CashToSuppliers = nil
	case FieldCashlessToSuppliers:
		d.CashlessToSuppliers = nil
	}
}

func TestValidateDraft_AllFieldsRequired(t *testing.T) {
	for _, field := range Order {
		d := fullDraft("1000", "600", "400", 12)
		unset(d, field)
		if err := ValidateDraft(d); err == nil {
			t.Fatalf("draft without %q accepted", field)
		}
	}
}
