package partnership

import (
	"encoding/json"
	"testing"
)

func TestMoney_String(t *testing.T) {
	tests := []struct {
		m        Money
		currency string
		str      string
		format   string
	}{
		{M(1234.5), "USD", "1234.50", "$1,234.50"},
		{M(0), "USD", "0.00", "$0.00"},
		{M(-12.345), "EUR", "-12.35", "-€12.35"},
		{M(1000000), "JPY", "1000000.00", "¥1,000,000"},
	}
	for _, tt := range tests {
		if got := tt.m.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
		if got := tt.m.Format(tt.currency); got != tt.format {
			t.Errorf("Format(%q) = %q, want %q", tt.currency, got, tt.format)
		}
	}
}

func TestMoney_JSON(t *testing.T) {
	data, err := json.Marshal(struct{ A Money }{M(1).Div(newDecimal(3))})
	if err != nil {
		t.Fatalf("json.Marshal() error = %v", err)
	}
	if got, want := string(data), `{"A":0.33}`; got != want {
		t.Errorf("json.Marshal() = %s, want %s", got, want)
	}

	var v struct{ A Money }
	if err := json.Unmarshal([]byte(`{"A":"12.5"}`), &v); err != nil {
		t.Fatalf("json.Unmarshal() error = %v", err)
	}
	if !v.A.Equal(M(12.5)) {
		t.Errorf("json.Unmarshal() = %v, want 12.5", v.A)
	}
}

func TestPercent_String(t *testing.T) {
	tests := []struct {
		p   Percent
		str string
	}{
		{Percent(0.08), "8.00%"},
		{Percent(-0.1234), "-12.34%"},
		{WholePercent(89.4), "89.40%"},
		{WholePercent(100), "100.00%"},
	}
	for _, tt := range tests {
		if got := tt.p.String(); got != tt.str {
			t.Errorf("String() = %q, want %q", got, tt.str)
		}
	}
}
