package billing

import "testing"

func TestNormalizeTier(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"BASIC", "BASIC"},
		{"basic", "BASIC"},
		{"  Featured ", "FEATURED"},
		{"premium", "PREMIUM"},
		{"ELITE", "ELITE"},
		{"GOLD", ""},
		{"", ""},
	}
	for _, tt := range tests {
		if got := NormalizeTier(tt.in); got != tt.want {
			t.Errorf("NormalizeTier(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestGetTierConfigPrices(t *testing.T) {
	prices := map[string]int64{
		"BASIC":    49700,
		"FEATURED": 99700,
		"PREMIUM":  199700,
		"ELITE":    499700,
	}
	for tier, want := range prices {
		cfg, ok := GetTierConfig(tier)
		if !ok {
			t.Fatalf("GetTierConfig(%q): not found", tier)
		}
		if cfg.PriceCents != want {
			t.Errorf("GetTierConfig(%q).PriceCents = %d, want %d", tier, cfg.PriceCents, want)
		}
	}
	if _, ok := GetTierConfig("UNKNOWN"); ok {
		t.Error("GetTierConfig(UNKNOWN) should not resolve")
	}
}

func TestStripePriceID(t *testing.T) {
	t.Setenv("STRIPE_PRICE_BASIC", "")
	if got := StripePriceID("basic"); got != "price_basic" {
		t.Errorf("StripePriceID(basic) = %q, want price_basic", got)
	}
	t.Setenv("STRIPE_PRICE_ELITE", "price_12345")
	if got := StripePriceID("ELITE"); got != "price_12345" {
		t.Errorf("StripePriceID(ELITE) = %q, want price_12345", got)
	}
	if got := StripePriceID("bogus"); got != "" {
		t.Errorf("StripePriceID(bogus) = %q, want empty", got)
	}
}
