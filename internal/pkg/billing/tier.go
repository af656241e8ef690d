package billing

import (
	"strings"

	"github.com/mindspark-labs/localpages/app/models"
	"github.com/mindspark-labs/localpages/internal/pkg/env"
)

// TierConfig describes one subscription plan level.
type TierConfig struct {
	Name        string
	Description string
	PriceCents  int64
}

var tierConfigs = map[string]TierConfig{
	models.TierBasic: {
		Name:        "Basic",
		Description: "Essential listing visibility",
		PriceCents:  49700,
	},
	models.TierFeatured: {
		Name:        "Featured",
		Description: "Enhanced visibility & promotion",
		PriceCents:  99700,
	},
	models.TierPremium: {
		Name:        "Premium",
		Description: "Maximum exposure & leads",
		PriceCents:  199700,
	},
	models.TierElite: {
		Name:        "Elite",
		Description: "Full-service promotion package",
		PriceCents:  499700,
	},
}

// NormalizeTier maps arbitrary input onto a recognized tier name, or ""
// when the tier is unknown.
func NormalizeTier(tier string) string {
	t := strings.ToUpper(strings.TrimSpace(tier))
	if _, ok := tierConfigs[t]; ok {
		return t
	}
	return ""
}

// IsValidTier reports whether the input names a recognized tier.
func IsValidTier(tier string) bool {
	return NormalizeTier(tier) != ""
}

// GetTierConfig returns the plan configuration for a tier.
func GetTierConfig(tier string) (TierConfig, bool) {
	cfg, ok := tierConfigs[NormalizeTier(tier)]
	return cfg, ok
}

// StripePriceID resolves the provider price reference for a tier from the
// environment (STRIPE_PRICE_BASIC etc.), falling back to a stable default
// so tests and dev environments work unconfigured.
func StripePriceID(tier string) string {
	t := NormalizeTier(tier)
	if t == "" {
		return ""
	}
	return env.GetEnv("STRIPE_PRICE_"+t, "price_"+strings.ToLower(t))
}
