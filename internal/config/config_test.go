package config

import (
	"testing"
	"time"
)

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	if cfg.Exam.TrendMaxEntries != 50 {
		t.Errorf("TrendMaxEntries = %d, want 50", cfg.Exam.TrendMaxEntries)
	}
	if cfg.Exam.AnalyticsRetries != 3 {
		t.Errorf("AnalyticsRetries = %d, want 3", cfg.Exam.AnalyticsRetries)
	}
	if cfg.Exam.WeakAreaBelow != 50 || cfg.Exam.StrongAreaAtLeast != 75 {
		t.Errorf("thresholds = %v/%v, want 50/75", cfg.Exam.WeakAreaBelow, cfg.Exam.StrongAreaAtLeast)
	}
	if cfg.Exam.CatalogCacheTTL != 24*time.Hour {
		t.Errorf("CatalogCacheTTL = %v, want 24h", cfg.Exam.CatalogCacheTTL)
	}
	if cfg.Affiliate.CodeLength != 8 {
		t.Errorf("CodeLength = %d, want 8", cfg.Affiliate.CodeLength)
	}
	if cfg.Affiliate.AttributionWindow != 30*24*time.Hour {
		t.Errorf("AttributionWindow = %v, want 720h", cfg.Affiliate.AttributionWindow)
	}
	if cfg.Razorpay.PlanDurationDays != 365 {
		t.Errorf("PlanDurationDays = %d, want 365", cfg.Razorpay.PlanDurationDays)
	}
	if cfg.OTP.CountryCode != "91" {
		t.Errorf("CountryCode = %q, want 91", cfg.OTP.CountryCode)
	}
}

func TestApplyDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Exam.TrendMaxEntries = 10
	cfg.Exam.WeakAreaBelow = 40
	cfg.Affiliate.CodeLength = 12

	applyDefaults(cfg)

	if cfg.Exam.TrendMaxEntries != 10 {
		t.Errorf("TrendMaxEntries = %d, want 10", cfg.Exam.TrendMaxEntries)
	}
	if cfg.Exam.WeakAreaBelow != 40 {
		t.Errorf("WeakAreaBelow = %v, want 40", cfg.Exam.WeakAreaBelow)
	}
	if cfg.Affiliate.CodeLength != 12 {
		t.Errorf("CodeLength = %d, want 12", cfg.Affiliate.CodeLength)
	}
}
