package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestAccountMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewAccountMetrics(reg)

	metrics.IncRegistration("combined", "success")
	metrics.IncLogin("failure")
	metrics.IncOnboardingCompleted()
	metrics.ObserveRegistrationDuration("combined", 120*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "account_registrations_total", "mode", "combined"); err != nil {
		t.Fatalf("fetch registrations: %v", err)
	} else if got != 1 {
		t.Fatalf("expected registrations=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "account_logins_total", "outcome", "failure"); err != nil {
		t.Fatalf("fetch logins: %v", err)
	} else if got != 1 {
		t.Fatalf("expected logins=1, got %f", got)
	}

	mf := findMetricFamily(mfs, "profile_onboarding_completed_total")
	if mf == nil || len(mf.GetMetric()) == 0 {
		t.Fatal("onboarding counter not exported")
	}
	if got := mf.GetMetric()[0].GetCounter().GetValue(); got != 1 {
		t.Fatalf("expected onboarding=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "account_registration_duration_seconds", "mode", "combined"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestAccountMetricsNilReceiverSafe(t *testing.T) {
	var metrics *AccountMetrics
	metrics.IncRegistration("plain", "success")
	metrics.IncLogin("success")
	metrics.IncOnboardingCompleted()
	metrics.ObserveRegistrationDuration("plain", time.Second)
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
