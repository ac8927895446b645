package policy

import (
	"testing"
	"time"
)

func intPtr(v int) *int    { return &v }
func boolPtr(v bool) *bool { return &v }

// TestResolve_ValidPolicy tests that a fully specified policy resolves.
func TestResolve_ValidPolicy(t *testing.T) {
	raw := RawPolicy{
		PolicyName:    "user-events",
		TableName:     "events",
		DateColumn:    "created_at",
		RetentionDays: intPtr(30),
	}

	valid, rejection := Resolve(raw)
	if rejection != nil {
		t.Fatalf("Resolve() rejected valid policy: %v", rejection)
	}

	if valid.PolicyName != "user-events" {
		t.Errorf("PolicyName = %q, want %q", valid.PolicyName, "user-events")
	}
	if valid.TableName != "events" {
		t.Errorf("TableName = %q, want %q", valid.TableName, "events")
	}
	if valid.DateColumn != "created_at" {
		t.Errorf("DateColumn = %q, want %q", valid.DateColumn, "created_at")
	}
	if valid.RetentionDays != 30 {
		t.Errorf("RetentionDays = %d, want 30", valid.RetentionDays)
	}
}

// TestResolve_MissingFields tests that each missing required field is
// reported, and that the first missing field in declaration order wins.
func TestResolve_MissingFields(t *testing.T) {
	tests := []struct {
		name      string
		raw       RawPolicy
		wantField string
	}{
		{
			name: "missing policy_name",
			raw: RawPolicy{
				TableName:     "events",
				DateColumn:    "created_at",
				RetentionDays: intPtr(30),
			},
			wantField: "policy_name",
		},
		{
			name: "missing table_name",
			raw: RawPolicy{
				PolicyName:    "user-events",
				DateColumn:    "created_at",
				RetentionDays: intPtr(30),
			},
			wantField: "table_name",
		},
		{
			name: "missing retention_days",
			raw: RawPolicy{
				PolicyName: "user-events",
				TableName:  "events",
				DateColumn: "created_at",
			},
			wantField: "retention_days",
		},
		{
			name: "missing date_column",
			raw: RawPolicy{
				PolicyName:    "user-events",
				TableName:     "events",
				RetentionDays: intPtr(30),
			},
			wantField: "date_column",
		},
		{
			name:      "everything missing reports policy_name first",
			raw:       RawPolicy{},
			wantField: "policy_name",
		},
		{
			name: "table_name reported before date_column",
			raw: RawPolicy{
				PolicyName:    "user-events",
				RetentionDays: intPtr(30),
			},
			wantField: "table_name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, rejection := Resolve(tt.raw)
			if rejection == nil {
				t.Fatal("Resolve() accepted incomplete policy")
			}
			if rejection.Reason != RejectMissingField {
				t.Fatalf("Reason = %q, want %q", rejection.Reason, RejectMissingField)
			}
			if rejection.Field != tt.wantField {
				t.Errorf("Field = %q, want %q", rejection.Field, tt.wantField)
			}
		})
	}
}

// TestResolve_NegativeRetentionDays tests that negative windows are rejected
// wholesale rather than clamped.
func TestResolve_NegativeRetentionDays(t *testing.T) {
	raw := RawPolicy{
		PolicyName:    "user-events",
		TableName:     "events",
		DateColumn:    "created_at",
		RetentionDays: intPtr(-1),
	}

	_, rejection := Resolve(raw)
	if rejection == nil {
		t.Fatal("Resolve() accepted negative retention_days")
	}
	if rejection.Reason != RejectNegativeRetention {
		t.Errorf("Reason = %q, want %q", rejection.Reason, RejectNegativeRetention)
	}
	if rejection.PolicyName != "user-events" {
		t.Errorf("PolicyName = %q, want %q", rejection.PolicyName, "user-events")
	}
}

// TestResolve_ZeroRetentionDays tests that a zero-day window is valid: it
// means everything strictly older than now is eligible.
func TestResolve_ZeroRetentionDays(t *testing.T) {
	raw := RawPolicy{
		PolicyName:    "session-cache",
		TableName:     "sessions",
		DateColumn:    "last_seen",
		RetentionDays: intPtr(0),
	}

	valid, rejection := Resolve(raw)
	if rejection != nil {
		t.Fatalf("Resolve() rejected zero retention_days: %v", rejection)
	}
	if valid.RetentionDays != 0 {
		t.Errorf("RetentionDays = %d, want 0", valid.RetentionDays)
	}
}

// TestIsEnabled tests the enabled default.
func TestIsEnabled(t *testing.T) {
	tests := []struct {
		name    string
		enabled *bool
		want    bool
	}{
		{"unset defaults to enabled", nil, true},
		{"explicit true", boolPtr(true), true},
		{"explicit false", boolPtr(false), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := RawPolicy{Enabled: tt.enabled}
			if got := p.IsEnabled(); got != tt.want {
				t.Errorf("IsEnabled() = %v, want %v", got, tt.want)
			}
		})
	}
}

// TestCutoff tests cutoff arithmetic against known dates.
func TestCutoff(t *testing.T) {
	tests := []struct {
		name string
		now  time.Time
		days int
		want time.Time
	}{
		{
			name: "30 days back over a month boundary",
			now:  time.Date(2024, 1, 31, 12, 0, 0, 0, time.UTC),
			days: 30,
			want: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		},
		{
			name: "zero days is now",
			now:  time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC),
			days: 0,
			want: time.Date(2024, 6, 15, 8, 30, 0, 0, time.UTC),
		},
		{
			name: "leap day handling",
			now:  time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC),
			days: 1,
			want: time.Date(2024, 2, 29, 0, 0, 0, 0, time.UTC),
		},
		{
			name: "non-UTC clock is normalized",
			now:  time.Date(2024, 1, 31, 12, 0, 0, 0, time.FixedZone("CET", 3600)),
			days: 30,
			want: time.Date(2024, 1, 1, 11, 0, 0, 0, time.UTC),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ValidPolicy{RetentionDays: tt.days}
			got := p.Cutoff(tt.now)
			if !got.Equal(tt.want) {
				t.Errorf("Cutoff() = %v, want %v", got, tt.want)
			}
			if got.Location() != time.UTC {
				t.Errorf("Cutoff() location = %v, want UTC", got.Location())
			}
		})
	}
}

// TestRejectionString tests the human-readable rejection messages.
func TestRejectionString(t *testing.T) {
	missing := &Rejection{Reason: RejectMissingField, Field: "table_name"}
	if got := missing.String(); got != `missing required field "table_name"` {
		t.Errorf("String() = %q", got)
	}

	negative := &Rejection{Reason: RejectNegativeRetention}
	if got := negative.String(); got != "retention_days must be non-negative" {
		t.Errorf("String() = %q", got)
	}
}
