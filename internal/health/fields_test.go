package health

import "testing"

func TestKindOf(t *testing.T) {
	tests := []struct {
		field string
		want  Kind
	}{
		{"recovery score %", KindRecovery},
		{"Day Strain", KindStrain},
		{"heart rate variability (ms)", KindHRV},
		{"sleep debt (min)", KindSleepDebt},
		{"sleep need (min)", KindSleepNeed},
		{"asleep duration (min)", KindSleepDuration},
		{"skin temp (celsius)", KindCustom},
	}
	for _, tt := range tests {
		if got := KindOf(tt.field); got != tt.want {
			t.Errorf("KindOf(%q) = %q, want %q", tt.field, got, tt.want)
		}
	}
}

func TestIsDurationField(t *testing.T) {
	tests := []struct {
		field string
		want  bool
	}{
		{"sleep debt (min)", true},
		{"asleep duration (min)", true},
		{"rem sleep duration (min)", true},
		// Percentage fields are scores even when named like sleep fields.
		{"sleep performance %", false},
		{"sleep efficiency %", false},
		{"recovery score %", false},
		{"day strain", false},
	}
	for _, tt := range tests {
		if got := IsDurationField(tt.field); got != tt.want {
			t.Errorf("IsDurationField(%q) = %v, want %v", tt.field, got, tt.want)
		}
	}
}

func TestIsMetadataField(t *testing.T) {
	for _, field := range []string{FieldDate, "_source_file", "cycle start time"} {
		if !IsMetadataField(field) {
			t.Errorf("IsMetadataField(%q) = false, want true", field)
		}
	}
	if IsMetadataField(FieldRecovery) {
		t.Error("recovery should not be metadata")
	}
}
