package reproduction

import (
	"testing"
	"time"
)

func TestIsNegativeOutcome_Vocabulary(t *testing.T) {
	cases := []struct {
		outcome string
		want    bool
	}{
		{"Negativa", true},
		{"VACÍA", true},
		{"vazia", true},
		{"empty", true},
		{"no", true},
		{"no preñada", true},
		{"normal", false}, // "no" solo como palabra completa
		{"Positiva", false},
		{"preñada", false},
		{"", false},
		{"   ", false},
	}

	for _, c := range cases {
		if got := IsNegativeOutcome(c.outcome); got != c.want {
			t.Errorf("IsNegativeOutcome(%q) = %v, want %v", c.outcome, got, c.want)
		}
	}
}

func TestIsPositiveOutcome_Vocabulary(t *testing.T) {
	cases := []struct {
		outcome string
		want    bool
	}{
		{"Positiva", true},
		{"PREÑADA", true},
		{"prenha", true},
		{"pregnant", true},
		{"negativa", false},
		{"no preñada", false}, // negativo gana sobre la palabra positiva
		{"", false},
		{"dudosa", false},
	}

	for _, c := range cases {
		if got := IsPositiveOutcome(c.outcome); got != c.want {
			t.Errorf("IsPositiveOutcome(%q) = %v, want %v", c.outcome, got, c.want)
		}
	}
}

func TestDiagnosisIndex_TokenLookup(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)

	ix := BuildDiagnosisIndex([]DiagnosisRow{
		{BreedCode: "RPT", Number: "0123", Date: date, Outcome: "Vacía"},
		{Tattoo: "abc9", Date: date, Outcome: "positiva"},
	}, nil)

	// El tacto se cargó como RPT/0123; la factura trae el tatuaje.
	if !ix.HasDiagnosis(NormalizeKey("", "", "RPT0123")) {
		t.Fatalf("tattoo rpt0123 should hit the composite token")
	}
	if !ix.IsNegative(NormalizeKey("RPT", "123", "")) {
		t.Fatalf("RPT/123 should be negative via the no-zeros token")
	}

	if !ix.HasDiagnosis(NormalizeKey("", "", "ABC9")) {
		t.Fatalf("abc9 should be diagnosed")
	}
	if ix.IsNegative(NormalizeKey("", "", "ABC9")) {
		t.Fatalf("abc9 is positive, not negative")
	}

	if ix.HasDiagnosis(NormalizeKey("RPT", "999", "")) {
		t.Fatalf("undiagnosed animal must not hit")
	}
}

func TestDiagnosisIndex_TransfersWithOutcomeCount(t *testing.T) {
	ix := BuildDiagnosisIndex(nil, []TransferRow{
		{ID: "t1", BreedCode: "GIR", Number: "10", Outcome: "negativa"},
		{ID: "t2", BreedCode: "GIR", Number: "20", Outcome: ""}, // sin resultado, no indexa
	})

	if !ix.IsNegative(NormalizeKey("GIR", "10", "")) {
		t.Fatalf("transfer outcome should feed the negative set")
	}
	if ix.HasDiagnosis(NormalizeKey("GIR", "20", "")) {
		t.Fatalf("transfer without outcome must not count as diagnosis")
	}
}
