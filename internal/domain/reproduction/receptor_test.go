package reproduction

import (
	"testing"
	"time"
)

func emptyIndex() *DiagnosisIndex {
	return BuildDiagnosisIndex(nil, nil)
}

func TestReceptorEvents_ArrivalOnly(t *testing.T) {
	arrival := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	out := receptorEvents([]ReceptorRow{
		{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: arrival, Tattoo: "RPT1234"},
	}, emptyIndex())

	// Sin TE: llegada + tacto programado, sin parto previsto.
	if len(out) != 2 {
		t.Fatalf("expected 2 events, got %d: %#v", len(out), out)
	}

	if out[0].Type != EventTypeReceptorArrival || !out[0].Date.Equal(arrival) {
		t.Fatalf("arrival event wrong: %#v", out[0])
	}
	if out[0].Status != EventStatusDone {
		t.Fatalf("arrival is a fact, expected done, got %s", out[0].Status)
	}

	wantDG := time.Date(2024, 3, 21, 0, 0, 0, 0, time.UTC)
	if out[1].Type != EventTypeDiagnosisDue || !out[1].Date.Equal(wantDG) {
		t.Fatalf("expected DG at %s, got %#v", wantDG, out[1])
	}
	if out[1].Status != EventStatusScheduled {
		t.Fatalf("DG is a forecast, expected scheduled, got %s", out[1].Status)
	}
}

func TestReceptorEvents_WithTransfer_BirthForecast(t *testing.T) {
	arrival := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transfer := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	out := receptorEvents([]ReceptorRow{
		{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: arrival, TransferDate: transfer, Tattoo: "RPT1234"},
	}, emptyIndex())

	if len(out) != 3 {
		t.Fatalf("expected 3 events, got %d", len(out))
	}

	wantBirth := transfer.AddDate(0, MonthsGestationInvoice, 0)
	birth := out[2]
	if birth.Type != EventTypePredictedBirth || !birth.Date.Equal(wantBirth) {
		t.Fatalf("expected birth at %s, got %#v", wantBirth, birth)
	}
}

func TestReceptorEvents_DiagnosisSuppressesDG(t *testing.T) {
	arrival := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transfer := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	// El tacto se hizo y dio positivo: el recordatorio de DG sobra, el
	// parto previsto se mantiene.
	ix := BuildDiagnosisIndex([]DiagnosisRow{
		{BreedCode: "RPT", Number: "1234", Outcome: "positiva"},
	}, nil)

	out := receptorEvents([]ReceptorRow{
		{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: arrival, TransferDate: transfer, Tattoo: "RPT1234"},
	}, ix)

	if len(out) != 2 {
		t.Fatalf("expected arrival + birth, got %d: %#v", len(out), out)
	}
	for _, e := range out {
		if e.Type == EventTypeDiagnosisDue {
			t.Fatalf("DG event should be suppressed for diagnosed animal")
		}
	}
}

func TestReceptorEvents_NegativeDiagnosisKillsBirth(t *testing.T) {
	arrival := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transfer := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	ix := BuildDiagnosisIndex([]DiagnosisRow{
		{BreedCode: "RPT", Number: "1234", Outcome: "Vacía"},
	}, nil)

	out := receptorEvents([]ReceptorRow{
		{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: arrival, TransferDate: transfer, Tattoo: "RPT1234"},
	}, ix)

	// Negativa: ni DG (ya tactada) ni parto previsto. Solo la llegada.
	if len(out) != 1 {
		t.Fatalf("expected only arrival, got %d: %#v", len(out), out)
	}
	if out[0].Type != EventTypeReceptorArrival {
		t.Fatalf("expected arrival, got %s", out[0].Type)
	}
}

func TestReceptorEvents_DuplicateInvoiceItem(t *testing.T) {
	arrival := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)

	// Mismo (factura, item) dos veces: joins duplicados, una sola receptora.
	out := receptorEvents([]ReceptorRow{
		{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: arrival, Tattoo: "RPT1234"},
		{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: arrival, Tattoo: "RPT1234"},
	}, emptyIndex())

	if len(out) != 2 {
		t.Fatalf("expected 2 events from one receptor, got %d", len(out))
	}
}

func TestReceptorEvents_NoDatesDropsRow(t *testing.T) {
	out := receptorEvents([]ReceptorRow{
		{InvoiceID: "inv1", ItemID: "it1", Tattoo: "RPT1234"},
	}, emptyIndex())

	if len(out) != 0 {
		t.Fatalf("row without any anchor date must produce nothing, got %#v", out)
	}
}

func TestReceptorEvents_TransferWithoutArrival(t *testing.T) {
	transfer := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	out := receptorEvents([]ReceptorRow{
		{InvoiceID: "inv1", ItemID: "it1", TransferDate: transfer, Tattoo: "RPT1234"},
	}, emptyIndex())

	// Sin llegada no hay llegada ni tacto, pero el parto previsto se ancla
	// en la TE y esa fecha sí está.
	if len(out) != 1 {
		t.Fatalf("expected only the birth forecast, got %d: %#v", len(out), out)
	}
	if out[0].Type != EventTypePredictedBirth {
		t.Fatalf("expected predicted birth, got %s", out[0].Type)
	}
	if want := transfer.AddDate(0, MonthsGestationInvoice, 0); !out[0].Date.Equal(want) {
		t.Fatalf("expected %s, got %s", want, out[0].Date)
	}
}

func TestReceptorEvents_NilIndexEmitsArrivalOnly(t *testing.T) {
	arrival := time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC)
	transfer := time.Date(2024, 3, 10, 0, 0, 0, 0, time.UTC)

	out := receptorEvents([]ReceptorRow{
		{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: arrival, TransferDate: transfer, Tattoo: "RPT1234"},
	}, nil)

	if len(out) != 1 {
		t.Fatalf("nil index must emit facts only, got %d: %#v", len(out), out)
	}
	if out[0].Type != EventTypeReceptorArrival {
		t.Fatalf("expected arrival, got %s", out[0].Type)
	}
}

func TestReceptorIdentity_TattooWins(t *testing.T) {
	key, display := receptorIdentity(ReceptorRow{
		Tattoo:         "RPT1234",
		ReceptorLetter: "R",
		ReceptorNumber: "55",
	})

	if key.Composite != "rpt1234" {
		t.Fatalf("expected composite from tattoo, got %q", key.Composite)
	}
	if display != "RPT1234" {
		t.Fatalf("expected display RPT1234, got %q", display)
	}
}

func TestReceptorIdentity_FallbackToLetterNumber(t *testing.T) {
	key, display := receptorIdentity(ReceptorRow{
		ReceptorLetter: "R",
		ReceptorNumber: "55",
	})

	if key.Composite != "r55" {
		t.Fatalf("expected composite r55, got %q", key.Composite)
	}
	if display != "R 55" {
		t.Fatalf("expected display R 55, got %q", display)
	}
}

func TestReceptorIdentity_NoIdentity(t *testing.T) {
	key, display := receptorIdentity(ReceptorRow{})

	if !key.IsZero() {
		t.Fatalf("expected zero key, got %#v", key)
	}
	if display != "s/n" {
		t.Fatalf("expected display s/n, got %q", display)
	}
}
