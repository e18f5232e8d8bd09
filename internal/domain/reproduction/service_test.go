package reproduction

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Fake sources
// -------------------------

type fakeSources struct {
	manual    []ManualRow
	receptors []ReceptorRow
	diagnoses []DiagnosisRow
	transfers []TransferRow
	exams     []ExamRow

	errManual    error
	errReceptors error
	errDiagnoses error
	errTransfers error
	errExams     error
}

func (f *fakeSources) ManualEvents(ctx context.Context, owner string) ([]ManualRow, error) {
	return f.manual, f.errManual
}

func (f *fakeSources) ReceptorArrivals(ctx context.Context, owner string) ([]ReceptorRow, error) {
	return f.receptors, f.errReceptors
}

func (f *fakeSources) Diagnoses(ctx context.Context, owner string) ([]DiagnosisRow, error) {
	return f.diagnoses, f.errDiagnoses
}

func (f *fakeSources) EmbryoTransfers(ctx context.Context, owner string) ([]TransferRow, error) {
	return f.transfers, f.errTransfers
}

func (f *fakeSources) AndrologicalExams(ctx context.Context, owner string) ([]ExamRow, error) {
	return f.exams, f.errExams
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// -------------------------
// Tests
// -------------------------

func TestCalendar_MergesAllSources(t *testing.T) {
	src := &fakeSources{
		manual: []ManualRow{
			{ID: "m1", Title: "Vacunación lote 3", Date: date(2024, 5, 2), Type: "VACCINE"},
		},
		receptors: []ReceptorRow{
			{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: date(2024, 3, 1), Tattoo: "RPT1234"},
		},
		exams: []ExamRow{
			{ID: "ex1", BreedCode: "NEL", Number: "5", ExamDate: date(2024, 1, 10), Outcome: "no apto"},
		},
	}
	svc := NewService(src, nil)

	page, err := svc.Calendar(context.Background(), "owner-1", Filter{})
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}

	// 1 manual + 2 receptora (llegada, DG) + 1 reexamen
	if page.Total != 4 {
		t.Fatalf("expected 4 events, got %d: %#v", page.Total, page.Items)
	}

	// Orden descendente por fecha
	for i := 1; i < len(page.Items); i++ {
		if page.Items[i].Date.After(page.Items[i-1].Date) {
			t.Fatalf("events out of order at %d: %s before %s", i, page.Items[i-1].Date, page.Items[i].Date)
		}
	}
}

func TestCalendar_SingleSourceFailureDegrades(t *testing.T) {
	src := &fakeSources{
		manual: []ManualRow{
			{ID: "m1", Title: "Pesaje", Date: date(2024, 5, 2), Type: "WEIGHING"},
		},
		errExams: errors.New("exams table offline"),
	}
	svc := NewService(src, nil)

	page, err := svc.Calendar(context.Background(), "owner-1", Filter{})
	if err != nil {
		t.Fatalf("one failed source must not fail the calendar: %v", err)
	}
	if page.Total != 1 {
		t.Fatalf("expected manual event to survive, got %d", page.Total)
	}
}

func TestCalendar_DiagnosisOutageDropsForecasts(t *testing.T) {
	src := &fakeSources{
		receptors: []ReceptorRow{
			{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: date(2024, 3, 1), TransferDate: date(2024, 3, 10), Tattoo: "RPT1234"},
		},
		errDiagnoses: errors.New("diagnoses table offline"),
	}
	svc := NewService(src, nil)

	page, err := svc.Calendar(context.Background(), "owner-1", Filter{})
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}

	// Sin ledger de diagnósticos no hay hechos de supresión: caen el tacto
	// programado y el parto previsto, queda solo la llegada (que es un
	// hecho, no un pronóstico).
	if page.Total != 1 {
		t.Fatalf("expected only the arrival, got %d: %#v", page.Total, page.Items)
	}
	if page.Items[0].Type != EventTypeReceptorArrival {
		t.Fatalf("expected arrival, got %s", page.Items[0].Type)
	}
}

func TestCalendar_TransferOutageDropsForecasts(t *testing.T) {
	// El índice también se alimenta de TEs con resultado propio; si esa
	// lectura falló el índice está incompleto y tampoco se pronostica.
	src := &fakeSources{
		receptors: []ReceptorRow{
			{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: date(2024, 3, 1), Tattoo: "RPT1234"},
		},
		errTransfers: errors.New("transfers table offline"),
	}
	svc := NewService(src, nil)

	page, err := svc.Calendar(context.Background(), "owner-1", Filter{})
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}
	if page.Total != 1 || page.Items[0].Type != EventTypeReceptorArrival {
		t.Fatalf("expected only the arrival, got %#v", page.Items)
	}
}

func TestCalendar_AllSourcesFail(t *testing.T) {
	boom := errors.New("db down")
	src := &fakeSources{
		errManual:    boom,
		errReceptors: boom,
		errDiagnoses: boom,
		errTransfers: boom,
		errExams:     boom,
	}
	svc := NewService(src, nil)

	_, err := svc.Calendar(context.Background(), "owner-1", Filter{})
	if !errors.Is(err, ErrSourcesUnavailable) {
		t.Fatalf("expected ErrSourcesUnavailable, got %v", err)
	}
}

func TestCalendar_EmptyOwnerRejected(t *testing.T) {
	svc := NewService(&fakeSources{}, nil)

	if _, err := svc.Calendar(context.Background(), "  ", Filter{}); !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput, got %v", err)
	}
}

func TestCalendar_TypeAndDateFilters(t *testing.T) {
	src := &fakeSources{
		manual: []ManualRow{
			{ID: "m1", Title: "Tacto lote 1", Date: date(2024, 2, 1), Type: "DG"},
			{ID: "m2", Title: "Vacunación", Date: date(2024, 5, 2), Type: "VACCINE"},
			{ID: "m3", Title: "Tacto lote 2", Date: date(2024, 8, 1), Type: "DG"},
		},
	}
	svc := NewService(src, nil)

	from := date(2024, 3, 1)
	page, err := svc.Calendar(context.Background(), "owner-1", Filter{
		Type: EventType("DG"),
		From: &from,
	})
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}
	if page.Total != 1 || page.Items[0].ID != "manual-m3" {
		t.Fatalf("expected only manual-m3, got %#v", page.Items)
	}
}

func TestCalendar_QueryMatchesAnimalTokens(t *testing.T) {
	src := &fakeSources{
		receptors: []ReceptorRow{
			{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: date(2024, 3, 1), Tattoo: "RPT1234"},
			{InvoiceID: "inv1", ItemID: "it2", ArrivalDate: date(2024, 3, 1), Tattoo: "ABC9"},
		},
	}
	svc := NewService(src, nil)

	page, err := svc.Calendar(context.Background(), "owner-1", Filter{Query: "rpt1234"})
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}
	if page.Total != 2 {
		t.Fatalf("expected arrival+DG for rpt1234 only, got %d: %#v", page.Total, page.Items)
	}
	for _, e := range page.Items {
		if e.Key.Composite != "rpt1234" {
			t.Fatalf("query leaked another animal: %#v", e)
		}
	}
}

func TestCalendar_Pagination(t *testing.T) {
	rows := make([]ManualRow, 0, 7)
	for i := 0; i < 7; i++ {
		rows = append(rows, ManualRow{
			ID:    string(rune('a' + i)),
			Title: "Evento",
			Date:  date(2024, 1, 1+i),
			Type:  "NOTE",
		})
	}
	src := &fakeSources{manual: rows}
	svc := NewService(src, nil)

	page, err := svc.Calendar(context.Background(), "owner-1", Filter{Limit: 3, Offset: 5})
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}
	if page.Total != 7 {
		t.Fatalf("Total must be pre-pagination, got %d", page.Total)
	}
	if len(page.Items) != 2 {
		t.Fatalf("expected 2 items in last page, got %d", len(page.Items))
	}
	if page.Limit != 3 || page.Offset != 5 {
		t.Fatalf("page metadata wrong: %#v", page)
	}

	// Offset pasado del final: página vacía, no panic.
	page, err = svc.Calendar(context.Background(), "owner-1", Filter{Offset: 99})
	if err != nil {
		t.Fatalf("Calendar error: %v", err)
	}
	if len(page.Items) != 0 || page.Total != 7 {
		t.Fatalf("expected empty page with total 7, got %#v", page)
	}
}

func TestProject_ZeroDatesSortLast(t *testing.T) {
	events := []CandidateEvent{
		{ID: "zero"},
		{ID: "old", Date: date(2024, 1, 1)},
		{ID: "new", Date: date(2024, 6, 1)},
	}

	page := project(events, Filter{})
	if len(page.Items) != 3 {
		t.Fatalf("expected 3 items, got %d", len(page.Items))
	}
	if page.Items[0].ID != "new" || page.Items[1].ID != "old" || page.Items[2].ID != "zero" {
		t.Fatalf("wrong order: %s %s %s", page.Items[0].ID, page.Items[1].ID, page.Items[2].ID)
	}
}

func TestProject_ZeroDateFailsDateFilter(t *testing.T) {
	from := date(2024, 1, 1)
	page := project([]CandidateEvent{{ID: "zero"}}, Filter{From: &from})
	if page.Total != 0 {
		t.Fatalf("zero-date event must not pass a date filter")
	}
}

func TestProject_LimitDefaultAndCap(t *testing.T) {
	page := project(nil, Filter{})
	if page.Limit != 50 {
		t.Fatalf("expected default limit 50, got %d", page.Limit)
	}

	page = project(nil, Filter{Limit: 999})
	if page.Limit != 200 {
		t.Fatalf("expected cap 200, got %d", page.Limit)
	}
}

func TestBirthForecasts_BothPaths(t *testing.T) {
	src := &fakeSources{
		receptors: []ReceptorRow{
			{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: date(2024, 3, 1), TransferDate: date(2024, 3, 10), Tattoo: "RPT1234"},
		},
		transfers: []TransferRow{
			{ID: "t1", BreedCode: "GIR", Number: "10", TransferDate: date(2024, 4, 1), Outcome: "positiva"},
		},
	}
	svc := NewService(src, nil)

	page, err := svc.BirthForecasts(context.Background(), "owner-1", Filter{})
	if err != nil {
		t.Fatalf("BirthForecasts error: %v", err)
	}

	if page.Total != 2 {
		t.Fatalf("expected 2 forecasts, got %d: %#v", page.Total, page.Items)
	}
	for _, e := range page.Items {
		if e.Type != EventTypePredictedBirth {
			t.Fatalf("non-birth event leaked: %#v", e)
		}
	}
}

func TestBirthForecasts_NegativeSuppressesInvoicePath(t *testing.T) {
	src := &fakeSources{
		receptors: []ReceptorRow{
			{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: date(2024, 3, 1), TransferDate: date(2024, 3, 10), Tattoo: "RPT1234"},
		},
		diagnoses: []DiagnosisRow{
			{BreedCode: "RPT", Number: "1234", Outcome: "vacía"},
		},
	}
	svc := NewService(src, nil)

	page, err := svc.BirthForecasts(context.Background(), "owner-1", Filter{})
	if err != nil {
		t.Fatalf("BirthForecasts error: %v", err)
	}
	if page.Total != 0 {
		t.Fatalf("negative diagnosis must kill the forecast, got %#v", page.Items)
	}
}

func TestBirthForecasts_DiagnosisOutageDropsInvoicePath(t *testing.T) {
	src := &fakeSources{
		receptors: []ReceptorRow{
			{InvoiceID: "inv1", ItemID: "it1", ArrivalDate: date(2024, 3, 1), TransferDate: date(2024, 3, 10), Tattoo: "RPT1234"},
		},
		errDiagnoses: errors.New("diagnoses table offline"),
	}
	svc := NewService(src, nil)

	page, err := svc.BirthForecasts(context.Background(), "owner-1", Filter{})
	if err != nil {
		t.Fatalf("BirthForecasts error: %v", err)
	}

	// Sin ledger no se sabe quién dio negativa: el camino de factura no
	// emite pronósticos en vez de arriesgar uno que debía suprimirse.
	if page.Total != 0 {
		t.Fatalf("invoice-path forecast must not survive a ledger outage, got %#v", page.Items)
	}
}

func TestBirthForecasts_AllSourcesFail(t *testing.T) {
	boom := errors.New("db down")
	src := &fakeSources{
		errReceptors: boom,
		errDiagnoses: boom,
		errTransfers: boom,
	}
	svc := NewService(src, nil)

	_, err := svc.BirthForecasts(context.Background(), "owner-1", Filter{})
	if !errors.Is(err, ErrSourcesUnavailable) {
		t.Fatalf("expected ErrSourcesUnavailable, got %v", err)
	}
}

func TestConfirmedBirths_OnlyPositiveWithDate(t *testing.T) {
	out := confirmedBirths([]TransferRow{
		{ID: "t1", BreedCode: "GIR", Number: "10", TransferDate: date(2024, 4, 1), Outcome: "positiva"},
		{ID: "t2", BreedCode: "GIR", Number: "11", TransferDate: date(2024, 4, 1), Outcome: "negativa"},
		{ID: "t3", BreedCode: "GIR", Number: "12", Outcome: "positiva"}, // sin fecha
	})

	if len(out) != 1 {
		t.Fatalf("expected 1 confirmed birth, got %d: %#v", len(out), out)
	}

	want := date(2024, 4, 1).AddDate(0, 0, DaysGestationConfirmed)
	if !out[0].Date.Equal(want) {
		t.Fatalf("expected birth at %s, got %s", want, out[0].Date)
	}
}
