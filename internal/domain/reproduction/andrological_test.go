package reproduction

import (
	"testing"
	"time"
)

func TestRetestEvents_UnfitDefaultOffset(t *testing.T) {
	exam := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)

	out := retestEvents([]ExamRow{
		{ID: "ex1", BreedCode: "NEL", Number: "5", Bull: "Trovão", ExamDate: exam, Outcome: "no apto"},
	})

	if len(out) != 1 {
		t.Fatalf("expected 1 retest, got %d", len(out))
	}

	want := time.Date(2024, 2, 9, 0, 0, 0, 0, time.UTC)
	if !out[0].Date.Equal(want) {
		t.Fatalf("expected retest at %s, got %s", want, out[0].Date)
	}
	if out[0].Type != EventTypeRetest || out[0].Status != EventStatusScheduled {
		t.Fatalf("retest event wrong: %#v", out[0])
	}
}

func TestRetestEvents_UnfitExplicitRescheduleWins(t *testing.T) {
	exam := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	resched := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	out := retestEvents([]ExamRow{
		{ID: "ex1", BreedCode: "NEL", Number: "5", ExamDate: exam, Outcome: "reprobado", RescheduleDate: resched},
	})

	if len(out) != 1 || !out[0].Date.Equal(resched) {
		t.Fatalf("explicit reschedule date should win, got %#v", out)
	}
}

func TestRetestEvents_PendingRescheduledUsesExamDate(t *testing.T) {
	exam := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	out := retestEvents([]ExamRow{
		{ID: "ex1", BreedCode: "NEL", Number: "5", ExamDate: exam, Outcome: "pendiente", Rescheduled: true},
	})

	if len(out) != 1 || !out[0].Date.Equal(exam) {
		t.Fatalf("pending+rescheduled should use the exam date, got %#v", out)
	}
}

func TestRetestEvents_PendingWithoutRescheduleIgnored(t *testing.T) {
	exam := time.Date(2024, 4, 15, 0, 0, 0, 0, time.UTC)

	out := retestEvents([]ExamRow{
		{ID: "ex1", ExamDate: exam, Outcome: "pendiente"},
		{ID: "ex2", ExamDate: exam, Outcome: "apto"},
	})

	if len(out) != 0 {
		t.Fatalf("pending without reschedule and fit bulls produce nothing, got %#v", out)
	}
}

func TestRetestEvents_DedupesSameAnimalSameDate(t *testing.T) {
	exam := time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC)
	resched := exam.AddDate(0, 0, DaysRetest)

	// Dos filas del mismo toro que describen el mismo reexamen: una "no
	// apto" (examen+30) y una "pendiente" reagendada a la misma fecha.
	out := retestEvents([]ExamRow{
		{ID: "ex1", BreedCode: "NEL", Number: "5", ExamDate: exam, Outcome: "no apto"},
		{ID: "ex2", BreedCode: "NEL", Number: "5", ExamDate: resched, Outcome: "pendiente", Rescheduled: true},
	})

	if len(out) != 1 {
		t.Fatalf("expected 1 deduped retest, got %d: %#v", len(out), out)
	}
}
