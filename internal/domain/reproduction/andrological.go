package reproduction

import (
	"strings"
	"time"
)

// Vocabulario de resultados andrológicos, mismo criterio que el de DG:
// una sola definición, sin mayúsculas ni acentos.
var unfitWords = []string{"unfit", "no apto", "inapto", "reprobado"}

var pendingWords = []string{"pending", "pendiente"}

func isUnfitOutcome(outcome string) bool { return containsAny(outcome, unfitWords) }
func isPendingOutcome(outcome string) bool { return containsAny(outcome, pendingWords) }

func containsAny(outcome string, words []string) bool {
	s := foldOutcome(outcome)
	if s == "" {
		return false
	}
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

// retestEvents deriva los reexámenes andrológicos:
//   - toro no apto: reexamen a examen+30 días, salvo fecha de reagenda
//     explícita, que manda;
//   - pendiente ya reagendado: la fecha del examen ES el evento (la
//     reagenda ya ocurrió).
//
// Un "no apto" y un "pendiente reagendado" pueden describir el mismo
// reexamen; se deduplica acá, antes de llegar al deduplicador global,
// para no contarlo dos veces.
func retestEvents(rows []ExamRow) []CandidateEvent {
	out := make([]CandidateEvent, 0, len(rows))

	for _, ex := range rows {
		var date time.Time

		switch {
		case isUnfitOutcome(ex.Outcome):
			if !ex.RescheduleDate.IsZero() {
				date = ex.RescheduleDate
			} else if !ex.ExamDate.IsZero() {
				date = forecastRetest(ex.ExamDate)
			}
		case isPendingOutcome(ex.Outcome) && ex.Rescheduled:
			date = ex.ExamDate
		}

		if date.IsZero() {
			continue
		}

		title := "Reexamen andrológico"
		if name := strings.TrimSpace(ex.Bull); name != "" {
			title += " " + name
		}

		out = append(out, CandidateEvent{
			ID:          "andro-" + ex.ID + "-retest",
			Title:       title,
			Key:         NormalizeKey(ex.BreedCode, ex.Number, ex.Tattoo),
			Date:        date,
			Type:        EventTypeRetest,
			Description: "Resultado previo: " + strings.TrimSpace(ex.Outcome),
			Status:      EventStatusScheduled,
			Origin:      OriginAndrological,
		})
	}

	return dedupe(out)
}
