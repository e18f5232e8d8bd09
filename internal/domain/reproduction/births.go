package reproduction

import "fmt"

// confirmedBirths proyecta partos desde TE con diagnóstico positivo.
// Ojo: usa DaysGestationConfirmed, no el plazo de la factura (ver
// forecast.go).
func confirmedBirths(transfers []TransferRow) []CandidateEvent {
	out := make([]CandidateEvent, 0, len(transfers))

	for _, tr := range transfers {
		if tr.TransferDate.IsZero() {
			continue
		}
		if !IsPositiveOutcome(tr.Outcome) {
			continue
		}

		key := NormalizeKey(tr.BreedCode, tr.Number, tr.Tattoo)

		display := key.Tattoo
		if display == "" {
			display = key.Composite
		}
		if display == "" {
			display = "s/n"
		}

		out = append(out, CandidateEvent{
			ID:          "transfer-" + tr.ID + "-birth",
			Title:       "Parto previsto " + display,
			Key:         key,
			Date:        forecastBirthConfirmed(tr.TransferDate),
			Type:        EventTypePredictedBirth,
			Description: fmt.Sprintf("TE %s con DG positivo, %d días de gestación", tr.TransferDate.Format("2006-01-02"), DaysGestationConfirmed),
			Status:      EventStatusScheduled,
			Origin:      OriginReceptor,
		})
	}

	return out
}
