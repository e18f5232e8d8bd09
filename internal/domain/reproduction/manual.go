package reproduction

// manualEvents convierte filas del calendario manual en eventos
// candidatos. Son verdad de campo: sin pronóstico ni supresión. Filas sin
// fecha utilizable se descartan acá mismo (ningún evento aguas abajo
// lleva fecha nula).
func manualEvents(rows []ManualRow) []CandidateEvent {
	out := make([]CandidateEvent, 0, len(rows))
	for _, m := range rows {
		if m.Date.IsZero() {
			continue
		}

		status := EventStatusScheduled
		if m.Done {
			status = EventStatusDone
		}

		out = append(out, CandidateEvent{
			ID:          "manual-" + m.ID,
			Title:       m.Title,
			AnimalID:    m.AnimalID,
			Key:         NormalizeKey(m.BreedCode, m.Number, ""),
			Date:        m.Date,
			Type:        EventType(m.Type),
			Description: m.Description,
			Status:      status,
			Origin:      OriginManual,
		})
	}
	return out
}
