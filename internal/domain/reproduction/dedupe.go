package reproduction

// dedupe colapsa eventos que describen el mismo hecho físico: misma
// identidad (composite, si no tatuaje; sin clave, el id propio), misma
// fecha y mismo tipo. Gana la primera aparición. No se aplica entre
// manual y receptoras: esos orígenes usan namespaces de id distintos y
// no colisionan por construcción.
func dedupe(events []CandidateEvent) []CandidateEvent {
	seen := make(map[string]struct{}, len(events))
	out := make([]CandidateEvent, 0, len(events))

	for _, e := range events {
		k := dedupeKey(e)
		if _, dup := seen[k]; dup {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, e)
	}
	return out
}

func dedupeKey(e CandidateEvent) string {
	id := e.Key.Composite
	if id == "" {
		id = e.Key.Tattoo
	}
	if id == "" {
		id = e.ID
	}
	return id + "|" + e.Date.Format("2006-01-02") + "|" + string(e.Type)
}
