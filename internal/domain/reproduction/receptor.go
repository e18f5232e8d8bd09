package reproduction

import (
	"fmt"
	"strings"
	"unicode"
)

// receptorEvents deriva hasta tres eventos por línea de factura de
// receptoras, todos anclados en la fecha de llegada (factura) y la TE
// registrada en la misma factura:
//
//  1. Llegada (hecho, status done) cuando hay fecha de llegada.
//  2. Tacto programado a llegada+20 días, solo si el animal no tiene ya
//     un diagnóstico (de cualquier signo): un recordatorio de DG para una
//     vaca ya tactada es ruido.
//  3. Parto previsto a TE+9 meses, solo si hay TE y el diagnóstico no fue
//     negativa/vacía. Un negativo invalida el pronóstico: el evento no
//     aparece ni como cancelado.
//
// dx == nil significa que el ledger de diagnósticos no se pudo leer: sin
// hechos de supresión no se pronostica nada. Quedan solo las llegadas,
// que no dependen del ledger.
func receptorEvents(rows []ReceptorRow, dx *DiagnosisIndex) []CandidateEvent {
	out := make([]CandidateEvent, 0, len(rows)*2)
	seen := make(map[string]struct{}, len(rows))

	for _, rc := range rows {
		// Dos líneas que resuelven al mismo (factura, item) son la misma
		// receptora (joins duplicados); no se emite dos veces.
		instance := rc.InvoiceID + "/" + rc.ItemID
		if _, dup := seen[instance]; dup {
			continue
		}
		seen[instance] = struct{}{}

		if rc.ArrivalDate.IsZero() && rc.TransferDate.IsZero() {
			continue
		}

		key, display := receptorIdentity(rc)

		extra := map[string]string{}
		if strings.TrimSpace(rc.Supplier) != "" {
			extra["supplier"] = strings.TrimSpace(rc.Supplier)
		}
		if strings.TrimSpace(rc.InvoiceNumber) != "" {
			extra["invoice"] = strings.TrimSpace(rc.InvoiceNumber)
		}

		base := fmt.Sprintf("receptor-%s-%s", rc.InvoiceID, rc.ItemID)

		if !rc.ArrivalDate.IsZero() {
			out = append(out, CandidateEvent{
				ID:          base + "-arrival",
				Title:       "Llegada receptora " + display,
				Key:         key,
				Date:        rc.ArrivalDate,
				Type:        EventTypeReceptorArrival,
				Description: "Ingreso por factura " + rc.InvoiceNumber,
				Status:      EventStatusDone,
				Origin:      OriginReceptor,
				Extra:       extra,
			})
		}

		// El tacto se ancla en la llegada; sin llegada no hay qué
		// programar.
		if !rc.ArrivalDate.IsZero() && dx != nil && !dx.HasDiagnosis(key) {
			out = append(out, CandidateEvent{
				ID:          base + "-dg",
				Title:       "Tacto DG " + display,
				Key:         key,
				Date:        forecastDiagnosis(rc.ArrivalDate),
				Type:        EventTypeDiagnosisDue,
				Description: fmt.Sprintf("DG a %d días de la llegada", DaysArrivalToDiagnosis),
				Status:      EventStatusScheduled,
				Origin:      OriginReceptor,
				Extra:       extra,
			})
		}

		if !rc.TransferDate.IsZero() && dx != nil && !dx.IsNegative(key) {
			out = append(out, CandidateEvent{
				ID:          base + "-birth",
				Title:       "Parto previsto " + display,
				Key:         key,
				Date:        forecastBirthFromInvoice(rc.TransferDate),
				Type:        EventTypePredictedBirth,
				Description: fmt.Sprintf("TE %s + %d meses", rc.TransferDate.Format("2006-01-02"), MonthsGestationInvoice),
				Status:      EventStatusScheduled,
				Origin:      OriginReceptor,
				Extra:       extra,
			})
		}
	}

	return out
}

// receptorIdentity resuelve la identidad de la receptora: tatuaje con
// forma "letras+dígitos" primero, si no, letra/número de receptora de la
// propia factura. El tatuaje crudo siempre queda como token extra.
func receptorIdentity(rc ReceptorRow) (AnimalKey, string) {
	tattoo := strings.TrimSpace(rc.Tattoo)

	if letters, digits, ok := splitTattoo(tattoo); ok {
		return NormalizeKey(letters, digits, tattoo), strings.ToUpper(tattoo)
	}

	key := NormalizeKey(rc.ReceptorLetter, rc.ReceptorNumber, tattoo)

	display := strings.TrimSpace(strings.TrimSpace(rc.ReceptorLetter) + " " + strings.TrimSpace(rc.ReceptorNumber))
	if display == "" {
		display = strings.ToUpper(tattoo)
	}
	if display == "" {
		display = "s/n"
	}
	return key, display
}

// splitTattoo separa un tatuaje tipo "RPT1234" en prefijo de letras y
// sufijo de dígitos. Cualquier otra forma no parsea.
func splitTattoo(t string) (letters, digits string, ok bool) {
	t = strings.TrimSpace(t)
	if t == "" {
		return "", "", false
	}

	i := 0
	for i < len(t) && unicode.IsLetter(rune(t[i])) {
		i++
	}
	if i == 0 || i == len(t) {
		return "", "", false
	}
	for j := i; j < len(t); j++ {
		if !unicode.IsDigit(rune(t[j])) {
			return "", "", false
		}
	}
	return t[:i], t[i:], true
}
