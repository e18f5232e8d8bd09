package reproduction

import "time"

// EventType de los eventos derivados por el motor. Los eventos manuales
// conservan el tipo con el que fueron cargados (ver events.EventType).
type EventType string

const (
	EventTypeReceptorArrival EventType = "RECEPTOR_ARRIVAL"
	EventTypeDiagnosisDue    EventType = "DIAGNOSIS_DUE"
	EventTypePredictedBirth  EventType = "PREDICTED_BIRTH"
	EventTypeRetest          EventType = "ANDROLOGICAL_RETEST"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusDone      EventStatus = "done"
)

type Origin string

const (
	OriginManual       Origin = "manual"
	OriginReceptor     Origin = "receptor"
	OriginAndrological Origin = "andrological"
)

// CandidateEvent es la unidad sobre la que opera todo el pipeline: una
// entrada del calendario (hecho registrado o pronóstico) antes de
// deduplicar y filtrar. El ID es sintético y determinístico
// (origen + id de fila + sufijo) para que dos corridas sobre los mismos
// datos produzcan los mismos IDs.
type CandidateEvent struct {
	ID    string
	Title string

	AnimalID string
	Key      AnimalKey

	Date time.Time

	Type        EventType
	Description string
	Status      EventStatus
	Origin      Origin

	Extra map[string]string
}
