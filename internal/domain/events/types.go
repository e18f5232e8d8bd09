package events

type EventType string

const (
	EventTypeInsemination   EventType = "INSEMINATION"
	EventTypeEmbryoTransfer EventType = "EMBRYO_TRANSFER"
	EventTypeDiagnosis      EventType = "DG"
	EventTypeVaccine        EventType = "VACCINE"
	EventTypeWeighing       EventType = "WEIGHING"
	EventTypeBirth          EventType = "BIRTH"
	EventTypeAndrological   EventType = "ANDROLOGICAL_EXAM"
	EventTypeNote           EventType = "NOTE"
)

type EventStatus string

const (
	EventStatusScheduled EventStatus = "scheduled"
	EventStatusDone      EventStatus = "done"
	EventStatusVoided    EventStatus = "voided"
)
