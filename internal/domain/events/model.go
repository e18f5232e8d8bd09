package events

import "time"

// ManualEvent es una fila del calendario cargada a mano por el operador.
// La referencia al animal es mejor esfuerzo: puede venir el ID de la ficha,
// solo serie+RG sueltos, o nada (eventos generales del campo).
type ManualEvent struct {
	ID          string
	OwnerUserID string

	Title string

	AnimalID  string
	BreedCode string
	Number    string

	Date        time.Time
	Type        EventType
	Description string
	Status      EventStatus

	CreatedAt time.Time
	UpdatedAt time.Time
}
