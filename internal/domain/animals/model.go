package animals

import "time"

// Breed define las razas manejadas por el sistema.
type Breed string

const (
	BreedNelore   Breed = "nelore"
	BreedAngus    Breed = "angus"
	BreedBrahman  Breed = "brahman"
	BreedGir      Breed = "gir"
	BreedSenepol  Breed = "senepol"
	BreedReceptor Breed = "receptora"
	BreedOther    Breed = "other"
)

// Sex define el sexo del animal.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

// Animal representa la ficha de un animal del rebaño.
// La identidad de campo es serie + RG (ej: "RPT" + "0123"); el tatuaje
// puede o no repetir la serie, según quién cargó el dato.
type Animal struct {
	ID          string
	OwnerUserID string

	BreedCode string // serie (prefijo de la raza/criador)
	Number    string // RG, puede venir con ceros a la izquierda
	Tattoo    string

	Name  string
	Breed string // según catálogo Breed, texto libre para "other"
	Sex   Sex

	BirthDate *time.Time
	Notes     string

	CreatedAt time.Time
	UpdatedAt time.Time
}
