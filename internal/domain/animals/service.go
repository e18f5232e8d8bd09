package animals

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

type CreateInput struct {
	BreedCode string
	Number    string
	Tattoo    string
	Name      string
	Breed     string
	Sex       string
	BirthDate *time.Time
	Notes     string
}

func (s *Service) Create(ctx context.Context, ownerUserID string, in CreateInput) (Animal, error) {
	if strings.TrimSpace(ownerUserID) == "" {
		return Animal{}, ErrInvalidInput
	}

	breedCode := strings.TrimSpace(in.BreedCode)
	number := strings.TrimSpace(in.Number)
	tattoo := strings.TrimSpace(in.Tattoo)
	name := strings.TrimSpace(in.Name)

	// Sin identidad no hay ficha: hace falta serie+RG, o tatuaje, o al menos nombre.
	if (breedCode == "" || number == "") && tattoo == "" && name == "" {
		return Animal{}, ErrInvalidInput
	}

	sex := Sex(strings.TrimSpace(in.Sex))
	if sex == "" {
		sex = SexUnknown
	}

	now := s.now()
	a := Animal{
		ID:          uuid.NewString(),
		OwnerUserID: ownerUserID,
		BreedCode:   breedCode,
		Number:      number,
		Tattoo:      tattoo,
		Name:        name,
		Breed:       strings.TrimSpace(in.Breed),
		Sex:         sex,
		BirthDate:   in.BirthDate,
		Notes:       strings.TrimSpace(in.Notes),
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Animal, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *Service) ListByOwner(ctx context.Context, ownerUserID string) ([]Animal, error) {
	return s.repo.ListByOwner(ctx, ownerUserID)
}

type UpdateInput struct {
	// Punteros para PATCH real: nil = no tocar.
	BreedCode *string
	Number    *string
	Tattoo    *string
	Name      *string
	Breed     *string
	Sex       *string
	BirthDate *time.Time
	ClearBirthDate bool
	Notes     *string
}

func (s *Service) Update(ctx context.Context, id string, in UpdateInput) (Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Animal{}, ErrInvalidInput
	}

	a, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return Animal{}, err
	}

	if in.BreedCode != nil {
		a.BreedCode = strings.TrimSpace(*in.BreedCode)
	}
	if in.Number != nil {
		a.Number = strings.TrimSpace(*in.Number)
	}
	if in.Tattoo != nil {
		a.Tattoo = strings.TrimSpace(*in.Tattoo)
	}
	if in.Name != nil {
		a.Name = strings.TrimSpace(*in.Name)
	}
	if in.Breed != nil {
		a.Breed = strings.TrimSpace(*in.Breed)
	}
	if in.Sex != nil {
		a.Sex = Sex(strings.TrimSpace(*in.Sex))
	}
	if in.ClearBirthDate {
		a.BirthDate = nil
	} else if in.BirthDate != nil {
		a.BirthDate = in.BirthDate
	}
	if in.Notes != nil {
		a.Notes = strings.TrimSpace(*in.Notes)
	}

	// No dejar la ficha sin ninguna identidad.
	if (a.BreedCode == "" || a.Number == "") && a.Tattoo == "" && a.Name == "" {
		return Animal{}, ErrInvalidInput
	}

	a.UpdatedAt = s.now()

	if err := s.repo.Update(ctx, a); err != nil {
		return Animal{}, err
	}
	return a, nil
}
