package postgres

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/animals"
)

type AnimalsRepo struct {
	db *sql.DB
}

func NewAnimalsRepo(db *sql.DB) *AnimalsRepo {
	return &AnimalsRepo{db: db}
}

func (r *AnimalsRepo) Create(ctx context.Context, a animals.Animal) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO animals (
			id, owner_user_id,
			breed_code, number, tattoo,
			name, breed, sex,
			birth_date, notes,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		a.ID,
		a.OwnerUserID,
		a.BreedCode,
		a.Number,
		a.Tattoo,
		a.Name,
		a.Breed,
		string(a.Sex),
		toNullDate(a.BirthDate),
		a.Notes,
		a.CreatedAt,
		a.UpdatedAt,
	)
	return err
}

func (r *AnimalsRepo) Update(ctx context.Context, a animals.Animal) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE animals
		SET
			breed_code = $2,
			number = $3,
			tattoo = $4,
			name = $5,
			breed = $6,
			sex = $7,
			birth_date = $8,
			notes = $9,
			updated_at = $10
		WHERE id = $1
	`,
		a.ID,
		a.BreedCode,
		a.Number,
		a.Tattoo,
		a.Name,
		a.Breed,
		string(a.Sex),
		toNullDate(a.BirthDate),
		a.Notes,
		a.UpdatedAt,
	)
	if err != nil {
		return err
	}
	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *AnimalsRepo) GetByID(ctx context.Context, id string) (animals.Animal, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return animals.Animal{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			breed_code, number, tattoo,
			name, breed, sex,
			birth_date, notes,
			created_at, updated_at
		FROM animals
		WHERE id = $1
	`, id)

	a, err := scanAnimal(row)
	if err != nil {
		if err == sql.ErrNoRows {
			return animals.Animal{}, ErrNotFound
		}
		return animals.Animal{}, err
	}
	return a, nil
}

func (r *AnimalsRepo) ListByOwner(ctx context.Context, ownerUserID string) ([]animals.Animal, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			id, owner_user_id,
			breed_code, number, tattoo,
			name, breed, sex,
			birth_date, notes,
			created_at, updated_at
		FROM animals
		WHERE owner_user_id = $1
		ORDER BY created_at ASC
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]animals.Animal, 0)
	for rows.Next() {
		a, err := scanAnimal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}

	return out, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanAnimal(row rowScanner) (animals.Animal, error) {
	var a animals.Animal
	var sex string
	var bd sql.NullTime

	if err := row.Scan(
		&a.ID,
		&a.OwnerUserID,
		&a.BreedCode,
		&a.Number,
		&a.Tattoo,
		&a.Name,
		&a.Breed,
		&sex,
		&bd,
		&a.Notes,
		&a.CreatedAt,
		&a.UpdatedAt,
	); err != nil {
		return animals.Animal{}, err
	}

	a.Sex = animals.Sex(sex)
	if bd.Valid {
		t := bd.Time
		// ojo: birth_date es date, pgx lo puede mapear a time.Time midnight UTC
		a.BirthDate = &t
	}

	return a, nil
}

// birth_date es DATE, lo pasamos como NullTime para simplificar
func toNullDate(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{Valid: false}
	}
	return sql.NullTime{Time: *t, Valid: true}
}
