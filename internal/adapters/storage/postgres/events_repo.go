package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/events"
)

type EventsRepo struct {
	db *sql.DB
}

func NewEventsRepo(db *sql.DB) *EventsRepo {
	return &EventsRepo{db: db}
}

func (r *EventsRepo) Create(ctx context.Context, e events.ManualEvent) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO calendar_events (
			id, owner_user_id,
			title, animal_id, breed_code, number,
			date, type, description,
			status,
			created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12)
	`,
		e.ID,
		e.OwnerUserID,
		e.Title,
		e.AnimalID,
		e.BreedCode,
		e.Number,
		e.Date,
		string(e.Type),
		e.Description,
		string(e.Status),
		e.CreatedAt,
		e.UpdatedAt,
	)
	return err
}

func (r *EventsRepo) GetByID(ctx context.Context, id string) (events.ManualEvent, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return events.ManualEvent{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT
			id, owner_user_id,
			title, animal_id, breed_code, number,
			date, type, description,
			status,
			created_at, updated_at
		FROM calendar_events
		WHERE id = $1
	`, id)

	var e events.ManualEvent
	var typ, status string
	if err := row.Scan(
		&e.ID,
		&e.OwnerUserID,
		&e.Title,
		&e.AnimalID,
		&e.BreedCode,
		&e.Number,
		&e.Date,
		&typ,
		&e.Description,
		&status,
		&e.CreatedAt,
		&e.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return events.ManualEvent{}, ErrNotFound
		}
		return events.ManualEvent{}, err
	}

	e.Type = events.EventType(typ)
	e.Status = events.EventStatus(status)

	return e, nil
}

func (r *EventsRepo) ListByOwner(ctx context.Context, ownerUserID string, filter events.ListFilter) ([]events.ManualEvent, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	// Base query; los anulados nunca se listan
	sb := strings.Builder{}
	sb.WriteString(`
		SELECT
			id, owner_user_id,
			title, animal_id, breed_code, number,
			date, type, description,
			status,
			created_at, updated_at
		FROM calendar_events
		WHERE owner_user_id = $1
		AND status <> 'voided'
	`)

	args := []any{ownerUserID}
	argN := 2

	// types filter
	if len(filter.Types) > 0 {
		placeholders := make([]string, 0, len(filter.Types))
		for _, t := range filter.Types {
			placeholders = append(placeholders, fmt.Sprintf("$%d", argN))
			args = append(args, string(t))
			argN++
		}
		sb.WriteString(" AND type IN (" + strings.Join(placeholders, ",") + ")")
	}

	// from/to
	if filter.From != nil {
		sb.WriteString(fmt.Sprintf(" AND date >= $%d", argN))
		args = append(args, *filter.From)
		argN++
	}
	if filter.To != nil {
		sb.WriteString(fmt.Sprintf(" AND date <= $%d", argN))
		args = append(args, *filter.To)
		argN++
	}

	// q: búsqueda simple en title + description
	if strings.TrimSpace(filter.Query) != "" {
		sb.WriteString(fmt.Sprintf(" AND (title ILIKE $%d OR description ILIKE $%d)", argN, argN))
		args = append(args, "%"+strings.TrimSpace(filter.Query)+"%")
		argN++
	}

	sb.WriteString(" ORDER BY date DESC")

	// Limit negativo = sin tope (vista de fuentes).
	if filter.Limit >= 0 {
		limit := filter.Limit
		if limit == 0 {
			limit = 50
		}
		if limit > 1000 {
			limit = 1000
		}
		sb.WriteString(fmt.Sprintf(" LIMIT $%d", argN))
		args = append(args, limit)
	}

	rows, err := r.db.QueryContext(ctx, sb.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]events.ManualEvent, 0)
	for rows.Next() {
		var e events.ManualEvent
		var typ, status string

		if err := rows.Scan(
			&e.ID,
			&e.OwnerUserID,
			&e.Title,
			&e.AnimalID,
			&e.BreedCode,
			&e.Number,
			&e.Date,
			&typ,
			&e.Description,
			&status,
			&e.CreatedAt,
			&e.UpdatedAt,
		); err != nil {
			return nil, err
		}

		e.Type = events.EventType(typ)
		e.Status = events.EventStatus(status)

		out = append(out, e)
	}

	return out, rows.Err()
}

func (r *EventsRepo) UpdateStatus(ctx context.Context, id string, status events.EventStatus, at time.Time) error {
	id = strings.TrimSpace(id)
	if id == "" {
		return ErrNotFound
	}

	res, err := r.db.ExecContext(ctx, `
		UPDATE calendar_events
		SET status = $2, updated_at = $3
		WHERE id = $1
	`, id, string(status), at)
	if err != nil {
		return err
	}

	n, _ := res.RowsAffected()
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
