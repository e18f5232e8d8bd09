package postgres

import (
	"context"
	"database/sql"
	"strings"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/domain/reproduction"
)

// SourcesRepo es la vista de solo lectura sobre las tablas de origen del
// calendario consolidado. Las tablas de receptoras/tactos/TE/andrológico
// vienen de cargas externas, así que acá se scanea a la defensiva: una
// fila ilegible se saltea, no corta el batch.
type SourcesRepo struct {
	db *sql.DB
}

func NewSourcesRepo(db *sql.DB) *SourcesRepo {
	return &SourcesRepo{db: db}
}

var _ reproduction.Sources = (*SourcesRepo)(nil)

func (r *SourcesRepo) ManualEvents(ctx context.Context, ownerUserID string) ([]reproduction.ManualRow, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, title, animal_id, breed_code, number, date, type, description, status
		FROM calendar_events
		WHERE owner_user_id = $1
		AND status <> 'voided'
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reproduction.ManualRow, 0)
	for rows.Next() {
		var m reproduction.ManualRow
		var animalID, breedCode, number, description sql.NullString
		var date sql.NullTime
		var status string

		if err := rows.Scan(
			&m.ID,
			&m.Title,
			&animalID,
			&breedCode,
			&number,
			&date,
			&m.Type,
			&description,
			&status,
		); err != nil {
			continue
		}

		m.AnimalID = animalID.String
		m.BreedCode = breedCode.String
		m.Number = number.String
		m.Description = description.String
		m.Done = status == "done"
		if date.Valid {
			m.Date = date.Time
		}

		out = append(out, m)
	}

	return out, rows.Err()
}

func (r *SourcesRepo) ReceptorArrivals(ctx context.Context, ownerUserID string) ([]reproduction.ReceptorRow, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT
			i.invoice_id, i.id,
			inv.invoice_date, i.transfer_date,
			i.tattoo, i.receptor_letter, i.receptor_number,
			inv.supplier, inv.invoice_number
		FROM receptor_invoice_items i
		JOIN invoices inv ON inv.id = i.invoice_id
		WHERE inv.owner_user_id = $1
		  AND i.is_receptor = TRUE
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reproduction.ReceptorRow, 0)
	for rows.Next() {
		var rr reproduction.ReceptorRow
		var arrival, transfer sql.NullTime
		var tattoo, letter, number, supplier, invoiceNumber sql.NullString

		if err := rows.Scan(
			&rr.InvoiceID,
			&rr.ItemID,
			&arrival,
			&transfer,
			&tattoo,
			&letter,
			&number,
			&supplier,
			&invoiceNumber,
		); err != nil {
			continue
		}

		if arrival.Valid {
			rr.ArrivalDate = arrival.Time
		}
		if transfer.Valid {
			rr.TransferDate = transfer.Time
		}
		rr.Tattoo = tattoo.String
		rr.ReceptorLetter = letter.String
		rr.ReceptorNumber = number.String
		rr.Supplier = supplier.String
		rr.InvoiceNumber = invoiceNumber.String

		out = append(out, rr)
	}

	return out, rows.Err()
}

func (r *SourcesRepo) Diagnoses(ctx context.Context, ownerUserID string) ([]reproduction.DiagnosisRow, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT breed_code, number, tattoo, date, outcome
		FROM gestation_diagnoses
		WHERE owner_user_id = $1
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reproduction.DiagnosisRow, 0)
	for rows.Next() {
		var d reproduction.DiagnosisRow
		var breedCode, number, tattoo, outcome sql.NullString
		var date sql.NullTime

		if err := rows.Scan(&breedCode, &number, &tattoo, &date, &outcome); err != nil {
			continue
		}

		d.BreedCode = breedCode.String
		d.Number = number.String
		d.Tattoo = tattoo.String
		d.Outcome = outcome.String
		if date.Valid {
			d.Date = date.Time
		}

		out = append(out, d)
	}

	return out, rows.Err()
}

func (r *SourcesRepo) EmbryoTransfers(ctx context.Context, ownerUserID string) ([]reproduction.TransferRow, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, breed_code, number, tattoo, transfer_date, outcome
		FROM embryo_transfers
		WHERE owner_user_id = $1
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reproduction.TransferRow, 0)
	for rows.Next() {
		var t reproduction.TransferRow
		var breedCode, number, tattoo, outcome sql.NullString
		var date sql.NullTime

		if err := rows.Scan(&t.ID, &breedCode, &number, &tattoo, &date, &outcome); err != nil {
			continue
		}

		t.BreedCode = breedCode.String
		t.Number = number.String
		t.Tattoo = tattoo.String
		t.Outcome = outcome.String
		if date.Valid {
			t.TransferDate = date.Time
		}

		out = append(out, t)
	}

	return out, rows.Err()
}

func (r *SourcesRepo) AndrologicalExams(ctx context.Context, ownerUserID string) ([]reproduction.ExamRow, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT id, breed_code, number, tattoo, bull, exam_date, outcome, rescheduled, reschedule_date
		FROM andrological_exams
		WHERE owner_user_id = $1
	`, ownerUserID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]reproduction.ExamRow, 0)
	for rows.Next() {
		var e reproduction.ExamRow
		var breedCode, number, tattoo, bull, outcome sql.NullString
		var examDate, reschedDate sql.NullTime
		var rescheduled sql.NullBool

		if err := rows.Scan(
			&e.ID,
			&breedCode,
			&number,
			&tattoo,
			&bull,
			&examDate,
			&outcome,
			&rescheduled,
			&reschedDate,
		); err != nil {
			continue
		}

		e.BreedCode = breedCode.String
		e.Number = number.String
		e.Tattoo = tattoo.String
		e.Bull = bull.String
		e.Outcome = outcome.String
		e.Rescheduled = rescheduled.Bool
		if examDate.Valid {
			e.ExamDate = examDate.Time
		}
		if reschedDate.Valid {
			e.RescheduleDate = reschedDate.Time
		}

		out = append(out, e)
	}

	return out, rows.Err()
}
