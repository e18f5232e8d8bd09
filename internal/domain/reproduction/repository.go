package reproduction

import (
	"context"
	"time"
)

// Sources es la vista de solo lectura sobre el almacén que consume el
// motor. Cada método corresponde a una fuente independiente; el motor no
// persiste nada ni muta registros de origen.
type Sources interface {
	ManualEvents(ctx context.Context, ownerUserID string) ([]ManualRow, error)
	ReceptorArrivals(ctx context.Context, ownerUserID string) ([]ReceptorRow, error)
	Diagnoses(ctx context.Context, ownerUserID string) ([]DiagnosisRow, error)
	EmbryoTransfers(ctx context.Context, ownerUserID string) ([]TransferRow, error)
	AndrologicalExams(ctx context.Context, ownerUserID string) ([]ExamRow, error)
}

// ManualRow es una fila cruda del calendario manual.
// Fecha cero = fila ilegible; el adapter la descarta sin cortar el batch.
type ManualRow struct {
	ID          string
	Title       string
	AnimalID    string
	BreedCode   string
	Number      string
	Date        time.Time
	Type        string
	Description string
	Done        bool
}

// ReceptorRow es una línea de factura marcada como compra de receptora.
// ArrivalDate es la fecha de la factura; TransferDate es la TE registrada
// en la misma factura (opcional).
type ReceptorRow struct {
	InvoiceID string
	ItemID    string

	ArrivalDate  time.Time
	TransferDate time.Time

	Tattoo         string
	ReceptorLetter string
	ReceptorNumber string

	Supplier      string
	InvoiceNumber string
}

// DiagnosisRow es un resultado de tacto (DG).
type DiagnosisRow struct {
	BreedCode string
	Number    string
	Tattoo    string
	Date      time.Time
	Outcome   string
}

// TransferRow es un registro de transferencia embrionaria, con resultado
// de diagnóstico propio cuando lo tiene.
type TransferRow struct {
	ID           string
	BreedCode    string
	Number       string
	Tattoo       string
	TransferDate time.Time
	Outcome      string
}

// ExamRow es un examen andrológico.
type ExamRow struct {
	ID        string
	BreedCode string
	Number    string
	Tattoo    string
	Bull      string // nombre del toro, para el título

	ExamDate       time.Time
	Outcome        string
	Rescheduled    bool
	RescheduleDate time.Time
}
