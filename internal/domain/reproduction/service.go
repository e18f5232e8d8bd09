package reproduction

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ZecaRomero/beef-sync-2-sub006/internal/platform/logger"
)

var (
	ErrInvalidInput = errors.New("invalid input")

	// ErrSourcesUnavailable: ninguna fuente respondió; no hay calendario
	// que devolver (y no se fabrica uno parcial de la nada).
	ErrSourcesUnavailable = errors.New("all event sources unavailable")
)

// Service arma el calendario reproductivo consolidado: lee las fuentes,
// construye el índice de diagnósticos, corre los adapters y proyecta el
// resultado. Todo vive dentro del request; no hay cache ni estado
// derivado persistido.
type Service struct {
	sources Sources
	log     logger.Logger
}

func NewService(sources Sources, log logger.Logger) *Service {
	if log == nil {
		log = logger.New(logger.Options{})
	}
	return &Service{sources: sources, log: log}
}

type Filter struct {
	From   *time.Time
	To     *time.Time
	Type   EventType
	Query  string
	Limit  int
	Offset int
}

// Page es la proyección final más los datos de paginado que necesita la UI.
type Page struct {
	Items  []CandidateEvent
	Total  int
	Limit  int
	Offset int
}

// Calendar devuelve el calendario reconciliado del rebaño de un dueño.
func (s *Service) Calendar(ctx context.Context, ownerUserID string, f Filter) (Page, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Page{}, ErrInvalidInput
	}

	var (
		manual    []ManualRow
		receptors []ReceptorRow
		diagnoses []DiagnosisRow
		transfers []TransferRow
		exams     []ExamRow

		errManual, errReceptors, errDiagnoses, errTransfers, errExams error
	)

	// Las cinco lecturas son independientes entre sí; van en paralelo.
	// Los closures devuelven nil siempre: una fuente caída no cancela a
	// las demás, se resuelve después del Wait.
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { manual, errManual = s.sources.ManualEvents(gctx, ownerUserID); return nil })
	g.Go(func() error { receptors, errReceptors = s.sources.ReceptorArrivals(gctx, ownerUserID); return nil })
	g.Go(func() error { diagnoses, errDiagnoses = s.sources.Diagnoses(gctx, ownerUserID); return nil })
	g.Go(func() error { transfers, errTransfers = s.sources.EmbryoTransfers(gctx, ownerUserID); return nil })
	g.Go(func() error { exams, errExams = s.sources.AndrologicalExams(gctx, ownerUserID); return nil })
	_ = g.Wait()

	failures := s.logFailures(map[string]error{
		"manual_events":      errManual,
		"receptor_arrivals":  errReceptors,
		"diagnoses":          errDiagnoses,
		"embryo_transfers":   errTransfers,
		"andrological_exams": errExams,
	})
	if failures == 5 {
		return Page{}, ErrSourcesUnavailable
	}

	// El índice de diagnósticos tiene que estar completo antes de que
	// receptoras apliquen supresión: acá ya terminó el Wait, así que el
	// orden queda garantizado por construcción. Si alguna de las dos
	// lecturas del ledger falló, el índice queda nil y los adapters que
	// dependen de él no pronostican nada: menos completitud antes que un
	// pronóstico que un negativo debía suprimir.
	var dx *DiagnosisIndex
	if errDiagnoses == nil && errTransfers == nil {
		dx = BuildDiagnosisIndex(diagnoses, transfers)
	}

	events := manualEvents(manual)
	events = append(events, receptorEvents(receptors, dx)...)
	events = append(events, retestEvents(exams)...)

	return project(events, f), nil
}

// BirthForecasts devuelve solo los partos previstos: los de la factura de
// receptoras (TE+9 meses) más los de TE con diagnóstico positivo
// (DaysGestationConfirmed). Los plazos difieren entre sí a propósito.
func (s *Service) BirthForecasts(ctx context.Context, ownerUserID string, f Filter) (Page, error) {
	ownerUserID = strings.TrimSpace(ownerUserID)
	if ownerUserID == "" {
		return Page{}, ErrInvalidInput
	}

	var (
		receptors []ReceptorRow
		diagnoses []DiagnosisRow
		transfers []TransferRow

		errReceptors, errDiagnoses, errTransfers error
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error { receptors, errReceptors = s.sources.ReceptorArrivals(gctx, ownerUserID); return nil })
	g.Go(func() error { diagnoses, errDiagnoses = s.sources.Diagnoses(gctx, ownerUserID); return nil })
	g.Go(func() error { transfers, errTransfers = s.sources.EmbryoTransfers(gctx, ownerUserID); return nil })
	_ = g.Wait()

	failures := s.logFailures(map[string]error{
		"receptor_arrivals": errReceptors,
		"diagnoses":         errDiagnoses,
		"embryo_transfers":  errTransfers,
	})
	if failures == 3 {
		return Page{}, ErrSourcesUnavailable
	}

	// Mismo criterio que en Calendar: ledger caído = índice nil = el
	// camino de factura no emite partos previstos.
	var dx *DiagnosisIndex
	if errDiagnoses == nil && errTransfers == nil {
		dx = BuildDiagnosisIndex(diagnoses, transfers)
	}

	events := make([]CandidateEvent, 0)
	for _, e := range receptorEvents(receptors, dx) {
		if e.Type == EventTypePredictedBirth {
			events = append(events, e)
		}
	}
	events = append(events, confirmedBirths(transfers)...)

	// La misma receptora puede salir por los dos caminos; si las fechas
	// coinciden es el mismo parto.
	events = dedupe(events)

	f.Type = EventTypePredictedBirth
	return project(events, f), nil
}

// logFailures registra cada fuente caída y devuelve cuántas fallaron.
// Una fuente caída degrada el calendario (aporta lista vacía), no lo tira.
func (s *Service) logFailures(errs map[string]error) int {
	failures := 0
	for name, err := range errs {
		if err == nil {
			continue
		}
		failures++
		s.log.Warn("event source unavailable", map[string]any{
			"source": name,
			"err":    err.Error(),
		})
	}
	return failures
}

// project aplica filtros, ordena y pagina.
func project(events []CandidateEvent, f Filter) Page {
	filtered := make([]CandidateEvent, 0, len(events))
	for _, e := range events {
		if matchesFilter(e, f) {
			filtered = append(filtered, e)
		}
	}

	// Orden total por fecha descendente. Una fecha cero (fila legacy
	// ilegible que algún source dejó pasar) va al final, nunca rompe el
	// sort.
	sort.SliceStable(filtered, func(i, j int) bool {
		di, dj := filtered[i].Date, filtered[j].Date
		if di.IsZero() {
			return false
		}
		if dj.IsZero() {
			return true
		}
		return di.After(dj)
	})

	total := len(filtered)

	limit := f.Limit
	if limit <= 0 {
		limit = 50
	}
	if limit > 200 {
		limit = 200
	}

	offset := f.Offset
	if offset < 0 {
		offset = 0
	}
	if offset > total {
		offset = total
	}

	end := offset + limit
	if end > total {
		end = total
	}

	return Page{
		Items:  filtered[offset:end],
		Total:  total,
		Limit:  limit,
		Offset: offset,
	}
}

func matchesFilter(e CandidateEvent, f Filter) bool {
	if f.Type != "" && e.Type != f.Type {
		return false
	}

	if f.From != nil || f.To != nil {
		if e.Date.IsZero() {
			return false
		}
		if f.From != nil && e.Date.Before(*f.From) {
			return false
		}
		if f.To != nil && e.Date.After(*f.To) {
			return false
		}
	}

	if q := strings.ToLower(strings.TrimSpace(f.Query)); q != "" {
		hay := strings.ToLower(e.Title+" "+e.Description) + " " +
			e.Key.Composite + " " + e.Key.NumberNoZeros + " " + e.Key.Tattoo
		if !strings.Contains(hay, q) {
			return false
		}
	}

	return true
}
