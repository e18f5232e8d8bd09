package reproduction

import "time"

// Plazos biológicos, uno por fuente. El sistema de origen usaba valores
// distintos según el camino (276/280/285/290 días o 9 meses calendario)
// sin criterio documentado; se mantienen como constantes independientes
// hasta que producto defina uno solo. No unificar a ojo.
const (
	// Días entre la llegada de una receptora y el tacto de diagnóstico.
	DaysArrivalToDiagnosis = 20

	// Gestación estimada desde la TE registrada en la factura de llegada.
	MonthsGestationInvoice = 9

	// Reexamen andrológico para un toro no apto.
	DaysRetest = 30

	// Proyección de parto para una TE con diagnóstico positivo.
	DaysGestationConfirmed = 285
)

func forecastDiagnosis(arrival time.Time) time.Time {
	return arrival.AddDate(0, 0, DaysArrivalToDiagnosis)
}

func forecastBirthFromInvoice(transfer time.Time) time.Time {
	return transfer.AddDate(0, MonthsGestationInvoice, 0)
}

func forecastRetest(exam time.Time) time.Time {
	return exam.AddDate(0, 0, DaysRetest)
}

func forecastBirthConfirmed(transfer time.Time) time.Time {
	return transfer.AddDate(0, 0, DaysGestationConfirmed)
}
