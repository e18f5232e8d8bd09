package reproduction

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// DiagnosisIndex es la proyección reducida del libro de diagnósticos que
// se usa solo para decidir supresiones. Se construye una vez por request,
// antes de correr los adapters que la consultan, y de ahí en más es de
// solo lectura.
type DiagnosisIndex struct {
	diagnosed map[string]struct{}
	negative  map[string]struct{}
}

// BuildDiagnosisIndex indexa cada token derivable (composite, RG sin
// ceros, tatuaje) de cada animal diagnosticado: un set para "tiene
// diagnóstico" y otro para "negativa/vacía". Las TE que traen resultado
// propio cuentan como diagnóstico también.
func BuildDiagnosisIndex(diagnoses []DiagnosisRow, transfers []TransferRow) *DiagnosisIndex {
	ix := &DiagnosisIndex{
		diagnosed: make(map[string]struct{}),
		negative:  make(map[string]struct{}),
	}

	for _, d := range diagnoses {
		ix.add(NormalizeKey(d.BreedCode, d.Number, d.Tattoo), IsNegativeOutcome(d.Outcome))
	}
	for _, t := range transfers {
		if strings.TrimSpace(t.Outcome) == "" {
			continue
		}
		ix.add(NormalizeKey(t.BreedCode, t.Number, t.Tattoo), IsNegativeOutcome(t.Outcome))
	}

	return ix
}

func (ix *DiagnosisIndex) add(k AnimalKey, negative bool) {
	for _, tok := range k.Tokens() {
		ix.diagnosed[tok] = struct{}{}
		if negative {
			ix.negative[tok] = struct{}{}
		}
	}
}

// HasDiagnosis responde si algún token de la clave aparece diagnosticado.
func (ix *DiagnosisIndex) HasDiagnosis(k AnimalKey) bool {
	return ix.hit(ix.diagnosed, k)
}

// IsNegative responde si algún token de la clave aparece con resultado
// negativa/vacía. Un negativo invalida el pronóstico de parto entero.
func (ix *DiagnosisIndex) IsNegative(k AnimalKey) bool {
	return ix.hit(ix.negative, k)
}

func (ix *DiagnosisIndex) hit(set map[string]struct{}, k AnimalKey) bool {
	for _, tok := range k.Tokens() {
		if _, ok := set[tok]; ok {
			return true
		}
	}
	return false
}

// Vocabulario de resultados. Chico y centralizado a propósito: la
// clasificación tiene una sola definición y una sola superficie de test,
// no se reimplementa por call site. Comparación sin mayúsculas ni
// acentos ("Vacía" == "vacia").
var negativeWords = []string{"negativ", "vacia", "vazia", "empty"}

var positiveWords = []string{"positiv", "prenha", "prenada", "pregnant"}

// IsNegativeOutcome clasifica un resultado como negativa/vacía.
// "no" cuenta solo como palabra completa ("no", "no preñada"), nunca
// como substring: "normal" no es un negativo.
func IsNegativeOutcome(outcome string) bool {
	s := foldOutcome(outcome)
	if s == "" {
		return false
	}
	for _, w := range negativeWords {
		if strings.Contains(s, w) {
			return true
		}
	}
	for _, f := range strings.Fields(s) {
		if f == "no" {
			return true
		}
	}
	return false
}

// IsPositiveOutcome clasifica un resultado como preñez confirmada.
func IsPositiveOutcome(outcome string) bool {
	s := foldOutcome(outcome)
	if s == "" || IsNegativeOutcome(outcome) {
		return false
	}
	for _, w := range positiveWords {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}

var accentStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

func foldOutcome(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	out, _, err := transform.String(accentStripper, s)
	if err != nil {
		return s
	}
	return out
}
