package reproduction

import (
	"strings"
	"unicode"
)

// AnimalKey es la identidad normalizada de un animal para correlación difusa.
// Las tablas de origen nunca compartieron un FK confiable: un registro puede
// venir con serie+RG, con el RG sin ceros a la izquierda, o solo con el
// tatuaje (que a veces repite la serie y a veces no). Se guardan todos los
// tokens y el match prueba cada uno; ningún adapter puede asumir cuál
// representación usó la carga.
type AnimalKey struct {
	BreedCode     string
	Number        string
	NumberNoZeros string
	Tattoo        string

	// Composite es serie+RG en minúsculas y sin espacios. Se calcula
	// siempre (puede quedar vacío) para que los lookups posteriores no
	// tengan que chequear nil.
	Composite string
}

// NormalizeKey arma la clave a partir de los fragmentos crudos.
func NormalizeKey(breedCode, number, tattoo string) AnimalKey {
	breedCode = stripSpaces(breedCode)
	number = stripSpaces(number)
	tattoo = strings.ToLower(stripSpaces(tattoo))

	noZeros := ""
	if number != "" {
		noZeros = strings.TrimLeft(number, "0")
		if noZeros == "" {
			// "000" se normaliza a "0", nunca a cadena vacía.
			noZeros = "0"
		}
		noZeros = strings.ToLower(noZeros)
	}

	return AnimalKey{
		BreedCode:     breedCode,
		Number:        number,
		NumberNoZeros: noZeros,
		Tattoo:        tattoo,
		Composite:     strings.ToLower(breedCode + number),
	}
}

// Matches decide si dos claves refieren al mismo animal: alcanza con que
// coincida cualquiera de los tokens (composite, RG sin ceros, tatuaje).
// La amplitud es deliberada: la carga de datos es inconsistente con el
// padding y con si la serie se repite en el tatuaje.
func (k AnimalKey) Matches(other AnimalKey) bool {
	if k.Composite != "" && k.Composite == other.Composite {
		return true
	}
	if k.NumberNoZeros != "" && k.NumberNoZeros == other.NumberNoZeros {
		return true
	}
	if k.Tattoo != "" && k.Tattoo == other.Tattoo {
		return true
	}
	return false
}

// Tokens devuelve los tokens no vacíos derivables de la clave, tal como se
// insertan en los sets del índice de diagnósticos. Van sin prefijo de tipo:
// un tatuaje "rpt1234" tiene que pegarle a un composite "rpt1234" cargado
// en otra tabla.
func (k AnimalKey) Tokens() []string {
	out := make([]string, 0, 3)
	if k.Composite != "" {
		out = append(out, k.Composite)
	}
	if k.NumberNoZeros != "" {
		out = append(out, k.NumberNoZeros)
	}
	if k.Tattoo != "" {
		out = append(out, k.Tattoo)
	}
	return out
}

// IsZero indica que no se pudo derivar ningún token.
func (k AnimalKey) IsZero() bool {
	return k.Composite == "" && k.NumberNoZeros == "" && k.Tattoo == ""
}

func stripSpaces(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}
