package domain

// State is a first-level geographic subdivision as served by the IBGE
// localidades API. Immutable from this service's perspective.
type State struct {
	ID    int
	Sigla string // 2-letter code, e.g. "PI"
	Nome  string
}

// Municipality is a second-level subdivision belonging to one state.
type Municipality struct {
	ID          int
	Nome        string
	EstadoSigla string
}
