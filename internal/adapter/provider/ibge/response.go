package ibge

// apiUF represents one federative unit from the IBGE localidades API.
type apiUF struct {
	ID    int    `json:"id"`
	Sigla string `json:"sigla"`
	Nome  string `json:"nome"`
}

// apiMunicipio represents one municipality from the IBGE localidades API.
// The nested microrregiao/mesorregiao detail is not needed and left unmapped.
type apiMunicipio struct {
	ID   int    `json:"id"`
	Nome string `json:"nome"`
}
