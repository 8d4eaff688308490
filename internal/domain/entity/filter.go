package entity

// DefaultFilterValue é o valor que significa "sem filtro".
const DefaultFilterValue = "todos"

// FilterState represents the period/neighborhood narrowing applied to every category query.
type FilterState struct {
	Periodo string `json:"periodo"`
	Bairro  string `json:"bairro"`
}

// DefaultFilter retorna um filtro com ambos os campos em "todos".
func DefaultFilter() FilterState {
	return FilterState{
		Periodo: DefaultFilterValue,
		Bairro:  DefaultFilterValue,
	}
}

// IsDefault reports whether neither field narrows the query.
func (f FilterState) IsDefault() bool {
	return f.Periodo == DefaultFilterValue && f.Bairro == DefaultFilterValue
}
