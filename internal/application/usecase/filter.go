package usecase

import (
	"net/url"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

// ControlSource exposes the filter controls of a surface.
type ControlSource interface {
	// Lookup returns the current value of a control and whether the control exists.
	Lookup(name string) (string, bool)
}

// ReadFilter lê periodo e bairro da fonte. Controles ausentes ou vazios viram "todos".
func ReadFilter(src ControlSource) entity.FilterState {
	filter := entity.DefaultFilter()
	if src == nil {
		return filter
	}
	if v, ok := src.Lookup("periodo"); ok && v != "" {
		filter.Periodo = v
	}
	if v, ok := src.Lookup("bairro"); ok && v != "" {
		filter.Bairro = v
	}
	return filter
}

// ValuesSource reads controls from a submitted HTML form or query string.
type ValuesSource url.Values

func (s ValuesSource) Lookup(name string) (string, bool) {
	vs, ok := s[name]
	if !ok || len(vs) == 0 {
		return "", false
	}
	return vs[0], true
}

// MapSource reads controls from a plain map (config file defaults).
type MapSource map[string]string

func (s MapSource) Lookup(name string) (string, bool) {
	v, ok := s[name]
	return v, ok
}

// ChainSource consulta as fontes em ordem e usa o primeiro valor não vazio.
type ChainSource []ControlSource

func (c ChainSource) Lookup(name string) (string, bool) {
	found := false
	for _, src := range c {
		if src == nil {
			continue
		}
		if v, ok := src.Lookup(name); ok {
			if v != "" {
				return v, true
			}
			found = true
		}
	}
	return "", found
}
