package usecase

import (
	"net/url"

	"github.com/ameg/ameg-charts-go/internal/domain/entity"
)

// BuildQuery converte o filtro em parâmetros de URL, omitindo os valores "todos".
// A saída é canônica (chaves ordenadas) e não inclui o "?".
func BuildQuery(filter entity.FilterState) string {
	params := url.Values{}
	if filter.Periodo != "" && filter.Periodo != entity.DefaultFilterValue {
		params.Set("periodo", filter.Periodo)
	}
	if filter.Bairro != "" && filter.Bairro != entity.DefaultFilterValue {
		params.Set("bairro", filter.Bairro)
	}
	return params.Encode()
}
