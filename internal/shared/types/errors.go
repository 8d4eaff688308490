package types

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrTimeout             = errors.New("timeout")
	ErrAllCategoriesFailed = errors.New("none of the chart categories could be loaded")
	ErrInvalidBaseURL      = errors.New("invalid base URL for the AMEG API")
	ErrUnsupportedConfig   = errors.New("unsupported config file format")
	ErrUnknownSlot         = errors.New("unknown chart slot")
)

// FetchError é retornado quando a requisição de uma categoria falha (HTTP não-2xx, rede ou timeout).
type FetchError struct {
	Category   string
	StatusCode int
	Body       string
	Cause      error
}

func (e *FetchError) Error() string {
	if e.StatusCode != 0 {
		body := strings.TrimSpace(e.Body)
		if body == "" {
			return fmt.Sprintf("fetch %s: HTTP %d", e.Category, e.StatusCode)
		}
		return fmt.Sprintf("fetch %s: HTTP %d: %s", e.Category, e.StatusCode, body)
	}
	return fmt.Sprintf("fetch %s: %v", e.Category, e.Cause)
}

func (e *FetchError) Unwrap() error { return e.Cause }

// Timeout reports whether the request hit the bounded request timeout.
func (e *FetchError) Timeout() bool { return errors.Is(e.Cause, ErrTimeout) }

// ParseError é retornado quando a resposta de uma categoria não é um dataset válido.
type ParseError struct {
	Category string
	Cause    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s: %v", e.Category, e.Cause)
}

func (e *ParseError) Unwrap() error { return e.Cause }

// DomMissingError indica que o ponto de montagem de um gráfico não existe na superfície.
type DomMissingError struct {
	Slot string
}

func (e *DomMissingError) Error() string {
	return fmt.Sprintf("mount point %q not found", e.Slot)
}

// CategoryOf returns the category named by a FetchError or ParseError in err's chain.
func CategoryOf(err error) (string, bool) {
	var fe *FetchError
	if errors.As(err, &fe) {
		return fe.Category, true
	}
	var pe *ParseError
	if errors.As(err, &pe) {
		return pe.Category, true
	}
	return "", false
}

// ErrNoData indica que o gráfico não tem dados carregados para exportar.
var ErrNoData = errors.New("no data loaded for chart")
