package validators

import (
	"errors"
	"fmt"
	"reflect"
	"sort"
	"strconv"
	"strings"
)

// TagName é a tag de struct que liga um campo a um validador (análogo ao data-validator).
const TagName = "validator"

// FieldResult is the validity of one bound field.
type FieldResult struct {
	Field     string       `json:"field"`
	Validator string       `json:"validator"`
	Valid     bool         `json:"valid"`
	Rules     []RuleResult `json:"rules,omitempty"`
}

// BorderColor retorna a cor de borda do campo.
func (f FieldResult) BorderColor() string {
	if f.Valid {
		return ColorValid
	}
	return ColorInvalid
}

// FormResult is the validation state of a whole form.
type FormResult struct {
	Fields        []FieldResult `json:"fields"`
	Errors        []string      `json:"errors,omitempty"`
	SubmitEnabled bool          `json:"submit_enabled"`
}

type boundField struct {
	name      string
	index     []int
	validator string
}

// FormValidator validates the tagged string fields of a struct. The struct is read on
// every Validate call, so later edits through the same pointer are seen.
type FormValidator struct {
	form   reflect.Value
	fields []boundField
}

// NewFormValidator binds the fields of form, which must be a pointer to a struct.
// Fields whose tag names an unknown validator are ignored.
func NewFormValidator(form interface{}) (*FormValidator, error) {
	v := reflect.ValueOf(form)
	if v.Kind() != reflect.Ptr || v.IsNil() || v.Elem().Kind() != reflect.Struct {
		return nil, errors.New("form must be a non-nil pointer to a struct")
	}

	fv := &FormValidator{form: v.Elem()}
	t := v.Elem().Type()
	for i := 0; i < t.NumField(); i++ {
		sf := t.Field(i)
		name, ok := sf.Tag.Lookup(TagName)
		if !ok || sf.Type.Kind() != reflect.String || !sf.IsExported() {
			continue
		}
		if _, known := Lookup(name); !known {
			continue
		}
		fv.fields = append(fv.fields, boundField{name: fieldName(sf), index: sf.Index, validator: name})
	}
	return fv, nil
}

func fieldName(sf reflect.StructField) string {
	if form, ok := sf.Tag.Lookup("form"); ok && form != "" {
		return form
	}
	return strings.ToLower(sf.Name)
}

// Validate checks every bound field. Submit is enabled only when all of them are valid.
func (f *FormValidator) Validate() FormResult {
	result := FormResult{SubmitEnabled: true}
	for _, bf := range f.fields {
		value := f.form.FieldByIndex(bf.index).String()
		fn, _ := Lookup(bf.validator)

		fr := FieldResult{Field: bf.name, Validator: bf.validator, Valid: fn(value)}
		if bf.validator == "senha" {
			fr.Rules = Senha(value)
		}
		if !fr.Valid {
			result.SubmitEnabled = false
		}
		result.Fields = append(result.Fields, fr)
	}
	return result
}

// Range limits a numeric field. Nil bounds are open.
type Range struct {
	Min *float64
	Max *float64
}

// Preset is the server-side validation configuration of one form.
type Preset struct {
	Required []string
	Ranges   map[string]Range
	// Custom maps a field to the validator applied to it.
	Custom map[string]string
}

func bound(v float64) *float64 { return &v }

// Presets são as configurações dos formulários de cadastro e de usuário.
var Presets = map[string]Preset{
	"cadastro": {
		Required: []string{"nome_completo", "cpf", "telefone", "endereco"},
		Ranges: map[string]Range{
			"idade":            {Min: bound(0), Max: bound(120)},
			"renda_familiar":   {Min: bound(0.01)},
			"renda_per_capita": {Min: bound(0.01)},
		},
	},
	"usuario": {
		Required: []string{"usuario", "senha"},
		Custom:   map[string]string{"senha": "senha"},
	},
}

// ValidateForm validates submitted form data against a named preset.
func ValidateForm(preset string, data map[string]string) (FormResult, error) {
	p, ok := Presets[preset]
	if !ok {
		return FormResult{}, fmt.Errorf("unknown form preset: %s", preset)
	}

	var errs []string
	errs = append(errs, RequiredFields(data, p.Required)...)
	errs = append(errs, NumericRanges(data, p.Ranges)...)

	result := FormResult{}
	customFields := make([]string, 0, len(p.Custom))
	for field := range p.Custom {
		customFields = append(customFields, field)
	}
	sort.Strings(customFields)

	for _, field := range customFields {
		name := p.Custom[field]
		value := data[field]
		fr := FieldResult{Field: field, Validator: name}
		if name == "senha" {
			var msg string
			fr.Valid, msg = SenhaMessage(value)
			fr.Rules = Senha(value)
			if !fr.Valid && value != "" {
				errs = append(errs, msg)
			}
		} else if fn, ok := Lookup(name); ok {
			fr.Valid = fn(value)
			if !fr.Valid && value != "" {
				errs = append(errs, fmt.Sprintf("Campo '%s' inválido", field))
			}
		}
		result.Fields = append(result.Fields, fr)
	}

	result.Errors = errs
	result.SubmitEnabled = len(errs) == 0
	return result, nil
}

// RequiredFields returns one message per missing field. "None" counts as missing.
func RequiredFields(data map[string]string, required []string) []string {
	var errs []string
	for _, field := range required {
		value := strings.TrimSpace(data[field])
		if value == "" || value == "None" {
			errs = append(errs, fmt.Sprintf("Campo '%s' é obrigatório", field))
		}
	}
	return errs
}

// NumericRanges checks the numeric fields present in data. Empty values are skipped.
func NumericRanges(data map[string]string, ranges map[string]Range) []string {
	fields := make([]string, 0, len(ranges))
	for field := range ranges {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	var errs []string
	for _, field := range fields {
		raw, ok := data[field]
		if !ok || raw == "" {
			continue
		}
		n, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			errs = append(errs, fmt.Sprintf("Campo '%s' deve ser um número válido", field))
			continue
		}
		r := ranges[field]
		if r.Min != nil && n < *r.Min {
			errs = append(errs, fmt.Sprintf("Campo '%s' deve ser maior que %s", field, formatBound(*r.Min)))
		}
		if r.Max != nil && n > *r.Max {
			errs = append(errs, fmt.Sprintf("Campo '%s' deve ser menor que %s", field, formatBound(*r.Max)))
		}
	}
	return errs
}

func formatBound(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}
