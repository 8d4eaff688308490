package validators

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCPF(t *testing.T) {
	assert.True(t, CPF("11144477735"))
	assert.True(t, CPF("111.444.777-35"))
	assert.False(t, CPF("11111111111"))
	assert.False(t, CPF("123"))
	assert.False(t, CPF("11144477736"))
	assert.False(t, CPF(""))
}

func TestTelefone(t *testing.T) {
	assert.True(t, Telefone("(11) 3456-7890"))
	assert.True(t, Telefone("11 98765-4321"))
	assert.False(t, Telefone("98765-4321"))
	assert.False(t, Telefone("+55 11 98765-4321"))
}

func TestEmail(t *testing.T) {
	assert.True(t, Email("ana@ameg.org.br"))
	assert.False(t, Email("ana@ameg"))
	assert.False(t, Email("ana silva@ameg.org"))
	assert.False(t, Email(""))
}

func TestSenha(t *testing.T) {
	rules := Senha("abc")
	require.Len(t, rules, 4)
	assert.False(t, rules[0].Passed)
	assert.False(t, rules[1].Passed)
	assert.True(t, rules[2].Passed)
	assert.False(t, rules[3].Passed)
	assert.Equal(t, "❌", rules[0].Icon())
	assert.Equal(t, "✅", rules[2].Icon())

	assert.True(t, SenhaValid("Segura123"))
	assert.False(t, SenhaValid("segura123"))

	ok, msg := SenhaMessage("Segura12")
	assert.True(t, ok)
	assert.Equal(t, "Senha válida", msg)
	_, msg = SenhaMessage("SEGURA123")
	assert.Equal(t, "Senha deve conter pelo menos uma letra minúscula", msg)
	_, msg = SenhaMessage("")
	assert.Equal(t, "Senha é obrigatória", msg)
}

type signupForm struct {
	Nome     string
	CPF      string `validator:"cpf"`
	Email    string `validator:"email" form:"e-mail"`
	Senha    string `validator:"senha"`
	Apelido  string `validator:"desconhecido"`
	Telefone int    `validator:"telefone"`
}

func TestFormValidator(t *testing.T) {
	form := &signupForm{CPF: "11144477735", Email: "ana@ameg.org.br", Senha: "fraca"}
	fv, err := NewFormValidator(form)
	require.NoError(t, err)

	res := fv.Validate()
	require.Len(t, res.Fields, 3)
	assert.Equal(t, "e-mail", res.Fields[1].Field)
	assert.False(t, res.SubmitEnabled)
	assert.Equal(t, ColorInvalid, res.Fields[2].BorderColor())
	assert.Len(t, res.Fields[2].Rules, 4)

	form.Senha = "Forte1234"
	res = fv.Validate()
	assert.True(t, res.SubmitEnabled)
	assert.Equal(t, ColorValid, res.Fields[0].BorderColor())
}

func TestNewFormValidator_RejectsNonPointer(t *testing.T) {
	_, err := NewFormValidator(signupForm{})
	assert.Error(t, err)
}

func TestValidateForm_Cadastro(t *testing.T) {
	res, err := ValidateForm("cadastro", map[string]string{
		"nome_completo":    "Maria",
		"cpf":              "None",
		"telefone":         "  ",
		"endereco":         "Rua A",
		"idade":            "130",
		"renda_familiar":   "0",
		"renda_per_capita": "abc",
	})
	require.NoError(t, err)
	assert.False(t, res.SubmitEnabled)
	assert.Equal(t, []string{
		"Campo 'cpf' é obrigatório",
		"Campo 'telefone' é obrigatório",
		"Campo 'idade' deve ser menor que 120",
		"Campo 'renda_familiar' deve ser maior que 0.01",
		"Campo 'renda_per_capita' deve ser um número válido",
	}, res.Errors)
}

func TestValidateForm_Usuario(t *testing.T) {
	res, err := ValidateForm("usuario", map[string]string{"usuario": "ana", "senha": "Segura123"})
	require.NoError(t, err)
	assert.True(t, res.SubmitEnabled)

	res, err = ValidateForm("usuario", map[string]string{"usuario": "ana", "senha": "curta"})
	require.NoError(t, err)
	assert.Equal(t, []string{"Senha deve ter pelo menos 8 caracteres"}, res.Errors)

	_, err = ValidateForm("outro", nil)
	assert.Error(t, err)
}
