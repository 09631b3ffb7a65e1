package validators

import (
	"errors"
	"net/http"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sample struct {
	Email  string `json:"email,omitempty" validate:"required,email"`
	Hidden string `json:"-" validate:"required"`
	Plain  string `validate:"required"`
}

func TestNew_UsesJSONNames(t *testing.T) {
	err := New().Struct(sample{})
	var verrs validator.ValidationErrors
	require.True(t, errors.As(err, &verrs))

	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, fe.Field())
	}
	assert.Contains(t, fields, "email")
	assert.Contains(t, fields, "Plain")
}

func TestCustomValidator(t *testing.T) {
	v := NewValidator()

	err := v.Validate(&sample{Email: "nope", Hidden: "x", Plain: "x"})
	var he *echo.HTTPError
	require.ErrorAs(t, err, &he)
	assert.Equal(t, http.StatusBadRequest, he.Code)

	assert.NoError(t, v.Validate(&sample{Email: "a@b.com", Hidden: "x", Plain: "x"}))
}

func TestNew_NotBlank(t *testing.T) {
	type note struct {
		Text string `json:"text" validate:"required,notblank"`
	}
	v := New()
	assert.Error(t, v.Struct(note{Text: " \t\n "}))
	assert.NoError(t, v.Struct(note{Text: " hi "}))
}
