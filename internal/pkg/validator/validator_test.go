package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"required,notblank,max=10"`
	Email string `json:"email" validate:"omitempty,email"`
	Day   string `json:"day" validate:"required,datetime=2006-01-02"`
	Color string `json:"color" validate:"required,test_color"`
}

func TestValidate(t *testing.T) {
	RegisterEnum("test_color", "red", "green")

	t.Run("valid", func(t *testing.T) {
		errs := Validate(&sample{Name: "Rex", Day: "2024-06-10", Color: "red"})
		assert.Nil(t, errs)
	})

	t.Run("field errors use json names", func(t *testing.T) {
		errs := Validate(&sample{Name: "   ", Email: "nope", Day: "10/06/2024", Color: "blue"})
		assert.Equal(t, "This field is required", errs["name"])
		assert.Equal(t, "Invalid email format", errs["email"])
		assert.Equal(t, "Invalid date, expected YYYY-MM-DD", errs["day"])
		assert.Equal(t, "Must be one of: red, green", errs["color"])
	})
}
