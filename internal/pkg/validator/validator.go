package validator

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
)

// Validator instance
var validate *validator.Validate

func init() {
	validate = validator.New()

	// Use JSON tag names in error messages
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	validate.RegisterValidation("notblank", func(fl validator.FieldLevel) bool {
		return strings.TrimSpace(fl.Field().String()) != ""
	})
}

// enumMessages holds the error text for tags registered with RegisterEnum
var enumMessages = map[string]string{}

// RegisterEnum registers a tag that accepts exactly one of values.
// Domains call it from init so the allowed set lives next to the type it describes.
func RegisterEnum(tag string, values ...string) {
	allowed := make(map[string]struct{}, len(values))
	for _, v := range values {
		allowed[v] = struct{}{}
	}

	validate.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		_, ok := allowed[fl.Field().String()]
		return ok
	})
	enumMessages[tag] = "Must be one of: " + strings.Join(values, ", ")
}

// Validate validates a struct and returns a map of field errors
func Validate(s interface{}) map[string]string {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"_": err.Error()}
	}

	errors := make(map[string]string)
	for _, err := range validationErrors {
		field := err.Field()
		switch err.Tag() {
		case "required", "notblank":
			errors[field] = "This field is required"
		case "email":
			errors[field] = "Invalid email format"
		case "min":
			errors[field] = "Value is too short (min: " + err.Param() + ")"
		case "max":
			errors[field] = "Value is too long (max: " + err.Param() + ")"
		case "gt", "gte":
			errors[field] = "Value must be greater than " + err.Param()
		case "url":
			errors[field] = "Invalid URL format"
		case "datetime":
			errors[field] = "Invalid date, expected YYYY-MM-DD"
		case "oneof":
			errors[field] = "Must be one of: " + strings.ReplaceAll(err.Param(), " ", ", ")
		default:
			if msg, ok := enumMessages[err.Tag()]; ok {
				errors[field] = msg
			} else {
				errors[field] = "Invalid value"
			}
		}
	}

	return errors
}

// ValidateVar validates a single variable
func ValidateVar(field interface{}, tag string) error {
	return validate.Var(field, tag)
}
