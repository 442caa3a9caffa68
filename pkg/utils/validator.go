package utils

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateStruct ตรวจสอบ struct ตาม validate tags
func ValidateStruct(s any) error {
	return validate.Struct(s)
}

// ValidationError รายละเอียด validation ต่อ field
type ValidationError struct {
	Field   string `json:"field"`
	Tag     string `json:"tag"`
	Message string `json:"message"`
}

// GetValidationErrors แปลง validator error เป็น list ที่ frontend อ่านได้
func GetValidationErrors(err error) []ValidationError {
	var errors []ValidationError

	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return []ValidationError{{Field: "", Tag: "", Message: err.Error()}}
	}

	for _, fieldErr := range validationErrors {
		errors = append(errors, ValidationError{
			Field:   strings.ToLower(fieldErr.Field()),
			Tag:     fieldErr.Tag(),
			Message: validationMessage(fieldErr),
		})
	}

	return errors
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", fe.Field())
	case "email":
		return fmt.Sprintf("%s must be a valid email address", fe.Field())
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", fe.Field(), fe.Param())
	case "alphanum":
		return fmt.Sprintf("%s must contain only letters and numbers", fe.Field())
	default:
		return fmt.Sprintf("%s is invalid", fe.Field())
	}
}
