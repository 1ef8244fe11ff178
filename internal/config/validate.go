package config

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/agiangrant/stretchy/retained"
	"github.com/agiangrant/stretchy/tw"
)

var (
	validatorOnce sync.Once
	validateInst  *validator.Validate
)

// validatorInstance configures and returns the shared validator instance.
func validatorInstance() *validator.Validate {
	validatorOnce.Do(func() {
		v := validator.New()

		_ = v.RegisterValidation("color", func(fl validator.FieldLevel) bool {
			_, err := tw.ParseColor(fl.Field().String())
			return err == nil
		})
		_ = v.RegisterValidation("easing", func(fl validator.FieldLevel) bool {
			return retained.EasingByName(fl.Field().String()) != nil
		})

		validateInst = v
	})
	return validateInst
}

// ValidationError lists the fields that failed validation.
type ValidationError struct {
	Fields []FieldError
}

// FieldError is one failed constraint.
type FieldError struct {
	Field string // Namespaced field, e.g. "File.Header.Height"
	Tag   string // Failed constraint, e.g. "gt"
	Param string
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		if f.Param != "" {
			parts = append(parts, fmt.Sprintf("%s: failed %s=%s", f.Field, f.Tag, f.Param))
		} else {
			parts = append(parts, fmt.Sprintf("%s: failed %s", f.Field, f.Tag))
		}
	}
	return "invalid configuration: " + strings.Join(parts, "; ")
}

// Validate checks struct tags on v and translates failures into a *ValidationError.
func Validate(v any) error {
	err := validatorInstance().Struct(v)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return fmt.Errorf("validate: %w", err)
	}

	out := &ValidationError{Fields: make([]FieldError, 0, len(verrs))}
	for _, fe := range verrs {
		out.Fields = append(out.Fields, FieldError{
			Field: fe.Namespace(),
			Tag:   fe.Tag(),
			Param: fe.Param(),
		})
	}
	return out
}
