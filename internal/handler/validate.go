package handler

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/sakif/reconnect/internal/apperror"
	"github.com/sakif/reconnect/internal/model"
)

var validate = newValidator()

// newValidator reports fields by their JSON names and knows the closed
// onboarding value sets.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})

	mustRegister(v, "tendency", func(fl validator.FieldLevel) bool {
		return model.Tendency(fl.Field().String()).Valid()
	})
	mustRegister(v, "breakup_reason", func(fl validator.FieldLevel) bool {
		return model.BreakupReason(fl.Field().String()).Valid()
	})
	mustRegister(v, "strategy_type", func(fl validator.FieldLevel) bool {
		return model.StrategyType(fl.Field().String()).Valid()
	})
	return v
}

func mustRegister(v *validator.Validate, tag string, fn validator.Func) {
	if err := v.RegisterValidation(tag, fn); err != nil {
		panic(fmt.Sprintf("handler: registering %s validation: %v", tag, err))
	}
}

// validateStruct returns the first failing field as a validation AppError.
func validateStruct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		// InvalidValidationError: s was not a struct.
		return fmt.Errorf("handler: validating %T: %w", s, err)
	}
	fe := fieldErrs[0]
	return apperror.ValidationFailed(fe.Field(), fieldMessage(fe))
}

func fieldMessage(fe validator.FieldError) string {
	name := fe.Field()
	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "email":
		return name + " must be a valid email address"
	case "min":
		return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", name, fe.Param())
	case "datetime":
		return name + " must be a date in YYYY-MM-DD format"
	case "tendency":
		return name + " must be analytical or emotional"
	case "breakup_reason":
		reasons := make([]string, len(model.BreakupReasons))
		for i, r := range model.BreakupReasons {
			reasons[i] = string(r)
		}
		return fmt.Sprintf("%s must be one of: %s", name, strings.Join(reasons, ", "))
	case "strategy_type":
		return name + " must be analytical, balanced or emotional"
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", name, fe.Param())
	}
	return fmt.Sprintf("%s failed the %s check", name, fe.Tag())
}
