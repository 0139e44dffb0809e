package validator

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type sample struct {
	Code  string `form:"code" validate:"required,upper"`
	Limit int    `json:"limit" validate:"omitempty,min=1,max=5"`
}

func TestFieldErrorsUseFormAndJSONNames(t *testing.T) {
	v := New()
	if err := v.RegisterValidation("upper", func(fl validator.FieldLevel) bool {
		s := fl.Field().String()
		return s == strings.ToUpper(s)
	}); err != nil {
		t.Fatalf("register: %v", err)
	}

	err := v.Struct(sample{Code: "abc", Limit: 9})
	if err == nil {
		t.Fatalf("expected validation error")
	}

	fields := FieldErrors(err)
	if fields["code"] != "upper" {
		t.Fatalf("expected code to fail upper, got %v", fields)
	}
	if fields["limit"] != "max" {
		t.Fatalf("expected limit to fail max, got %v", fields)
	}
}

func TestFieldErrorsIgnoresOtherErrors(t *testing.T) {
	if got := FieldErrors(nil); got != nil {
		t.Fatalf("expected nil for nil error, got %v", got)
	}
}
