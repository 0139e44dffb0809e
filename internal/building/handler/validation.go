package handler

import (
	"github.com/go-playground/validator/v10"

	"buildinghealth_backend/internal/building/domain"
)

// validBBL accepts any value that normalizes to a ten-digit BBL.
func validBBL(fl validator.FieldLevel) bool {
	_, err := domain.ParseBBL(fl.Field().String())
	return err == nil
}
