package web

import (
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"BBS-backend/internal/domain"
)

// RegisterValidators adds the custom binding rules used by request DTOs:
//
//	civildate  YYYY-MM-DD, optionally followed by a time that is dropped
//	clocktime  string in HH:MM or HH:MM:SS form
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	if err := v.RegisterValidation("civildate", civilDate); err != nil {
		return err
	}
	return v.RegisterValidation("clocktime", clockTime)
}

func civilDate(fl validator.FieldLevel) bool {
	_, err := domain.ParseDate(fl.Field().String())
	return err == nil
}

func clockTime(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if _, err := time.Parse("15:04", s); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", s)
	return err == nil
}
