package utils

import (
	"wellness-availability-service/internal/app/models"

	"github.com/go-playground/validator/v10"
)

var validate *validator.Validate

func init() {
	validate = validator.New()
	validate.RegisterValidation("date_ymd", validateDateYMD)
	validate.RegisterValidation("clock_hm", validateClockHM)
	validate.RegisterValidation("weekday_token", validateWeekdayToken)
}

func ValidateStruct(s interface{}) error {
	return validate.Struct(s)
}

func validateDateYMD(fl validator.FieldLevel) bool {
	_, err := models.ParseDate(fl.Field().String())
	return err == nil
}

func validateClockHM(fl validator.FieldLevel) bool {
	_, err := models.ParseClock(fl.Field().String())
	return err == nil
}

func validateWeekdayToken(fl validator.FieldLevel) bool {
	_, ok := models.ParseWeekday(fl.Field().String())
	return ok
}
