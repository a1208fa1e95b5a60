package validator

import (
	"errors"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"leadform/pkg/logger"
	"leadform/pkg/model"
)

type LeadValidator struct {
	validate *validator.Validate
	logger   *logger.Logger
	fields   map[string]func(string) Result
}

func NewLeadValidator(log *logger.Logger) *LeadValidator {
	v := validator.New(validator.WithRequiredStructEnabled())

	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})

	tags := map[string]func(string) Result{
		"lead_name":  ValidateName,
		"lead_phone": ValidatePhone,
		"lead_email": ValidateEmail,
		"lead_age":   ValidateAge,
	}
	for tag, fn := range tags {
		if err := v.RegisterValidation(tag, fieldFunc(fn)); err != nil {
			log.Fatal("Failed to register lead validator",
				"tag", tag,
				"error", err,
			)
		}
	}

	return &LeadValidator{
		validate: v,
		logger:   log,
		fields:   tags,
	}
}

func fieldFunc(fn func(string) Result) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return fn(fl.Field().String()).Valid()
	}
}

// Validate checks every field of raw. Missing fields are reported before any
// format problem; otherwise the first failing field in name, phone, email,
// age order wins.
func (v *LeadValidator) Validate(raw model.RawLead) Result {
	trimmed := model.RawLead{
		Name:  strings.TrimSpace(raw.Name),
		Phone: strings.TrimSpace(raw.Phone),
		Email: strings.TrimSpace(raw.Email),
		Age:   strings.TrimSpace(raw.Age),
	}

	err := v.validate.Struct(&trimmed)
	if err == nil {
		return Valid()
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) || len(validationErrs) == 0 {
		v.logger.Error("Unexpected validator failure", "error", err)
		return Invalid("", ReasonMissingField, "lead could not be validated")
	}

	return v.translateValidationErrors(validationErrs, trimmed)
}

func (v *LeadValidator) translateValidationErrors(errs validator.ValidationErrors, raw model.RawLead) Result {
	for _, err := range errs {
		if err.Tag() == "required" {
			return Invalid(err.Field(), ReasonMissingField, err.Field()+" is required")
		}
	}

	first := errs[0]
	if fn, ok := v.fields[first.Tag()]; ok {
		return fn(first.Value().(string))
	}
	return Invalid(first.Field(), ReasonMissingField, first.Error())
}
