package validation

import (
	"fmt"
	"net/url"
	"reflect"
	"sort"
	"strings"

	"github.com/alexivanou/composer-atlas/internal/model"
	"github.com/go-playground/form"
	"github.com/go-playground/validator/v10"
)

// Validator decodes and validates form submissions
type Validator struct {
	decoder  *form.Decoder
	validate *validator.Validate
}

// New creates a validator reporting errors under the form field names
func New() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("reason", func(fl validator.FieldLevel) bool {
		return model.Reason(fl.Field().String()).Valid()
	})

	return &Validator{
		decoder:  form.NewDecoder(),
		validate: v,
	}
}

// City decodes and validates an add-city submission
func (v *Validator) City(values url.Values) (model.CityForm, error) {
	var f model.CityForm
	if err := v.check(&f, trim(values)); err != nil {
		return model.CityForm{}, err
	}
	return f, nil
}

// Location decodes and validates an add-location submission
func (v *Validator) Location(values url.Values) (model.LocationForm, error) {
	var f model.LocationForm
	if err := v.check(&f, trim(values)); err != nil {
		return model.LocationForm{}, err
	}
	return f, nil
}

func (v *Validator) check(dst interface{}, values url.Values) error {
	var errs Errors

	// Values that do not parse are reported as field errors and left zero,
	// struct validation below still runs for the remaining fields.
	decodeFailed := map[string]bool{}
	if err := v.decoder.Decode(dst, values); err != nil {
		decodeErrs, ok := err.(form.DecodeErrors)
		if !ok {
			return fmt.Errorf("failed to decode form: %w", err)
		}
		fields := make([]string, 0, len(decodeErrs))
		for field := range decodeErrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		for _, field := range fields {
			decodeFailed[field] = true
			errs = append(errs, FieldError{Field: field, Message: "Expected a number"})
		}
	}

	if err := v.validate.Struct(dst); err != nil {
		validationErrs, ok := err.(validator.ValidationErrors)
		if !ok {
			return fmt.Errorf("failed to validate form: %w", err)
		}
		for _, fe := range validationErrs {
			if decodeFailed[fe.Field()] {
				continue
			}
			errs = append(errs, FieldError{Field: fe.Field(), Message: message(fe)})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

var requiredMessages = map[string]string{
	"name":        "Please enter a city name",
	"latitude":    "Please enter a latitude",
	"longitude":   "Please enter a longitude",
	"composer_id": "Missing composer",
	"city_id":     "Please select a city",
	"reason":      "Please select a reason from the list.",
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if msg, ok := requiredMessages[fe.Field()]; ok {
			return msg
		}
		return "This field is required"
	case "gte":
		return "Must be greater than or equal to " + fe.Param()
	case "lte":
		return "Must be less than or equal to " + fe.Param()
	case "max":
		return "Must be at most " + fe.Param() + " characters"
	case "gtefield":
		return "End date must be after start date"
	case "reason":
		return "Please select a reason from the list."
	default:
		return "Invalid value"
	}
}

func trim(values url.Values) url.Values {
	out := make(url.Values, len(values))
	for key, vals := range values {
		for _, val := range vals {
			out.Add(key, strings.TrimSpace(val))
		}
	}
	return out
}
