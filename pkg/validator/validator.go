package validator

import (
	"errors"
	"reflect"
	"regexp"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/ttacon/libphonenumber"
)

type ErrorResponse struct {
	FailedField string
	Tag         string
	Value       string
}

var ErrInvalidPhone = errors.New("invalid phone number")

var (
	validate = validator.New()

	// gstinPattern: state code, PAN, entity number, the literal Z, checksum.
	gstinPattern = regexp.MustCompile(`^[0-9]{2}[A-Z]{5}[0-9]{4}[A-Z][1-9A-Z]Z[0-9A-Z]$`)

	phoneRegion = "IN"
)

func init() {
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})

	validate.RegisterValidation("gstin", func(fl validator.FieldLevel) bool {
		return IsGSTIN(fl.Field().String())
	})

	validate.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		_, err := NormalizePhone(fl.Field().String())
		return err == nil
	})
}

// SetPhoneRegion sets the region used for numbers written without a country code.
// Call it once at startup.
func SetPhoneRegion(region string) {
	if region != "" {
		phoneRegion = strings.ToUpper(region)
	}
}

// NormalizePhone parses raw and returns it in E.164 form.
func NormalizePhone(raw string) (string, error) {
	num, err := libphonenumber.Parse(strings.TrimSpace(raw), phoneRegion)
	if err != nil {
		return "", ErrInvalidPhone
	}
	if !libphonenumber.IsValidNumber(num) {
		return "", ErrInvalidPhone
	}
	return libphonenumber.Format(num, libphonenumber.E164), nil
}

func IsGSTIN(s string) bool {
	return gstinPattern.MatchString(s)
}

// ValidateStruct reports every failed rule, keyed by the field's json name.
func ValidateStruct(data interface{}) []*ErrorResponse {
	err := validate.Struct(data)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []*ErrorResponse{{Tag: "invalid", Value: err.Error()}}
	}

	var out []*ErrorResponse
	for _, fe := range verrs {
		out = append(out, &ErrorResponse{
			FailedField: fe.Field(),
			Tag:         fe.Tag(),
			Value:       fe.Param(),
		})
	}
	return out
}
