package validator

import (
	"fmt"
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Philippine mobile numbers, local (09XXXXXXXXX) or international (+639XXXXXXXXX) form.
var phoneNumberPattern = regexp.MustCompile(`^(09|\+639)\d{9}$`)

var otpDigitPattern = regexp.MustCompile(`^\d?$`)

// New returns a validator configured with the project's custom tags.
func New() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	register(v)
	return v
}

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		register(v)
	}
}

func register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("phonenumber", phoneNumberValidator); err != nil {
		log.Fatal("register phonenumber validator failed")
	}
	if err := v.RegisterValidation("otpdigit", otpDigitValidator); err != nil {
		log.Fatal("register otpdigit validator failed")
	}
}

var phoneNumberValidator validator.Func = func(fl validator.FieldLevel) bool {
	return phoneNumberPattern.MatchString(fl.Field().String())
}

var otpDigitValidator validator.Func = func(fl validator.FieldLevel) bool {
	return otpDigitPattern.MatchString(fl.Field().String())
}

// Message turns a failed validation tag into the text shown next to the field.
func Message(tag string, param string) string {
	switch tag {
	case "required":
		return "This field is required"
	case "email":
		return "Invalid email address"
	case "number", "numeric":
		return "This field must be numeric"
	case "min":
		return fmt.Sprintf("Must be at least %v characters", param)
	case "max":
		return fmt.Sprintf("Must be at most %v characters", param)
	case "len":
		return fmt.Sprintf("Must be exactly %v characters", param)
	case "eqfield":
		return "Values do not match"
	case "oneof":
		return fmt.Sprintf("Must be one of: %v", param)
	case "datetime":
		return "Date must be in YYYY-MM-DD format"
	case "phonenumber":
		return "Number must start with 09 or +639 and have 11 digits"
	case "otpdigit":
		return "Must be a single digit"
	}
	return tag
}
