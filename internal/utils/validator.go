package utils

import (
	"reflect"
	"regexp"
	"sync"

	"github.com/go-playground/validator/v10"
	"github.com/microcosm-cc/bluemonday"
	"github.com/truemail-rb/truemail-go"
)

// Validator bundles struct validation, HTML sanitizing and email
// reachability checking behind one instance.
type Validator struct {
	Validate    *validator.Validate
	VerifyEmail func(email string) bool

	policy *bluemonday.Policy
}

var instance *Validator
var once sync.Once
var configuration *truemail.Configuration

// GetValidator returns the process-wide validator instance.
func GetValidator() *Validator {
	once.Do(func() {
		configuration, _ = truemail.NewConfiguration(truemail.ConfigurationAttr{
			VerifierEmail:         "noreply@voyago.app",
			ValidationTypeDefault: "mx",
			SmtpFailFast:          true,
		})

		instance = &Validator{
			Validate:    validator.New(validator.WithRequiredStructEnabled()),
			VerifyEmail: validateEmail,
			policy:      bluemonday.StrictPolicy(),
		}

		registerCustomValidators(instance.Validate)
	})

	return instance
}

func validateEmail(email string) bool {
	return truemail.IsValid(email, configuration)
}

// SanitizeStruct strips HTML from every exported string field of the struct
// pointed to by obj, recursing into nested structs and slices.
func (v *Validator) SanitizeStruct(obj interface{}) {
	v.sanitizeValue(reflect.ValueOf(obj))
}

func (v *Validator) sanitizeValue(value reflect.Value) {
	switch value.Kind() {
	case reflect.Ptr:
		if !value.IsNil() {
			v.sanitizeValue(value.Elem())
		}
	case reflect.Struct:
		for i := 0; i < value.NumField(); i++ {
			field := value.Field(i)
			if field.CanSet() {
				v.sanitizeValue(field)
			}
		}
	case reflect.Slice:
		for i := 0; i < value.Len(); i++ {
			v.sanitizeValue(value.Index(i))
		}
	case reflect.String:
		if value.CanSet() {
			value.SetString(v.policy.Sanitize(value.String()))
		}
	}
}

func registerCustomValidators(v *validator.Validate) {
	if err := v.RegisterValidation("username_validation", usernameValidation); err != nil {
		return
	}
}

var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9.\-_]+$`)

// usernameValidation allows a-z, A-Z, 0-9, ., - and _.
func usernameValidation(fl validator.FieldLevel) bool {
	return usernamePattern.MatchString(fl.Field().String())
}
