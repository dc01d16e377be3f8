package validator

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"regexp"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/shandysiswandi/gocustomer/internal/pkg/strcase"
)

// ErrTranslatorNotFound indicates the requested translator is unavailable.
var ErrTranslatorNotFound = errors.New("translator not found")

// customTag is a validation tag registered on top of the v10 built-ins.
type customTag struct {
	name    string
	message string
	check   validator.Func
}

var rePhone = regexp.MustCompile(`^\d{10,15}$`)

var customTags = []customTag{
	{
		name:    "phone",
		message: "{0} must contain between 10 and 15 digits",
		check: func(fl validator.FieldLevel) bool {
			p, ok := fl.Field().Interface().(string)
			return ok && rePhone.MatchString(p)
		},
	},
}

// V10ValidationError maps snake_case field names to translated messages.
type V10ValidationError map[string]string

func (vs V10ValidationError) Error() string {
	if len(vs) == 0 {
		return "validation error"
	}

	b, err := json.Marshal(vs)
	if err != nil {
		return fmt.Sprintf("validation error (failed to marshal: %v)", err)
	}
	return string(b)
}

// Values returns the field error map.
func (vs V10ValidationError) Values() map[string]string {
	return vs
}

// V10Validator wraps go-playground/validator with English messages and the
// service's custom tags.
type V10Validator struct {
	validate   *validator.Validate
	translator ut.Translator
}

// NewV10Validator returns a validator with English translations and the custom tags registered.
func NewV10Validator() (*V10Validator, error) {
	validate := validator.New(validator.WithRequiredStructEnabled())

	enLang := en.New()
	trans, ok := ut.New(enLang, enLang).GetTranslator("en")
	if !ok {
		return nil, ErrTranslatorNotFound
	}

	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, err
	}

	for _, tag := range customTags {
		if err := registerTag(validate, trans, tag); err != nil {
			return nil, fmt.Errorf("register tag %q: %w", tag.name, err)
		}
	}

	return &V10Validator{validate: validate, translator: trans}, nil
}

func registerTag(validate *validator.Validate, trans ut.Translator, tag customTag) error {
	if err := validate.RegisterValidation(tag.name, tag.check); err != nil {
		return err
	}

	return validate.RegisterTranslation(tag.name, trans,
		func(t ut.Translator) error {
			return t.Add(tag.name, tag.message, false)
		},
		func(t ut.Translator, fe validator.FieldError) string {
			msg, err := t.T(fe.Tag(), fe.Field())
			if err != nil {
				slog.Warn("failed to translate validation error", "tag", fe.Tag(), "field", fe.Field(), "error", err)
				return fe.Error()
			}
			return msg
		},
	)
}

// Validate checks struct tags on data. Failures come back as a
// V10ValidationError; other errors (e.g. a non-struct argument) as is.
func (v *V10Validator) Validate(data any) error {
	err := v.validate.Struct(data)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return err
	}

	out := make(V10ValidationError, len(fieldErrs))
	for _, fe := range fieldErrs {
		out[strcase.ToLowerSnake(fe.Field())] = fe.Translate(v.translator)
	}
	return out
}

// Is reports whether a single value satisfies a tag expression such as
// "email" or "phone". Rule predicates use it to share v10's format checks.
func (v *V10Validator) Is(value any, tag string) bool {
	return v.validate.Var(value, tag) == nil
}
