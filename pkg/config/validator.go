package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"

	"github.com/japaniel/visionary/pkg/vision"
)

func newValidator() (*validator.Validate, ut.Translator, error) {
	validate := validator.New()

	enLocale := en.New()
	uni := ut.New(enLocale, enLocale)
	trans, _ := uni.GetTranslator("en")
	if err := enTranslations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("mapstructure"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := validate.RegisterValidation("theme", isKnownTheme); err != nil {
		return nil, nil, fmt.Errorf("failed to register theme validation: %w", err)
	}
	if err := validate.RegisterTranslation("theme", trans, func(ut ut.Translator) error {
		return ut.Add("theme", "{0} must be a known theme, got {1}", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("theme", strings.TrimPrefix(fe.Namespace(), "Config."), fmt.Sprint(fe.Value()))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register theme translation: %w", err)
	}

	return validate, trans, nil
}

func isKnownTheme(fl validator.FieldLevel) bool {
	_, err := vision.ParseTheme(fl.Field().String())
	return err == nil
}

// translate flattens validation errors into one readable message.
func translate(err error, trans ut.Translator) error {
	validationErrors, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}
	var errorMsgs []string
	for _, e := range validationErrors {
		errorMsgs = append(errorMsgs, e.Translate(trans))
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(errorMsgs, ", "))
}
