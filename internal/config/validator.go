package config

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	enTranslations "github.com/go-playground/validator/v10/translations/en"
	"github.com/rs/zerolog"
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
	if err := validate.RegisterValidation("loglevel", isLogLevel); err != nil {
		return nil, nil, fmt.Errorf("failed to register loglevel validation: %w", err)
	}
	if err := validate.RegisterTranslation("loglevel", trans, func(ut ut.Translator) error {
		return ut.Add("loglevel", "{0} must be one of trace, debug, info, warn, error", true)
	}, func(ut ut.Translator, fe validator.FieldError) string {
		t, _ := ut.T("loglevel", strings.TrimPrefix(fe.Namespace(), "Config."))
		return t
	}); err != nil {
		return nil, nil, fmt.Errorf("failed to register loglevel translation: %w", err)
	}

	return validate, trans, nil
}

func isLogLevel(fl validator.FieldLevel) bool {
	level := fl.Field().String()
	if level == "" {
		return false
	}
	_, err := zerolog.ParseLevel(strings.ToLower(level))
	return err == nil
}
