// SPDX-License-Identifier: MIT
package handlers

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/thatcatcamp/themery/internal/themes"
)

var (
	registerOnce sync.Once
	registerErr  error
)

// RegisterValidators adds the custom tags to gin's validator. Safe to call
// more than once; every call reports the first outcome.
func RegisterValidators() error {
	registerOnce.Do(func() {
		registerErr = registerTags(binding.Validator.Engine())
	})
	return registerErr
}

func registerTags(engine any) error {
	v, ok := engine.(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", engine)
	}
	if err := v.RegisterValidation("hexcolor6", func(fl validator.FieldLevel) bool {
		return themes.ValidHex(fl.Field().String())
	}); err != nil {
		return fmt.Errorf("failed to register hexcolor6: %w", err)
	}
	if err := v.RegisterValidation("themeformat", func(fl validator.FieldLevel) bool {
		_, err := themes.ParseFormat(fl.Field().String())
		return err == nil
	}); err != nil {
		return fmt.Errorf("failed to register themeformat: %w", err)
	}
	return nil
}

// validationMessage flattens validator errors into per-field messages keyed
// by the form field name
func validationMessage(err error) map[string]string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return map[string]string{"_": err.Error()}
	}

	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		field := formFieldName(fe.Field())
		switch fe.Tag() {
		case "hexcolor6":
			out[field] = "must be a #RRGGBB hex color"
		case "themeformat":
			out[field] = "must be one of v4, v3, registry, cursor, windsurf"
		case "min", "max":
			out[field] = fmt.Sprintf("must be %s %s", map[string]string{"min": "at least", "max": "at most"}[fe.Tag()], fe.Param())
		default:
			out[field] = "is invalid (" + fe.Tag() + ")"
		}
	}
	return out
}

// formFieldName maps a Go field name such as BaseColor to base_color
func formFieldName(name string) string {
	var b strings.Builder
	for i, r := range name {
		if r >= 'A' && r <= 'Z' {
			if i > 0 {
				b.WriteByte('_')
			}
			r += 'a' - 'A'
		}
		b.WriteRune(r)
	}
	return b.String()
}
