package handlers

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/cristianadrielbraun/qrframe/internal/symbol"
	"github.com/cristianadrielbraun/qrframe/internal/template"
)

// RegisterValidators installs the qrlevel and templateid tags on gin's
// validator.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return errors.New("gin validator is not go-playground/validator")
	}
	return registerOn(v)
}

func registerOn(v *validator.Validate) error {
	if err := v.RegisterValidation("qrlevel", func(fl validator.FieldLevel) bool {
		_, err := symbol.ParseLevel(fl.Field().String())
		return err == nil
	}); err != nil {
		return err
	}
	return v.RegisterValidation("templateid", func(fl validator.FieldLevel) bool {
		_, ok := template.Get(fl.Field().String())
		return ok
	})
}

// bindError turns binding failures into one readable line.
func bindError(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		field := strings.ToLower(fe.Field())
		switch fe.Tag() {
		case "required":
			msgs = append(msgs, field+" is required")
		case "hexcolor":
			msgs = append(msgs, fmt.Sprintf("%s %q is not a hex colour", field, fe.Value()))
		case "qrlevel":
			msgs = append(msgs, fmt.Sprintf("%s %q is not one of L, M, Q, H", field, fe.Value()))
		case "templateid":
			msgs = append(msgs, fmt.Sprintf("unknown template %q", fe.Value()))
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s must be one of %s", field, fe.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s fails %s=%s", field, fe.Tag(), fe.Param()))
		}
	}
	return strings.Join(msgs, "; ")
}
