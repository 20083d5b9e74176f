package httpserver

import (
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"cinehub/errs"
)

type CustomValidator struct {
	validate *validator.Validate
}

func NewValidator() *CustomValidator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return fld.Name
		}
		return name
	})
	return &CustomValidator{validate: v}
}

// Validate turns validator failures into a field-keyed application
// error so the envelope can surface them under "errors".
func (cv *CustomValidator) Validate(i interface{}) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return errs.Errorf(errs.EINVALID, "validation error")
	}

	fields := map[string][]string{}
	for _, fe := range verrs {
		field := fe.Field()
		if field == "" {
			field = fe.StructField()
		}
		fields[field] = append(fields[field], "failed on "+fe.Tag())
	}
	return errs.Invalidf(fields, "validation error")
}
