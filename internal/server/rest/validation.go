package rest

import (
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/dmitrijs2005/tasktracker/internal/weekday"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	validatorsOnce sync.Once
	validatorsErr  error
)

// registerValidators adds the custom tags to gin's validator and makes field
// errors report JSON names.
func registerValidators() error {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			validatorsErr = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}

		v.RegisterTagNameFunc(jsonFieldName)
		validatorsErr = v.RegisterValidation("weekday", func(fl validator.FieldLevel) bool {
			return weekday.IsValid(fl.Field().String())
		})
	})
	return validatorsErr
}

func jsonFieldName(f reflect.StructField) string {
	name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return f.Name
	}
	return name
}
