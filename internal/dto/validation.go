package dto

import (
	"fmt"
	"reflect"
	"sync"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var registerOnce sync.Once

// RegisterValidators teaches gin's validator about decimal amounts and the amount_nonneg rule.
// It is safe to call more than once.
func RegisterValidators() error {
	var err error
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			err = fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
			return
		}
		v.RegisterCustomTypeFunc(decimalValue, decimal.Decimal{})
		err = v.RegisterValidation("amount_nonneg", amountNonNegative)
	})
	return err
}

// decimalValue exposes a decimal to validator rules as a float64.
func decimalValue(field reflect.Value) any {
	if d, ok := field.Interface().(decimal.Decimal); ok {
		f, _ := d.Float64()
		return f
	}
	return nil
}

func amountNonNegative(fl validator.FieldLevel) bool {
	field := fl.Field()
	switch field.Kind() {
	case reflect.Float32, reflect.Float64:
		return field.Float() >= 0
	case reflect.Int, reflect.Int64, reflect.Int32:
		return field.Int() >= 0
	}
	return false
}
