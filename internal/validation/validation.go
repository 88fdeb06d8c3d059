package validation

import (
	"reflect"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/MrJamesThe3rd/spendwise/internal/category"
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator with the domain tags registered:
//
//	category  the field must be one of category.All
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		if err := v.RegisterValidation("category", validCategory); err != nil {
			panic(err)
		}

		instance = v
	})

	return instance
}

func validCategory(fl validator.FieldLevel) bool {
	if fl.Field().Kind() != reflect.String {
		return false
	}

	return category.Category(fl.Field().String()).Valid()
}
