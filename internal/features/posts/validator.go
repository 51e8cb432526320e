package posts

import (
	"sync"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
	"github.com/xyz-asif/lostfound/internal/pkg/validator"
)

var registerOnce sync.Once

// RegisterBindings adds the itemtype and poststatus tags alongside the shared ones.
func RegisterBindings() {
	validator.RegisterBindings()
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*playground.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("itemtype", func(fl playground.FieldLevel) bool {
			return IsValidItemType(fl.Field().String())
		})
		_ = v.RegisterValidation("poststatus", func(fl playground.FieldLevel) bool {
			s := fl.Field().String()
			return s == "" || IsValidStatus(s)
		})
	})
}

func IsValidItemType(s string) bool {
	return ItemType(upper(s)).Valid()
}

func IsValidStatus(s string) bool {
	_, ok := ParseStatus(s)
	return ok
}
