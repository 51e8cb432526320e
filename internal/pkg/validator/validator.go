package validator

import (
	"regexp"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	playground "github.com/go-playground/validator/v10"
)

const (
	DateLayout = "2006-01-02"
	TimeLayout = "15:04"
)

var (
	phoneRegex = regexp.MustCompile(`^\+?[0-9][0-9 \-]{5,18}$`)
)

// IsValidPhone checks if the phone number format is valid
func IsValidPhone(phone string) bool {
	if strings.TrimSpace(phone) == "" {
		return false
	}
	return phoneRegex.MatchString(phone)
}

// IsValidDate checks if the date string is a real YYYY-MM-DD date
func IsValidDate(date string) bool {
	_, err := time.Parse(DateLayout, date)
	return err == nil
}

// IsValidTime checks if the time string is HH:MM (seconds optional)
func IsValidTime(t string) bool {
	if _, err := time.Parse(TimeLayout, t); err == nil {
		return true
	}
	_, err := time.Parse("15:04:05", t)
	return err == nil
}

var registerOnce sync.Once

// RegisterBindings installs the custom tags on gin's validator engine:
//
//	isodate    YYYY-MM-DD
//	clocktime  HH:MM or HH:MM:SS
//	phone      loose international phone number
//
// Empty values pass; pair with required when needed.
func RegisterBindings() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*playground.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("isodate", optional(IsValidDate))
		_ = v.RegisterValidation("clocktime", optional(IsValidTime))
		_ = v.RegisterValidation("phone", optional(IsValidPhone))
	})
}

func optional(check func(string) bool) playground.Func {
	return func(fl playground.FieldLevel) bool {
		s := fl.Field().String()
		if s == "" {
			return true
		}
		return check(s)
	}
}
