// Package validation wires go-playground/validator with the marketplace's
// custom rules.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

var (
	mobilePattern  = regexp.MustCompile(`^[0-9]{10}$`)
	pincodePattern = regexp.MustCompile(`^[0-9]{6}$`)
	upiPattern     = regexp.MustCompile(`^[A-Za-z0-9._-]+@[A-Za-z]+$`)
)

var (
	once     sync.Once
	instance *validator.Validate
)

// Validator returns the shared validator. Registered tags: mobile (10
// digits), pincode (6 digits), upi (name@bank).
func Validator() *validator.Validate {
	once.Do(func() {
		v := validator.New(validator.WithRequiredStructEnabled())
		mustRegister(v, "mobile", mobilePattern)
		mustRegister(v, "pincode", pincodePattern)
		mustRegister(v, "upi", upiPattern)
		instance = v
	})
	return instance
}

func mustRegister(v *validator.Validate, tag string, re *regexp.Regexp) {
	err := v.RegisterValidation(tag, func(fl validator.FieldLevel) bool {
		return re.MatchString(fl.Field().String())
	})
	if err != nil {
		panic(fmt.Sprintf("register %s validation: %v", tag, err))
	}
}

// Struct validates s and flattens field errors into one message.
func Struct(s any) error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return errors.New(strings.Join(msgs, "; "))
}
