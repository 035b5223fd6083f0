package validator

import (
	"log"
	"reflect"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var otpCodePattern = regexp.MustCompile(`^\d{6}$`)

func RegisterGinValidator() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		Register(v)
	}
}

// Register reports fields by their json names and adds the otpcode rule.
func Register(v *validator.Validate) {
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	if err := v.RegisterValidation("otpcode", otpCodeValidator); err != nil {
		log.Fatal("register otpcode validator failed")
	}
}

var otpCodeValidator validator.Func = func(fl validator.FieldLevel) bool {
	return otpCodePattern.MatchString(fl.Field().String())
}
