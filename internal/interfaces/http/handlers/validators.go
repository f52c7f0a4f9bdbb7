package handlers

import (
	"regexp"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// Resource keys are lowercase slugs: alphanumeric groups separated by single
// hyphens or underscores. The same charset the successor-key versioning
// appends to, so transitioned keys stay valid.
var resourceKeyPattern = regexp.MustCompile(`^[a-z0-9]+(?:[-_][a-z0-9]+)*$`)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		_ = v.RegisterValidation("resourcekey", func(fl validator.FieldLevel) bool {
			return resourceKeyPattern.MatchString(fl.Field().String())
		})
	}
}
