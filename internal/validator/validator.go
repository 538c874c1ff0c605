// Package validator registers custom binding rules with gin's
// underlying validator instance.
package validator

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"creatordna_backend/internal/logger"
)

// Init installs custom validation rules. Call once at startup, before
// the router handles traffic.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		logger.Warn("gin binding validator engine unavailable, custom rules skipped")
		return
	}
	registerRules(v)
}
