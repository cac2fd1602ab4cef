package utils

import (
	"github.com/go-playground/validator/v10"
)

// Validate is the shared validator instance for request bodies and
// remote response schemas.
var Validate = validator.New()
