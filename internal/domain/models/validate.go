package models

import (
	"sort"
	"strings"

	"github.com/JaredForchheimer/Hack-Coms/internal/domain"
	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// notBlank rejects strings that are empty after trimming.
// ozzo's Required accepts whitespace-only values, so required string fields
// add this rule on top.
func notBlank(value interface{}) error {
	var s string
	switch v := value.(type) {
	case string:
		s = v
	case *string:
		if v == nil {
			return nil
		}
		s = *v
	default:
		return nil
	}
	if strings.TrimSpace(s) == "" {
		return validation.NewError("validation_blank", "cannot be blank")
	}
	return nil
}

// asDomainError converts an ozzo validation result into the domain taxonomy.
// Field names are sorted for stable error messages.
func asDomainError(err error) error {
	if err == nil {
		return nil
	}
	if verrs, ok := err.(validation.Errors); ok {
		fields := make([]string, 0, len(verrs))
		for field := range verrs {
			fields = append(fields, field)
		}
		sort.Strings(fields)
		return domain.NewValidationError(err.Error(), fields...)
	}
	return domain.NewValidationError(err.Error())
}
