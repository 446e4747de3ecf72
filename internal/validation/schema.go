package validation

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// schema validates tagged request structs at the API boundary so malformed
// filters fail fast instead of silently producing empty results.
var schema = validator.New(validator.WithRequiredStructEnabled())

// ValidateStruct runs struct-tag validation and flattens the result into a
// single transportable message.
func ValidateStruct(s interface{}) error {
	err := schema.Struct(s)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fmt.Sprintf("%s failed on %s", fe.Field(), fe.Tag()))
	}
	return fmt.Errorf("invalid request: %s", strings.Join(msgs, "; "))
}
