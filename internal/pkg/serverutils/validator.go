package serverutils

import (
	"fmt"
	"strings"

	"inspire-it-be/internal/pkg/apperrors"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ValidateRequest checks struct tags and converts failures into a
// validation error the error middleware renders as 400.
func ValidateRequest(req interface{}) error {
	if err := validate.Struct(req); err != nil {
		var fields []string
		if verrs, ok := err.(validator.ValidationErrors); ok {
			for _, fe := range verrs {
				fields = append(fields, fmt.Sprintf("%s (%s)", fe.Field(), fe.Tag()))
			}
			return apperrors.Validation("serverutils.ValidateRequest",
				"invalid request: "+strings.Join(fields, ", "))
		}
		return apperrors.Validation("serverutils.ValidateRequest", "invalid request body")
	}
	return nil
}
