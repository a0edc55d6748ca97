package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

const MsgInvalidBody = "Invalid request body"

// FieldError describes one rejected field. Requests only carry presence rules,
// so Rule is "required" or "type".
type FieldError struct {
	Field   string `json:"field"`
	Rule    string `json:"rule"`
	Message string `json:"message,omitempty"`
}

func init() {
	// report fields under the JSON key the client sent
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// BindJSON decodes the body into out and answers 400 with details on failure.
func BindJSON(ctx *gin.Context, out interface{}) bool {
	if err := ctx.ShouldBindJSON(out); err != nil {
		RespondBadRequest(ctx, MsgInvalidBody, bindErrorDetails(err))
		return false
	}

	return true
}

func bindErrorDetails(err error) gin.H {
	var (
		validationErrs validator.ValidationErrors
		syntaxErr      *json.SyntaxError
		typeErr        *json.UnmarshalTypeError
		maxBytesErr    *http.MaxBytesError
	)

	switch {
	case errors.As(err, &validationErrs):
		fields := make([]FieldError, 0, len(validationErrs))

		for _, fe := range validationErrs {
			msg := "is required"
			if fe.Tag() != "required" {
				msg = "failed " + fe.Tag() + " validation"
			}

			fields = append(fields, FieldError{Field: fe.Field(), Rule: fe.Tag(), Message: msg})
		}

		return gin.H{"fields": fields}

	case errors.As(err, &maxBytesErr):
		return gin.H{"json": "body_too_large", "limit": maxBytesErr.Limit}

	case errors.As(err, &syntaxErr), errors.Is(err, io.ErrUnexpectedEOF):
		return gin.H{"json": "invalid_json_syntax"}

	case errors.As(err, &typeErr):
		field := strings.TrimSpace(typeErr.Field)

		// the body itself has the wrong shape, e.g. an array posted as a document
		if field == "" {
			return gin.H{"json": "expected_object"}
		}

		return gin.H{
			"json":  "invalid_json_type",
			"field": field,
			"fields": []FieldError{{
				Field:   field,
				Rule:    "type",
				Message: "must be of type " + typeErr.Type.String(),
			}},
		}

	case errors.Is(err, io.EOF):
		return gin.H{"json": "empty_body"}
	}

	return gin.H{"reason": err.Error()}
}

func jsonFieldName(sf reflect.StructField) string {
	name, _, _ := strings.Cut(sf.Tag.Get("json"), ",")

	if name == "" || name == "-" {
		return sf.Name
	}

	return name
}
