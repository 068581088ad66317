package rest

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

const (
	msgCredentialsRequired = "Email and password required"
	msgInvalidCredentials  = "Invalid credentials"
	msgUnauthorized        = "unauthorized"
	msgNotFound            = "task not found"
	msgInternal            = "internal error"
	msgInvalidBody         = "invalid request body"
)

type apiError struct {
	Code    int
	Message string
}

func newAPIError(code int, message string) apiError {
	return apiError{Code: code, Message: message}
}

func (e apiError) Error() string {
	return e.Message
}

func abort(c *gin.Context, err apiError) {
	c.AbortWithStatusJSON(err.Code, gin.H{"error": err.Message})
}

// fromServiceError maps service sentinels to a response. Anything unknown is
// a 500 without details.
func fromServiceError(err error) apiError {
	switch {
	case errors.Is(err, common.ErrorValidation):
		return newAPIError(http.StatusBadRequest, validationMessage(err))
	case errors.Is(err, common.ErrorUnauthorized):
		return newAPIError(http.StatusUnauthorized, msgUnauthorized)
	case errors.Is(err, common.ErrorNotFound):
		return newAPIError(http.StatusNotFound, msgNotFound)
	case errors.Is(err, common.ErrorAlreadyExists):
		return newAPIError(http.StatusConflict, "email already registered")
	default:
		return newAPIError(http.StatusInternalServerError, msgInternal)
	}
}

// validationMessage strips the sentinel the services attach, leaving the part
// that describes the input.
func validationMessage(err error) string {
	var multi interface{ Unwrap() []error }
	if errors.As(err, &multi) {
		for _, e := range multi.Unwrap() {
			if !errors.Is(e, common.ErrorValidation) {
				return e.Error()
			}
		}
	}
	return strings.TrimSuffix(err.Error(), ": "+common.ErrorValidation.Error())
}

// bindingError turns a gin binding failure into a 400 naming the first bad
// field.
func bindingError(err error) apiError {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) || len(ve) == 0 {
		return newAPIError(http.StatusBadRequest, msgInvalidBody)
	}

	fe := ve[0]
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fe.Field() + " is required"
	case "max":
		msg = fmt.Sprintf("%s must be at most %s characters", fe.Field(), fe.Param())
	case "weekday":
		msg = fmt.Sprintf("unknown weekday %q", fe.Value())
	default:
		msg = fe.Field() + " is invalid"
	}
	return newAPIError(http.StatusBadRequest, msg)
}

func isRequiredFailure(err error) bool {
	var ve validator.ValidationErrors
	if !errors.As(err, &ve) {
		return false
	}
	for _, fe := range ve {
		if fe.Tag() == "required" {
			return true
		}
	}
	return false
}
