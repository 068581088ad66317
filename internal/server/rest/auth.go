package rest

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/tasktracker/internal/common"
	"github.com/gin-gonic/gin"
)

func (s *Server) handleRegister(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isRequiredFailure(err) {
			abort(c, newAPIError(http.StatusBadRequest, msgCredentialsRequired))
			return
		}
		abort(c, bindingError(err))
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	_, err := s.users.Register(c.Request.Context(), req.Email, password)
	if err != nil {
		if errors.Is(err, common.ErrorValidation) {
			abort(c, newAPIError(http.StatusBadRequest, msgCredentialsRequired))
			return
		}
		if !errors.Is(err, common.ErrorAlreadyExists) {
			_ = c.Error(err)
		}
		abort(c, fromServiceError(err))
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "User registered"})
}

// handleLogin answers every rejected attempt the same way, including a body
// with missing fields.
func (s *Server) handleLogin(c *gin.Context) {
	var req credentialsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		if isRequiredFailure(err) {
			abort(c, newAPIError(http.StatusUnauthorized, msgInvalidCredentials))
			return
		}
		abort(c, bindingError(err))
		return
	}

	password := []byte(req.Password)
	defer common.WipeByteArray(password)

	token, err := s.users.Login(c.Request.Context(), req.Email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			abort(c, newAPIError(http.StatusUnauthorized, msgInvalidCredentials))
			return
		}
		_ = c.Error(err)
		abort(c, fromServiceError(err))
		return
	}

	c.JSON(http.StatusOK, tokenResponse{Token: token})
}
