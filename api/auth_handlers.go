package api

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/lleukocyte/travel-guide/model"
)

// RegisterHandler creates an unverified account and mails its code.
// Request Body: model.UserCreate
func (api *API) RegisterHandler(c *gin.Context) {
	var data model.UserCreate
	if result := ValidateJSONBinding(c, &data); result.HasErrors() {
		SendValidationError(c, result)
		return
	}
	if result := ValidateUserCreate(&data); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	user, err := api.users.Register(c.Request.Context(), data)
	if err != nil {
		SendServiceError(c, "registration", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"email":    user.Email,
		"username": user.Username,
		"message":  "Verification code sent to " + user.Email,
	})
}

// VerifyHandler activates an account.
// Request Body: model.VerifyCode
func (api *API) VerifyHandler(c *gin.Context) {
	var data model.VerifyCode
	if result := ValidateJSONBinding(c, &data); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	if err := api.users.Verify(c.Request.Context(), data.Email, data.Code); err != nil {
		SendServiceError(c, "verification", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Account verified"})
}

// LoginHandler exchanges credentials for a bearer token.
// Request Body: model.Credentials
func (api *API) LoginHandler(c *gin.Context) {
	var creds model.Credentials
	if result := ValidateJSONBinding(c, &creds); result.HasErrors() {
		SendValidationError(c, result)
		return
	}

	token, err := api.users.Login(c.Request.Context(), creds)
	if err != nil {
		SendServiceError(c, "login", err)
		return
	}

	c.JSON(http.StatusOK, token)
}

// CurrentUserHandler returns the authenticated user
func (api *API) CurrentUserHandler(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c))
}
