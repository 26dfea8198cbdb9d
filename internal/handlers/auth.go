package handlers

import (
	"errors"
	"net/http"

	"github.com/alimgiray/gitossum/internal/middleware"
	"github.com/alimgiray/gitossum/internal/services"
	"github.com/gin-gonic/gin"
)

const (
	MsgConfirmEmail      = "Please confirm your email address to complete the registration"
	MsgActivated         = "Thank you for your email confirmation. Now you can login your account."
	MsgInvalidActivation = "Activation link is invalid!"
)

type SignupForm struct {
	Username        string `form:"username" binding:"required,max=150"`
	Email           string `form:"email" binding:"required,email"`
	Password        string `form:"password" binding:"required,min=8"`
	PasswordConfirm string `form:"password_confirm" binding:"required,eqfield=Password"`
}

type LoginForm struct {
	Username string `form:"username" binding:"required"`
	Password string `form:"password" binding:"required"`
}

type AuthHandler struct {
	userService *services.UserService
	sessions    *middleware.Sessions
}

func NewAuthHandler(userService *services.UserService, sessions *middleware.Sessions) *AuthHandler {
	return &AuthHandler{
		userService: userService,
		sessions:    sessions,
	}
}

// SignupPage shows the registration form
func (h *AuthHandler) SignupPage(c *gin.Context) {
	render(c, http.StatusOK, "signup", gin.H{
		"Title": "Sign Up",
		"Form":  SignupForm{},
	})
}

// Signup registers a pending account and sends the activation email
func (h *AuthHandler) Signup(c *gin.Context) {
	var form SignupForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderSignup(c, form, fieldErrors(err))
		return
	}

	_, err := h.userService.SignUp(c.Request.Context(), form.Username, form.Email, form.Password)
	if err != nil {
		if errors.Is(err, services.ErrUsernameTaken) {
			h.renderSignup(c, form, map[string]string{"Username": "A user with that username already exists."})
			return
		}
		renderError(c, err)
		return
	}

	renderMessage(c, "Sign Up", MsgConfirmEmail)
}

func (h *AuthHandler) renderSignup(c *gin.Context, form SignupForm, errs map[string]string) {
	form.Password, form.PasswordConfirm = "", ""
	render(c, http.StatusBadRequest, "signup", gin.H{
		"Title":  "Sign Up",
		"Form":   form,
		"Errors": errs,
	})
}

// Activate follows an emailed activation link
func (h *AuthHandler) Activate(c *gin.Context) {
	user, err := h.userService.Activate(c.Request.Context(), c.Param("uid"), c.Param("token"))
	if err != nil {
		if errors.Is(err, services.ErrInvalidActivation) {
			renderMessage(c, "Activation", MsgInvalidActivation)
			return
		}
		renderError(c, err)
		return
	}

	if err := h.sessions.Set(c, user.ID, user.Username, user.Email); err != nil {
		renderError(c, err)
		return
	}

	renderMessage(c, "Activation", MsgActivated)
}

// LoginPage shows the login form
func (h *AuthHandler) LoginPage(c *gin.Context) {
	render(c, http.StatusOK, "login", gin.H{
		"Title": "Login",
		"Form":  LoginForm{},
	})
}

// Login checks the credentials and starts a session
func (h *AuthHandler) Login(c *gin.Context) {
	var form LoginForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderLogin(c, form, "", fieldErrors(err))
		return
	}

	user, err := h.userService.Authenticate(c.Request.Context(), form.Username, form.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.renderLogin(c, form, "Please enter a correct username and password.", nil)
		case errors.Is(err, services.ErrAccountInactive):
			h.renderLogin(c, form, "This account is not activated yet. Please check your email.", nil)
		default:
			renderError(c, err)
		}
		return
	}

	if err := h.sessions.Set(c, user.ID, user.Username, user.Email); err != nil {
		renderError(c, err)
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (h *AuthHandler) renderLogin(c *gin.Context, form LoginForm, message string, errs map[string]string) {
	form.Password = ""
	render(c, http.StatusBadRequest, "login", gin.H{
		"Title":  "Login",
		"Form":   form,
		"Error":  message,
		"Errors": errs,
	})
}

// Logout handles user logout
func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.Clear(c)
	c.Redirect(http.StatusFound, "/")
}
