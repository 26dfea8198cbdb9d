package handlers

import (
	"net/http"
	"strings"

	"github.com/alimgiray/gitossum/internal/middleware"
	"github.com/alimgiray/gitossum/internal/services"
	"github.com/gin-gonic/gin"
)

const MsgMiningRequested = "Your mining request has been received. We will let you know when it is done."

type MiningRequestForm struct {
	RepoName string `form:"repo_name" binding:"required,repofullname"`
	Email    string `form:"email" binding:"omitempty,email"`
}

type MiningRequestHandler struct {
	requestService *services.MiningRequestService
}

func NewMiningRequestHandler(requestService *services.MiningRequestService) *MiningRequestHandler {
	return &MiningRequestHandler{
		requestService: requestService,
	}
}

// Form shows the mining request form and the user's previous requests
func (h *MiningRequestHandler) Form(c *gin.Context) {
	h.renderForm(c, http.StatusOK, MiningRequestForm{}, nil, "")
}

// Submit records a mining request. The repository itself is not checked.
func (h *MiningRequestHandler) Submit(c *gin.Context) {
	var form MiningRequestForm
	if err := c.ShouldBind(&form); err != nil {
		h.renderForm(c, http.StatusBadRequest, form, fieldErrors(err), "")
		return
	}

	session := middleware.GetSession(c)
	_, err := h.requestService.CreateRequest(
		c.Request.Context(),
		strings.TrimSpace(form.RepoName),
		strings.TrimSpace(form.Email),
		session.Email,
		session.Username,
	)
	if err != nil {
		renderError(c, err)
		return
	}

	h.renderForm(c, http.StatusOK, MiningRequestForm{}, nil, MsgMiningRequested)
}

func (h *MiningRequestHandler) renderForm(c *gin.Context, status int, form MiningRequestForm, errs map[string]string, success string) {
	session := middleware.GetSession(c)
	requests, err := h.requestService.GetRequestsByUser(session.Username)
	if err != nil {
		renderError(c, err)
		return
	}

	render(c, status, "mining_request", gin.H{
		"Title":    "Request Mining",
		"Form":     form,
		"Errors":   errs,
		"Success":  success,
		"Requests": requests,
	})
}
