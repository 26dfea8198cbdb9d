package handlers

import (
	"net/http"

	"github.com/alimgiray/gitossum/internal/middleware"
	"github.com/alimgiray/gitossum/internal/services"
	"github.com/gin-gonic/gin"
)

const MsgFeedbackReceived = "Thank you for your feedback!"

type FeedbackForm struct {
	Subject string `form:"subject" binding:"required,max=100"`
	Message string `form:"message" binding:"required,max=2000"`
}

type FeedbackHandler struct {
	feedbackService *services.FeedbackService
}

func NewFeedbackHandler(feedbackService *services.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{
		feedbackService: feedbackService,
	}
}

// Form shows the feedback form
func (h *FeedbackHandler) Form(c *gin.Context) {
	render(c, http.StatusOK, "feedback", gin.H{
		"Title": "Feedback",
		"Form":  FeedbackForm{},
	})
}

// Submit stores the feedback and redirects back to the form
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var form FeedbackForm
	if err := c.ShouldBind(&form); err != nil {
		render(c, http.StatusBadRequest, "feedback", gin.H{
			"Title":  "Feedback",
			"Form":   form,
			"Errors": fieldErrors(err),
		})
		return
	}

	session := middleware.GetSession(c)
	if _, err := h.feedbackService.SubmitFeedback(form.Subject, form.Message, session.Email, session.Username); err != nil {
		renderError(c, err)
		return
	}

	middleware.SetFlash(c, MsgFeedbackReceived)
	c.Redirect(http.StatusFound, "/feedback")
}
