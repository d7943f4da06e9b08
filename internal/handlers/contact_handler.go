package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"voyago/internal/managers"
	"voyago/internal/schemas"
	"voyago/internal/utils"
)

// ContactHdl defines the interface for handling contact-form requests.
type ContactHdl interface {
	SubmitContactForm(c *gin.Context)
}

// ContactHandler forwards contact-form submissions to the operations inbox.
type ContactHandler struct {
	MailManager managers.MailMgr
}

// NewContactHandler returns a new ContactHandler with the provided manager.
func NewContactHandler(mailManager *managers.MailMgr) ContactHdl {
	return &ContactHandler{
		MailManager: *mailManager,
	}
}

// SubmitContactForm logs the submission and dispatches the notification mail
// in the background. The response is fixed; a mail failure is logged, never
// surfaced.
func (handler *ContactHandler) SubmitContactForm(c *gin.Context) {
	contactRequest := c.Value(utils.SanitizedPayloadKey.String()).(*schemas.ContactRequest)

	if !utils.GetValidator().VerifyEmail(contactRequest.Email) {
		utils.LogMessageWithFields(c, "warn", "Contact form email did not verify: "+contactRequest.Email)
	}

	utils.LogMessageWithFields(c, "info",
		"Contact form submission from "+contactRequest.Name+" <"+contactRequest.Email+">: "+contactRequest.Subject)

	go func(form schemas.ContactRequest) {
		if err := handler.MailManager.SendContactMail(&form); err != nil {
			utils.LogMessage("error", "Error forwarding contact mail: "+err.Error())
		}
	}(*contactRequest)

	response := &schemas.ContactResponseDTO{
		Status:  "success",
		Message: "Thank you for your message",
	}

	utils.WriteAndLogResponse(c, response, http.StatusOK)
}
