package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/pactify-backend/internal/http/response"
	"github.com/yungbote/pactify-backend/internal/modules/contracts/wizard"
	"github.com/yungbote/pactify-backend/internal/platform/apierr"
	"github.com/yungbote/pactify-backend/internal/services"
)

type WizardHandler struct {
	wizards services.WizardService
}

func NewWizardHandler(wizards services.WizardService) *WizardHandler {
	return &WizardHandler{wizards: wizards}
}

// wizardView is the session plus the labels the step screens display.
type wizardView struct {
	*wizard.Session
	StepName      string `json:"step_name"`
	PriceLabel    string `json:"price_label"`
	TemplateLabel string `json:"template_label"`
	CanSubmit     bool   `json:"can_submit"`
}

func newWizardView(s *wizard.Session) *wizardView {
	if s == nil {
		return nil
	}
	return &wizardView{
		Session:       s,
		StepName:      s.State.Step.String(),
		PriceLabel:    s.State.Draft.PriceLabel(),
		TemplateLabel: s.State.Draft.TemplateLabel(),
		CanSubmit:     s.State.Step == wizard.StepReviewSubmit && !s.Pending,
	}
}

// respond writes the session, or the error envelope with the session attached
// when one is available so the client can keep rendering.
func (h *WizardHandler) respond(c *gin.Context, sess *wizard.Session, err error) {
	if err == nil {
		response.RespondOK(c, gin.H{"wizard": newWizardView(sess)})
		return
	}
	ae, ok := apierr.As(err)
	if !ok || sess == nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(ae.Status, gin.H{
		"error":  response.APIError{Message: ae.Error(), Code: ae.Code},
		"wizard": newWizardView(sess),
	})
}

// POST /api/contract-wizards
func (h *WizardHandler) Start(c *gin.Context) {
	sess, err := h.wizards.Start(c.Request.Context(), ownerID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"wizard": newWizardView(sess)})
}

// GET /api/contract-wizards/:id
func (h *WizardHandler) Get(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sess, err := h.wizards.Get(c.Request.Context(), ownerID(c), id)
	h.respond(c, sess, err)
}

// POST /api/contract-wizards/:id/template
// body: { "template": "Web Development Contract" | "custom" }
func (h *WizardHandler) SelectTemplate(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Template string `json:"template"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sess, err := h.wizards.SelectTemplate(c.Request.Context(), ownerID(c), id, req.Template)
	h.respond(c, sess, err)
}

// PATCH /api/contract-wizards/:id/fields
// body: { "field": "title", "value": "..." }
func (h *WizardHandler) SetField(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	var req struct {
		Field string `json:"field"`
		Value string `json:"value"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	sess, err := h.wizards.SetField(c.Request.Context(), ownerID(c), id, req.Field, req.Value)
	h.respond(c, sess, err)
}

// POST /api/contract-wizards/:id/next
func (h *WizardHandler) Next(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sess, err := h.wizards.Next(c.Request.Context(), ownerID(c), id)
	h.respond(c, sess, err)
}

// POST /api/contract-wizards/:id/back
func (h *WizardHandler) Back(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	sess, err := h.wizards.Back(c.Request.Context(), ownerID(c), id)
	h.respond(c, sess, err)
}

// POST /api/contract-wizards/:id/submit
// A gate failure answers 422 with the outcome; every settled attempt otherwise answers 200.
func (h *WizardHandler) Submit(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	out, err := h.wizards.Submit(c.Request.Context(), ownerID(c), id)
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	status := http.StatusOK
	if out.Status == services.SubmitValidationError {
		status = http.StatusUnprocessableEntity
	}
	c.JSON(status, gin.H{
		"outcome": out,
		"wizard":  newWizardView(out.Session),
	})
}
