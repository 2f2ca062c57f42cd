package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	types "github.com/yungbote/pactify-backend/internal/domain"
	"github.com/yungbote/pactify-backend/internal/http/response"
	"github.com/yungbote/pactify-backend/internal/modules/contracts/view"
	"github.com/yungbote/pactify-backend/internal/observability"
	"github.com/yungbote/pactify-backend/internal/platform/apierr"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/services"
)

type ContractHandler struct {
	log       *logger.Logger
	contracts services.ContractService
	metrics   *observability.Metrics
}

func NewContractHandler(log *logger.Logger, contracts services.ContractService, metrics *observability.Metrics) *ContractHandler {
	return &ContractHandler{log: log.With("handler", "ContractHandler"), contracts: contracts, metrics: metrics}
}

type contractSummary struct {
	ID           uuid.UUID  `json:"id"`
	Title        string     `json:"title"`
	Status       string     `json:"status"`
	Badge        view.Badge `json:"badge"`
	Amount       string     `json:"amount"`
	TemplateName string     `json:"template_name"`
	CreatedAt    time.Time  `json:"created_at"`
}

type contractDetail struct {
	contractSummary
	Description string          `json:"description"`
	ClientEmail string          `json:"client_email"`
	PaymentType string          `json:"payment_type"`
	Currency    string          `json:"currency"`
	TotalAmount *string         `json:"total_amount"`
	Content     json.RawMessage `json:"content"`
}

func summarize(c *types.Contract) contractSummary {
	d := view.NewDetail(c)
	return contractSummary{
		ID:           c.ID,
		Title:        c.Title,
		Status:       string(c.Status),
		Badge:        d.Badge,
		Amount:       d.Amount,
		TemplateName: d.TemplateName,
		CreatedAt:    c.CreatedAt,
	}
}

func detail(c *types.Contract) contractDetail {
	out := contractDetail{
		contractSummary: summarize(c),
		Description:     c.Description,
		ClientEmail:     c.ClientEmail,
		PaymentType:     string(c.PaymentType),
		Currency:        string(c.Currency),
	}
	if c.TotalAmount.Valid {
		s := c.TotalAmount.Decimal.StringFixed(2)
		out.TotalAmount = &s
	}
	doc, err := json.Marshal(view.NormalizeDocument(c.Content))
	if err == nil {
		out.Content = doc
	}
	return out
}

// GET /api/contract-templates
func (h *ContractHandler) ListTemplates(c *gin.Context) {
	rows, err := h.contracts.ListTemplates(c.Request.Context())
	if err != nil {
		h.log.Error("List templates failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"templates": view.TemplateOptions(rows)})
}

// GET /api/contracts
func (h *ContractHandler) ListContracts(c *gin.Context) {
	rows, err := h.contracts.ListContracts(c.Request.Context(), ownerID(c))
	if err != nil {
		h.log.Error("List contracts failed", "error", err)
		response.RespondAPIError(c, err)
		return
	}
	out := make([]contractSummary, 0, len(rows))
	for _, row := range rows {
		out = append(out, summarize(row))
	}
	response.RespondOK(c, gin.H{"contracts": out})
}

// GET /api/contracts/:id
func (h *ContractHandler) GetContract(c *gin.Context) {
	id, ok := pathID(c, "id")
	if !ok {
		return
	}
	row, err := h.contracts.GetContract(c.Request.Context(), id, ownerID(c))
	if err != nil {
		response.RespondAPIError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"contract": detail(row)})
}

// POST /api/contracts
// Answers {success: true, contractId} or {error: "..."}.
func (h *ContractHandler) CreateContract(c *gin.Context) {
	var req types.CreateContractRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	res, err := h.contracts.CreateContract(c.Request.Context(), ownerID(c), req)
	if err != nil {
		if ae, ok := apierr.As(err); ok {
			c.JSON(ae.Status, gin.H{"error": ae.Error()})
			return
		}
		h.log.Error("Create contract failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create contract"})
		return
	}
	h.metrics.IncContractsCreated()
	response.RespondOK(c, gin.H{"success": true, "contractId": res.ContractID})
}
