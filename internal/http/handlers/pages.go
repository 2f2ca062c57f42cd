package handlers

import (
	"errors"
	"net/http"
	"net/url"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/domain/contracts"
	"github.com/yungbote/pactify-backend/internal/modules/contracts/view"
	"github.com/yungbote/pactify-backend/internal/modules/contracts/wizard"
	"github.com/yungbote/pactify-backend/internal/platform/apierr"
	"github.com/yungbote/pactify-backend/internal/platform/dbctx"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/realtime"
	"github.com/yungbote/pactify-backend/internal/services"
)

const (
	signInPage      = "/sign-in"
	contractsPage   = services.ContractsListPath
	newContractPage = "/dashboard/contracts/new"
)

// PageHandler serves the server-rendered dashboard. Identity is resolved by
// RequireSession before any dashboard handler runs.
type PageHandler struct {
	log       *logger.Logger
	auth      *AuthHandler
	users     services.UserService
	contracts services.ContractService
	wizards   services.WizardService
}

func NewPageHandler(log *logger.Logger, auth *AuthHandler, users services.UserService, contracts services.ContractService, wizards services.WizardService) *PageHandler {
	return &PageHandler{
		log:       log.With("handler", "PageHandler"),
		auth:      auth,
		users:     users,
		contracts: contracts,
		wizards:   wizards,
	}
}

func (h *PageHandler) header(c *gin.Context) *view.Header {
	me, err := h.users.GetMe(dbctx.Context{Ctx: c.Request.Context()})
	if err != nil {
		h.log.Warn("Header user lookup failed", "error", err)
		me = nil
	}
	hd := view.NewHeader(me)
	return &hd
}

func (h *PageHandler) notFound(c *gin.Context, message string) {
	c.HTML(http.StatusNotFound, "not_found.tmpl", gin.H{
		"Title":   "Not found",
		"Header":  h.header(c),
		"Message": message,
	})
}

// safeNext keeps post-sign-in redirects on this site.
func safeNext(raw string) string {
	raw = strings.TrimSpace(raw)
	u, err := url.Parse(raw)
	if raw == "" || err != nil || u.IsAbs() || u.Host != "" || !strings.HasPrefix(raw, "/") || strings.HasPrefix(raw, "//") {
		return contractsPage
	}
	return raw
}

// GET /sign-in
func (h *PageHandler) SignInForm(c *gin.Context) {
	c.HTML(http.StatusOK, "sign_in.tmpl", gin.H{
		"Title": "Sign in",
		"Next":  safeNext(c.Query("next")),
	})
}

// POST /sign-in
func (h *PageHandler) SignIn(c *gin.Context) {
	email := c.PostForm("email")
	next := safeNext(c.PostForm("next"))
	accessToken, _, err := h.auth.authService.LoginUser(c.Request.Context(), email, c.PostForm("password"))
	if err != nil {
		status, msg := http.StatusUnauthorized, "Invalid email or password."
		if !errors.Is(err, services.ErrInvalidCredentials) {
			h.log.Error("Page sign-in failed", "error", err)
			status, msg = http.StatusInternalServerError, "Sign in is unavailable right now. Please try again."
		}
		c.HTML(status, "sign_in.tmpl", gin.H{
			"Title": "Sign in",
			"Next":  next,
			"Email": email,
			"Error": msg,
		})
		return
	}
	h.auth.setAccessCookie(c, accessToken)
	c.Redirect(http.StatusSeeOther, next)
}

// POST /sign-out
// Failures are logged only; the browser always lands on the sign-in page.
func (h *PageHandler) SignOut(c *gin.Context) {
	h.auth.signOut(c)
	c.Redirect(http.StatusSeeOther, signInPage)
}

// GET /dashboard/contracts
func (h *PageHandler) ContractList(c *gin.Context) {
	rows, err := h.contracts.ListContracts(c.Request.Context(), ownerID(c))
	if err != nil {
		h.log.Error("List contracts page failed", "error", err)
		c.HTML(http.StatusInternalServerError, "not_found.tmpl", gin.H{
			"Title":   "Error",
			"Header":  h.header(c),
			"Message": "Your contracts could not be loaded.",
		})
		return
	}
	c.HTML(http.StatusOK, "contracts_list.tmpl", gin.H{
		"Title":   "Contracts",
		"Header":  h.header(c),
		"Rows":    view.NewRows(rows),
		"Created": c.Query("created") == "1",
	})
}

// GET /dashboard/contracts/:id
// A foreign contract renders exactly like a missing one.
func (h *PageHandler) ContractDetail(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.notFound(c, "")
		return
	}
	row, err := h.contracts.GetContract(c.Request.Context(), id, ownerID(c))
	if err != nil {
		if ae, ok := apierr.As(err); !ok || ae.Status != http.StatusNotFound {
			h.log.Error("Contract detail failed", "contract_id", id, "error", err)
		}
		h.notFound(c, "")
		return
	}
	d := view.NewDetail(row)
	c.HTML(http.StatusOK, "contract_detail.tmpl", gin.H{
		"Title":    d.Title,
		"Header":   h.header(c),
		"Contract": d,
	})
}

type wizardPage struct {
	ID            uuid.UUID
	Step          int
	State         wizard.State
	Pending       bool
	FormError     string
	PriceLabel    string
	TemplateLabel string
}

func newWizardPage(s *wizard.Session) wizardPage {
	return wizardPage{
		ID:            s.ID,
		Step:          int(s.State.Step),
		State:         s.State,
		Pending:       s.Pending,
		FormError:     s.FormError,
		PriceLabel:    s.State.Draft.PriceLabel(),
		TemplateLabel: s.State.Draft.TemplateLabel(),
	}
}

func currencyCodes() []string {
	out := make([]string, len(contracts.AllCurrencies))
	for i, cur := range contracts.AllCurrencies {
		out[i] = string(cur)
	}
	return out
}

func (h *PageHandler) renderWizard(c *gin.Context, status int, sess *wizard.Session, toast *realtime.Toast) {
	data := gin.H{
		"Title":      "New Contract",
		"Header":     h.header(c),
		"Wizard":     newWizardPage(sess),
		"Currencies": currencyCodes(),
		"Toast":      toast,
	}
	if sess.State.Step == wizard.StepSelectTemplate {
		templates, err := h.contracts.ListTemplates(c.Request.Context())
		if err != nil {
			h.log.Warn("Template catalog unavailable", "error", err)
		}
		data["Templates"] = view.TemplateOptions(templates)
	}
	c.HTML(status, "contract_new.tmpl", data)
}

func (h *PageHandler) wizardPath(id uuid.UUID) string {
	return newContractPage + "/" + id.String()
}

// wizardResult renders the session after a mutation. Errors that carry the
// session re-render it with the message inline.
func (h *PageHandler) wizardResult(c *gin.Context, sess *wizard.Session, err error) {
	if err == nil {
		c.Redirect(http.StatusSeeOther, h.wizardPath(sess.ID))
		return
	}
	ae, ok := apierr.As(err)
	if !ok || sess == nil {
		if !ok {
			h.log.Error("Wizard page update failed", "error", err)
		}
		h.notFound(c, "This contract draft is no longer available.")
		return
	}
	shown := sess.Clone()
	shown.FormError = ae.Error()
	h.renderWizard(c, ae.Status, shown, nil)
}

// GET /dashboard/contracts/new
func (h *PageHandler) NewContract(c *gin.Context) {
	sess, err := h.wizards.Start(c.Request.Context(), ownerID(c))
	if err != nil {
		h.log.Error("Start wizard failed", "error", err)
		h.notFound(c, "A new contract could not be started.")
		return
	}
	c.Redirect(http.StatusSeeOther, h.wizardPath(sess.ID))
}

// GET /dashboard/contracts/new/:wid
func (h *PageHandler) WizardStep(c *gin.Context) {
	id, err := uuid.Parse(c.Param("wid"))
	if err != nil {
		h.notFound(c, "")
		return
	}
	sess, err := h.wizards.Get(c.Request.Context(), ownerID(c), id)
	if err != nil {
		h.notFound(c, "This contract draft is no longer available.")
		return
	}
	h.renderWizard(c, http.StatusOK, sess, nil)
}

// POST /dashboard/contracts/new/:wid/template
func (h *PageHandler) WizardTemplate(c *gin.Context) {
	id, err := uuid.Parse(c.Param("wid"))
	if err != nil {
		h.notFound(c, "")
		return
	}
	sess, err := h.wizards.SelectTemplate(c.Request.Context(), ownerID(c), id, c.PostForm("template"))
	h.wizardResult(c, sess, err)
}

// POST /dashboard/contracts/new/:wid/details
// Stores every posted field, then advances to review.
func (h *PageHandler) WizardDetails(c *gin.Context) {
	id, err := uuid.Parse(c.Param("wid"))
	if err != nil {
		h.notFound(c, "")
		return
	}
	ctx, owner := c.Request.Context(), ownerID(c)
	var sess *wizard.Session
	for _, f := range wizard.Fields {
		value, posted := c.GetPostForm(string(f))
		if !posted {
			continue
		}
		if sess, err = h.wizards.SetField(ctx, owner, id, string(f), value); err != nil {
			h.wizardResult(c, sess, err)
			return
		}
	}
	sess, err = h.wizards.Next(ctx, owner, id)
	h.wizardResult(c, sess, err)
}

// POST /dashboard/contracts/new/:wid/back
// Posted detail fields are kept so going back never loses typed values.
func (h *PageHandler) WizardBack(c *gin.Context) {
	id, err := uuid.Parse(c.Param("wid"))
	if err != nil {
		h.notFound(c, "")
		return
	}
	ctx, owner := c.Request.Context(), ownerID(c)
	for _, f := range wizard.Fields {
		if value, posted := c.GetPostForm(string(f)); posted {
			if _, err := h.wizards.SetField(ctx, owner, id, string(f), value); err != nil {
				h.log.Debug("Dropped field on back", "field", f, "error", err)
			}
		}
	}
	sess, err := h.wizards.Back(ctx, owner, id)
	h.wizardResult(c, sess, err)
}

// POST /dashboard/contracts/new/:wid/submit
func (h *PageHandler) WizardSubmit(c *gin.Context) {
	id, err := uuid.Parse(c.Param("wid"))
	if err != nil {
		h.notFound(c, "")
		return
	}
	out, err := h.wizards.Submit(c.Request.Context(), ownerID(c), id)
	if err != nil {
		current, getErr := h.wizards.Get(c.Request.Context(), ownerID(c), id)
		if getErr != nil {
			current = nil
		}
		h.wizardResult(c, current, err)
		return
	}
	switch out.Status {
	case services.SubmitCreated:
		c.Redirect(http.StatusSeeOther, out.Redirect+"?created=1")
	case services.SubmitValidationError:
		h.renderWizard(c, http.StatusUnprocessableEntity, out.Session, nil)
	default:
		sess := out.Session
		if sess == nil {
			if sess, err = h.wizards.Get(c.Request.Context(), ownerID(c), id); err != nil {
				h.notFound(c, "This contract draft is no longer available.")
				return
			}
		}
		h.renderWizard(c, http.StatusOK, sess, out.Toast)
	}
}
