package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/yungbote/pactify-backend/internal/modules/contracts/wizard"
	"github.com/yungbote/pactify-backend/internal/observability"
	"github.com/yungbote/pactify-backend/internal/platform/apierr"
	"github.com/yungbote/pactify-backend/internal/platform/logger"
	"github.com/yungbote/pactify-backend/internal/realtime"
)

const ContractsListPath = "/dashboard/contracts"

const releaseAttempts = 2

var (
	ErrSubmissionPending = errors.New("submission already in progress")
	ErrUnexpectedResult  = errors.New("an unexpected error occurred")
)

type SubmitStatus string

const (
	SubmitCreated         SubmitStatus = "created"
	SubmitValidationError SubmitStatus = "validation_error"
	SubmitError           SubmitStatus = "error"
	SubmitUnexpected      SubmitStatus = "unexpected"
)

var (
	toastCreated = realtime.Toast{
		Title:       "Contract Created",
		Description: "Your new contract draft has been saved.",
	}
	toastUnexpected = realtime.Toast{
		Title:       "Error",
		Description: "An unexpected error occurred.",
		Variant:     realtime.ToastDestructive,
	}
)

// SubmitOutcome is the user-visible result of one submission attempt.
// Redirect is set only when a contract was created.
type SubmitOutcome struct {
	Status     SubmitStatus    `json:"status"`
	Message    string          `json:"message,omitempty"`
	Redirect   string          `json:"redirect,omitempty"`
	ContractID *uuid.UUID      `json:"contract_id,omitempty"`
	Toast      *realtime.Toast `json:"toast,omitempty"`
	Session    *wizard.Session `json:"session,omitempty"`
}

type WizardService interface {
	Start(ctx context.Context, ownerID uuid.UUID) (*wizard.Session, error)
	Get(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error)
	SelectTemplate(ctx context.Context, ownerID, id uuid.UUID, name string) (*wizard.Session, error)
	SetField(ctx context.Context, ownerID, id uuid.UUID, field, value string) (*wizard.Session, error)
	Next(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error)
	Back(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error)
	Submit(ctx context.Context, ownerID, id uuid.UUID) (*SubmitOutcome, error)
}

type wizardService struct {
	log      *logger.Logger
	store    WizardStore
	creator  ContractCreator
	notifier ContractNotifier
	metrics  *observability.Metrics
	now      func() time.Time
}

type WizardOption func(*wizardService)

// WithWizardMetrics records every settled submission by outcome.
func WithWizardMetrics(m *observability.Metrics) WizardOption {
	return func(ws *wizardService) { ws.metrics = m }
}

func NewWizardService(log *logger.Logger, store WizardStore, creator ContractCreator, notifier ContractNotifier, opts ...WizardOption) WizardService {
	serviceLog := log.With("service", "WizardService")
	if notifier == nil {
		notifier = NewContractNotifier(nil)
	}
	ws := &wizardService{
		log:      serviceLog,
		store:    store,
		creator:  creator,
		notifier: notifier,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(ws)
	}
	return ws
}

func (ws *wizardService) Start(ctx context.Context, ownerID uuid.UUID) (*wizard.Session, error) {
	if ownerID == uuid.Nil {
		return nil, apierr.New(http.StatusUnauthorized, "unauthorized", ErrAuthenticationMissing)
	}
	sess := wizard.NewSession(ownerID, ws.now().UTC())
	if err := ws.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("create wizard session: %w", err)
	}
	return sess, nil
}

func (ws *wizardService) Get(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error) {
	sess, err := ws.store.Get(ctx, ownerID, id)
	if err != nil {
		return nil, wizardError(err)
	}
	return sess, nil
}

func (ws *wizardService) SelectTemplate(ctx context.Context, ownerID, id uuid.UUID, name string) (*wizard.Session, error) {
	return ws.update(ctx, ownerID, id, func(s *wizard.Session) error {
		return s.State.SelectTemplate(name)
	})
}

func (ws *wizardService) SetField(ctx context.Context, ownerID, id uuid.UUID, field, value string) (*wizard.Session, error) {
	f, err := wizard.ParseField(field)
	if err != nil {
		return nil, wizardError(err)
	}
	return ws.update(ctx, ownerID, id, func(s *wizard.Session) error {
		return s.State.Set(f, value)
	})
}

func (ws *wizardService) Next(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error) {
	return ws.update(ctx, ownerID, id, func(s *wizard.Session) error {
		return s.State.Next()
	})
}

func (ws *wizardService) Back(ctx context.Context, ownerID, id uuid.UUID) (*wizard.Session, error) {
	return ws.update(ctx, ownerID, id, func(s *wizard.Session) error {
		s.State.Back()
		return nil
	})
}

// update returns the stored session even on failure so callers can render it.
func (ws *wizardService) update(ctx context.Context, ownerID, id uuid.UUID, fn func(*wizard.Session) error) (*wizard.Session, error) {
	sess, err := ws.store.Update(ctx, ownerID, id, fn)
	if err != nil {
		return sess, wizardError(err)
	}
	ws.notifier.WizardUpdated(ctx, ownerID, sess)
	return sess, nil
}

// Submit claims the session's pending flag, runs the local gate, then makes
// exactly one create call. No timeout or retry is applied; a failed attempt
// leaves the draft in place for a manual retry.
func (ws *wizardService) Submit(ctx context.Context, ownerID, id uuid.UUID) (*SubmitOutcome, error) {
	var gateErr error
	claimed, err := ws.store.Update(ctx, ownerID, id, func(s *wizard.Session) error {
		// Stores may run fn again after a conflicting write.
		gateErr = nil
		if s.State.Step != wizard.StepReviewSubmit {
			return wizard.ErrStepMismatch
		}
		if s.Pending {
			return ErrSubmissionPending
		}
		if err := s.State.Validate(); err != nil {
			gateErr = err
			s.FormError = err.Error()
			return nil
		}
		s.FormError = ""
		s.Pending = true
		return nil
	})
	if err != nil {
		return nil, wizardError(err)
	}
	if gateErr != nil {
		ws.metrics.ObserveWizardSubmission(string(SubmitValidationError), 0)
		return &SubmitOutcome{Status: SubmitValidationError, Message: gateErr.Error(), Session: claimed}, nil
	}

	started := ws.now()
	res, createErr := ws.creator.CreateContract(ctx, ownerID, claimed.State.Request())

	// The attempt is over; release it even if the caller has gone away.
	settleCtx := context.WithoutCancel(ctx)

	switch {
	case createErr != nil:
		msg := createErr.Error()
		toast := realtime.Toast{Title: "Error Creating Contract", Description: msg, Variant: realtime.ToastDestructive}
		sess := ws.release(settleCtx, ownerID, id, msg)
		ws.notifier.Toast(settleCtx, ownerID, toast)
		ws.log.Warn("Contract creation failed", "session_id", id, "owner_id", ownerID, "error", createErr)
		ws.metrics.ObserveWizardSubmission(string(SubmitError), ws.now().Sub(started))
		return &SubmitOutcome{Status: SubmitError, Message: msg, Toast: &toast, Session: sess}, nil

	case res == nil || res.ContractID == uuid.Nil:
		toast := toastUnexpected
		sess := ws.release(settleCtx, ownerID, id, "")
		ws.notifier.Toast(settleCtx, ownerID, toast)
		ws.log.Error("Contract creation returned no id", "session_id", id, "owner_id", ownerID)
		ws.metrics.ObserveWizardSubmission(string(SubmitUnexpected), ws.now().Sub(started))
		return &SubmitOutcome{Status: SubmitUnexpected, Message: ErrUnexpectedResult.Error(), Toast: &toast, Session: sess}, nil
	}

	if err := ws.store.Delete(settleCtx, ownerID, id); err != nil && !errors.Is(err, wizard.ErrSessionNotFound) {
		ws.log.Warn("Failed to discard wizard session", "session_id", id, "error", err)
	}
	ws.metrics.ObserveWizardSubmission(string(SubmitCreated), ws.now().Sub(started))
	ws.metrics.IncContractsCreated()
	toast := toastCreated
	contractID := res.ContractID
	ws.notifier.Toast(settleCtx, ownerID, toast)
	ws.notifier.ContractCreated(settleCtx, ownerID, contractID)
	return &SubmitOutcome{
		Status:     SubmitCreated,
		Redirect:   ContractsListPath,
		ContractID: &contractID,
		Toast:      &toast,
	}, nil
}

// release clears the pending flag and records formError when non-empty. The
// step is left wherever the session is now. A failed write is tried once more
// since a session left pending blocks submission until it expires.
func (ws *wizardService) release(ctx context.Context, ownerID, id uuid.UUID, formError string) *wizard.Session {
	unpend := func(s *wizard.Session) error {
		s.Pending = false
		if formError != "" {
			s.FormError = formError
		}
		return nil
	}
	var (
		sess *wizard.Session
		err  error
	)
	for attempt := 1; attempt <= releaseAttempts; attempt++ {
		sess, err = ws.store.Update(ctx, ownerID, id, unpend)
		if err == nil || errors.Is(err, wizard.ErrSessionNotFound) {
			break
		}
		ws.log.Warn("Failed to release wizard session", "session_id", id, "attempt", attempt, "error", err)
	}
	if err != nil {
		ws.log.Error("Wizard session left pending", "session_id", id, "error", err)
		return nil
	}
	ws.notifier.WizardUpdated(ctx, ownerID, sess)
	return sess
}

func wizardError(err error) error {
	if _, ok := apierr.As(err); ok {
		return err
	}
	var ve *wizard.ValidationError
	switch {
	case errors.Is(err, wizard.ErrSessionNotFound):
		return apierr.New(http.StatusNotFound, "wizard_not_found", err)
	case errors.As(err, &ve):
		return apierr.New(http.StatusUnprocessableEntity, "validation_error", err)
	case errors.Is(err, wizard.ErrStepMismatch):
		return apierr.New(http.StatusConflict, "step_mismatch", err)
	case errors.Is(err, wizard.ErrUnknownField):
		return apierr.New(http.StatusBadRequest, "unknown_field", err)
	case errors.Is(err, ErrSubmissionPending):
		return apierr.New(http.StatusConflict, "submission_pending", err)
	}
	return err
}
