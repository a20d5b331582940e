package scammers

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"github.com/linesmerrill/scammer-blacklist/models"
)

// DeleteState is a step of the delete flow of a card
type DeleteState int

// Delete flow states. A failed delete resets the flow to Idle and is
// reported through Err.
const (
	DeleteIdle DeleteState = iota
	DeleteConfirming
	DeleteDeleting
)

func (s DeleteState) String() string {
	switch s {
	case DeleteConfirming:
		return "confirming"
	case DeleteDeleting:
		return "deleting"
	default:
		return "idle"
	}
}

// Delete flow errors
var (
	ErrDeleteInFlight = errors.New("a delete is already in progress for this report")
	ErrNotConfirming  = errors.New("delete was not opened for confirmation")
	ErrNoOwnReport    = errors.New("no report authored by the viewer on this profile")
	ErrMissingToken   = errors.New("missing auth token")
)

// ReportDeleter deletes a single report of a profile
type ReportDeleter interface {
	DeleteReport(ctx context.Context, profileID, reportID, token string) error
}

// Notifier receives the notifications produced by the flow
type Notifier interface {
	Notify(n models.Notification)
}

// NotifierFunc adapts a function to a Notifier
type NotifierFunc func(n models.Notification)

// Notify calls f(n)
func (f NotifierFunc) Notify(n models.Notification) { f(n) }

// DeleteFlow drives the confirm-then-delete interaction of one card
type DeleteFlow struct {
	card      Card
	token     string
	api       ReportDeleter
	notifier  Notifier
	onDeleted func()

	mu      sync.Mutex
	state   DeleteState
	lastErr error
}

// NewDeleteFlow creates an idle delete flow for a card. onDeleted may be nil.
func NewDeleteFlow(card Card, token string, api ReportDeleter, notifier Notifier, onDeleted func()) *DeleteFlow {
	return &DeleteFlow{
		card:      card,
		token:     token,
		api:       api,
		notifier:  notifier,
		onDeleted: onDeleted,
	}
}

// State returns the current state
func (f *DeleteFlow) State() DeleteState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Err returns the error of the last delete when it failed, nil otherwise
func (f *DeleteFlow) Err() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.lastErr
}

// Open moves the flow to Confirming
func (f *DeleteFlow) Open() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	switch f.state {
	case DeleteDeleting:
		return ErrDeleteInFlight
	case DeleteConfirming:
		return nil
	}
	if !f.card.CanDelete() {
		return ErrNoOwnReport
	}
	f.state = DeleteConfirming
	return nil
}

// Cancel closes the confirmation without deleting anything
func (f *DeleteFlow) Cancel() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.state == DeleteConfirming {
		f.state = DeleteIdle
	}
}

// Confirm dispatches the delete of the viewer's own report and blocks until
// the API answers. The outcome is always reported to the notifier.
func (f *DeleteFlow) Confirm(ctx context.Context) error {
	f.mu.Lock()
	switch {
	case f.state == DeleteDeleting:
		f.mu.Unlock()
		return ErrDeleteInFlight
	case f.state != DeleteConfirming:
		f.mu.Unlock()
		return ErrNotConfirming
	case f.token == "":
		f.state = DeleteIdle
		f.mu.Unlock()
		return ErrMissingToken
	case !f.card.CanDelete():
		f.state = DeleteIdle
		f.mu.Unlock()
		return ErrNoOwnReport
	}
	f.state = DeleteDeleting
	profileID, reportID := f.card.ProfileID, f.card.OwnReport.ID
	f.mu.Unlock()

	err := f.api.DeleteReport(ctx, profileID, reportID, f.token)

	f.mu.Lock()
	if err != nil {
		f.state = DeleteIdle
		f.lastErr = err
		f.mu.Unlock()
		zap.S().Errorw("failed to delete report",
			"scammerId", profileID,
			"reportId", reportID,
			"error", err)
		f.notifier.Notify(models.Notification{
			Title:       "Error",
			Description: "Failed to delete your report. Please try again.",
			Variant:     models.VariantDestructive,
		})
		return err
	}
	f.state = DeleteIdle
	f.lastErr = nil
	f.mu.Unlock()

	f.notifier.Notify(models.Notification{
		Title:       "Report deleted",
		Description: "Your report has been successfully deleted",
		Variant:     models.VariantDefault,
	})
	if f.onDeleted != nil {
		f.onDeleted()
	}
	return nil
}
