package handlers

import (
	"net/http"

	"github.com/linesmerrill/scammer-blacklist/api"
	"github.com/linesmerrill/scammer-blacklist/client"
	"github.com/linesmerrill/scammer-blacklist/logging"
	"github.com/linesmerrill/scammer-blacklist/models"
	"github.com/linesmerrill/scammer-blacklist/scammers"
)

// Report handles the report submission form
type Report struct {
	API  client.ScammerAPI
	View View
}

// ReportData is rendered by the report page
type ReportData struct {
	Form      scammers.ReportForm
	Errors    scammers.FieldErrors
	ScamTypes []models.ScamType
}

// ReportFormHandler renders an empty form
func (re Report) ReportFormHandler(w http.ResponseWriter, r *http.Request) {
	re.View.Render(w, r, http.StatusOK, "report", "Report a Scam", ReportData{ScamTypes: models.ScamTypes})
}

// SubmitReportHandler validates the posted form and creates the report
func (re Report) SubmitReportHandler(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		re.View.Render(w, r, http.StatusBadRequest, "report", "Report a Scam", ReportData{ScamTypes: models.ScamTypes}, models.Notification{
			Title:       "Error reporting scammer",
			Description: "The form could not be read. Please try again.",
			Variant:     models.VariantDestructive,
		})
		return
	}

	form := scammers.ReportFormFromValues(r.PostForm)
	if errs := form.Validate(); errs != nil {
		re.View.Render(w, r, http.StatusUnprocessableEntity, "report", "Report a Scam", ReportData{
			Form:      form,
			Errors:    errs,
			ScamTypes: models.ScamTypes,
		})
		return
	}

	viewer, ok := api.ViewerFromContext(r.Context())
	if !ok {
		re.View.redirectWith(w, r, api.LoginPath, models.Notification{
			Title:       "Authentication required",
			Description: "Please login to report a scam",
			Variant:     models.VariantDestructive,
		})
		return
	}

	ctx, cancel := api.WithAPITimeout(r.Context())
	defer cancel()
	if _, err := re.API.ReportScammer(ctx, form.Input(), viewer.Token); err != nil {
		logging.FromContext(r.Context()).Errorw("failed to submit report",
			"userId", viewer.User.ID,
			"profileLink", form.ProfileLink,
			"error", err)
		re.View.Render(w, r, http.StatusOK, "report", "Report a Scam", ReportData{
			Form:      form,
			ScamTypes: models.ScamTypes,
		}, models.Notification{
			Title:       "Error reporting scammer",
			Description: client.ErrorMessage(err),
			Variant:     models.VariantDestructive,
		})
		return
	}

	re.View.redirectWith(w, r, "/dashboard", models.Notification{
		Title:       "Scammer reported successfully",
		Description: "Thank you for helping keep LinkedIn safe.",
		Variant:     models.VariantDefault,
	})
}
