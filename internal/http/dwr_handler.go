package httpapi

import (
	"net/http"

	"dwr-api/internal/models"

	"go.uber.org/zap"
)

const submitSuccessMessage = "DWR submitted successfully"

// handleSubmitDWR serves POST /submit-dwr.
func (a *API) handleSubmitDWR(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "POST required")
		return
	}

	var report models.DailyWorkReport
	if err := readBodyJSON(r, a.opts.MaxBodyBytes, &report); err != nil {
		a.metrics.RecordDWRSubmitError()
		a.fail(w, r, "submit-dwr", err)
		return
	}

	id, err := a.reports.Submit(r.Context(), &report)
	if err != nil {
		a.metrics.RecordDWRSubmitError()
		a.fail(w, r, "submit-dwr", err)
		return
	}

	a.metrics.RecordDWRSubmitted(len(report.Items))
	a.logger.Info("DWR submitted",
		zap.Int64("dwr_id", id),
		zap.String("request_id", RequestIDFrom(r.Context())),
	)
	writeJSON(w, http.StatusOK, models.SubmitResult{
		Success: true,
		ID:      id,
		Message: submitSuccessMessage,
	})
}
