package handlers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/fieldops/opsconsole/internal/logger"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/templates"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

// SubmitReportPage lists the jobs in progress; ?job= preselects one
func (h *HandlerService) SubmitReportPage(w http.ResponseWriter, r *http.Request) {
	jobs, err := h.AuthService.Client(w, r).Jobs(r.Context())
	if err != nil {
		handlePageError(w, r, err, "load jobs", "Submit report", "/employee/report")
		return
	}
	selected, _ := strconv.Atoi(r.URL.Query().Get("job"))
	renderPage(w, r, "Submit report", "/employee/report", templates.Join(
		templates.PageHeader("Submit report", "Describe the work done. The job is marked completed once the report is saved."),
		templates.FormCard(templates.SubmitReportForm(jobs, selected)),
	))
}

// SubmitReport saves the report and then completes the job. When only the report was saved the
// alert says so, since submitting again would file a second report.
func (h *HandlerService) SubmitReport(w http.ResponseWriter, r *http.Request) {
	reqLogger := logger.ContextRequestLogger(r.Context())
	c := h.AuthService.Client(w, r)

	jobID, _ := strconv.Atoi(r.FormValue("job"))
	report := types.NewReport{
		Job:             jobID,
		CompanyName:     r.FormValue("company_name"),
		TimeTaken:       r.FormValue("time_taken"),
		EquipmentUsed:   r.FormValue("equipment_used"),
		WorkDescription: r.FormValue("work_description"),
	}
	if err := report.Validate(); err != nil {
		handleAlertError(w, r, client.NewClientInputError(err), "submit report")
		return
	}

	job, _, err := c.Job(r.Context(), jobID)
	if err != nil {
		handleAlertError(w, r, err, "load job")
		return
	}

	logger.ContextWithLogAttrs(r.Context(), slog.Int("job_id", jobID))

	saved, err := c.SubmitReport(r.Context(), report, job.Status)
	var partial *client.PartialError
	if errors.As(err, &partial) {
		reqLogger.Warn("Report saved but job not completed", slog.String("error", err.Error()))
		if errors.Is(err, client.ErrSessionExpired) {
			return
		}
		render(w, r, templates.ErrorAlert(client.UserMessage(err)), "error alert")
		return
	}
	if err != nil {
		handleAlertError(w, r, err, "submit report")
		return
	}

	reqLogger.Info("Report submitted", slog.Int("report_id", saved.ID))
	render(w, r, templates.SuccessAlert(fmt.Sprintf("Report #%d submitted and job #%d marked completed.", saved.ID, jobID)), "success alert")
}
