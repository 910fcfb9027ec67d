package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/auth"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/templates"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func loadJobs(ctx context.Context, c *client.Client) ([]datatable.Record, error) {
	jobs, err := c.Jobs(ctx)
	if err != nil {
		return nil, err
	}
	return datatable.RecordsFrom(jobs)
}

func jobColumns(extra ...datatable.Column) []datatable.Column {
	cols := []datatable.Column{
		{Key: "id", Title: "#", DisableSearch: true},
		{Key: "customer_name", Title: "Customer"},
		{Key: "location", Title: "Location"},
		{Key: "issue", Title: "Issue", DisableSort: true},
		{Key: "work_date", Title: "Work date", Render: dateCell, DisableSearch: true},
		{Key: "priority", Title: "Priority", Render: priorityBadge},
		{Key: "status", Title: "Status", Render: jobStatusBadge},
	}
	return append(cols, extra...)
}

// assignedColumn handles both forms of assigned_to: a nested user or a bare user id
var assignedColumn = datatable.Column{
	Key:   "assigned_to.username",
	Title: "Assigned to",
	Render: datatable.RenderFunc(func(value any, rec datatable.Record) datatable.Cell {
		if id, ok := rec["assigned_to"].(float64); ok {
			return datatable.Cell{Text: fmt.Sprintf("User #%d", int(id))}
		}
		return unassigned.Render(value, rec)
	}),
}

var unassigned = datatable.Placeholder("Unassigned")

var statusTabs = []tableTab{
	allTab,
	{name: "open", label: "Open", keep: fieldIs("status", string(types.JobOpen))},
	{name: "in_progress", label: "In progress", keep: fieldIs("status", string(types.JobInProgress))},
}

var ongoingJobsTable = &tableDef{
	id:          "ongoing-jobs",
	role:        types.RoleAdmin,
	title:       "Ongoing jobs",
	description: "Jobs that are open or being worked on.",
	pagePath:    "/admin/jobs/ongoing",
	columns:     jobColumns(assignedColumn),
	placeholder: "Search customer, location, issue...",
	emptyState: &datatable.EmptyState{
		Title:       "No ongoing jobs",
		Message:     "Post a job to get started.",
		ActionLabel: "Post job",
		ActionURL:   "/admin/jobs/new",
	},
	tabs: []tableTab{
		{name: "all", label: "All", keep: fieldIs("status", string(types.JobOpen), string(types.JobInProgress))},
		statusTabs[1],
		statusTabs[2],
	},
	load: loadJobs,
}

var jobHistoryTable = &tableDef{
	id:          "job-history",
	role:        types.RoleAdmin,
	title:       "Job history",
	description: "Every job posted, whatever its status.",
	pagePath:    "/admin/jobs/history",
	columns:     jobColumns(assignedColumn, datatable.Column{Key: "created_at", Title: "Posted", Render: dateTimeCell, DisableSearch: true}),
	placeholder: "Search customer, location, issue...",
	tabs: append(statusTabs[:3:3],
		tableTab{name: "completed", label: "Completed", keep: fieldIs("status", string(types.JobCompleted))},
	),
	emptyState: &datatable.EmptyState{Title: "No jobs yet", Message: "Jobs appear here once they are posted."},
	load:       loadJobs,
}

// completedJobsTable shows the reports filed for a job in the inspector
var completedJobsTable = &tableDef{
	id:          "completed-jobs",
	role:        types.RoleAdmin,
	title:       "Completed jobs",
	description: "Finished jobs. Select a job to see its completion reports.",
	pagePath:    "/admin/jobs/completed",
	columns:     jobColumns(assignedColumn),
	tabs:        []tableTab{{name: "all", label: "All", keep: fieldIs("status", string(types.JobCompleted))}},
	emptyState:  &datatable.EmptyState{Title: "No completed jobs", Message: "Jobs appear here once an employee submits a report."},
	load:        loadJobs,
	inspect:     inspectWithReports,
}

func inspectWithReports(ctx context.Context, c *client.Client, rec datatable.Record) (any, error) {
	id, err := datatable.IntField(rec, "id")
	if err != nil {
		return rec, nil
	}
	reports, err := c.ReportsByJob(ctx, id)
	if err != nil {
		return nil, err
	}
	return map[string]any{"job": rec, "reports": reports}, nil
}

var availableJobsTable = &tableDef{
	id:          "available-jobs",
	role:        types.RoleEmployee,
	title:       "Available jobs",
	description: "Open jobs waiting for someone to take them on.",
	pagePath:    "/employee/jobs",
	columns:     jobColumns(datatable.Column{Key: "phone_number", Title: "Phone", DisableSort: true}),
	placeholder: "Search customer, location, issue...",
	tabs: []tableTab{
		{name: "all", label: "All", keep: fieldIs("status", string(types.JobOpen))},
		{name: "high", label: "High priority", keep: openWithPriority(types.PriorityHigh)},
		{name: "medium", label: "Medium", keep: openWithPriority(types.PriorityMedium)},
		{name: "low", label: "Low", keep: openWithPriority(types.PriorityLow)},
	},
	emptyState: &datatable.EmptyState{Title: "No open jobs", Message: "New jobs appear here as soon as they are posted."},
	load:       loadJobs,
	actions: func(req *tableRequest) []datatable.RowAction {
		return []datatable.RowAction{{
			Name:  "accept",
			Label: "Accept",
			Icon:  "✓",
			Style: "btn-primary",
			Disabled: func(rec datatable.Record) bool {
				return recordString(rec, "status") != string(types.JobOpen)
			},
			OnClick: func(ctx context.Context, rec datatable.Record) error {
				id, err := datatable.IntField(rec, "id")
				if err != nil {
					return err
				}
				_, err = req.client.AcceptJob(ctx, id)
				return err
			},
		}}
	},
	messages: map[string]string{"accept": "Job accepted. You will find it under My ongoing jobs."},
}

func openWithPriority(p types.Priority) func(datatable.Record) bool {
	return func(rec datatable.Record) bool {
		return recordString(rec, "status") == string(types.JobOpen) && recordString(rec, "priority") == string(p)
	}
}

var myJobsTable = &tableDef{
	id:          "my-jobs",
	role:        types.RoleEmployee,
	title:       "My ongoing jobs",
	description: "Jobs in progress. Submit a report once the work is done.",
	pagePath:    "/employee/jobs/ongoing",
	columns:     jobColumns(datatable.Column{Key: "phone_number", Title: "Phone", DisableSort: true}),
	tabs:        []tableTab{{name: "all", label: "All", keep: fieldIs("status", string(types.JobInProgress))}},
	emptyState: &datatable.EmptyState{
		Title:       "No jobs in progress",
		Message:     "Accept an available job to start working on it.",
		ActionLabel: "Available jobs",
		ActionURL:   "/employee/jobs",
	},
	load: loadJobs,
	actions: func(req *tableRequest) []datatable.RowAction {
		return []datatable.RowAction{{
			Name:  "report",
			Label: "Submit report",
			Icon:  "✎",
			OnClick: func(_ context.Context, rec datatable.Record) error {
				id, err := datatable.IntField(rec, "id")
				if err != nil {
					return err
				}
				auth.Redirect(req.w, req.r, "/employee/report?job="+strconv.Itoa(id))
				return errNavigated
			},
		}}
	},
}

var recentlyCompletedTable = &tableDef{
	id:          "recently-completed",
	role:        types.RoleEmployee,
	title:       "Recently completed",
	description: "Jobs that have been completed.",
	pagePath:    "/employee/jobs/completed",
	columns:     jobColumns(),
	tabs:        []tableTab{{name: "all", label: "All", keep: fieldIs("status", string(types.JobCompleted))}},
	emptyState:  &datatable.EmptyState{Title: "Nothing completed yet", Message: "Jobs appear here once their report is submitted."},
	load:        loadJobs,
	inspect:     inspectWithReports,
}

func (h *HandlerService) PostJobPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Post job", "/admin/jobs/new", templates.Join(
		templates.PageHeader("Post job", "Create a job for an employee to pick up."),
		templates.FormCard(templates.PostJobForm()),
	))
}

// CreateJob handles the post job form
func (h *HandlerService) CreateJob(w http.ResponseWriter, r *http.Request) {
	job := types.NewJob{
		CustomerName: r.FormValue("customer_name"),
		PhoneNumber:  r.FormValue("phone_number"),
		Location:     r.FormValue("location"),
		Issue:        r.FormValue("issue"),
		WorkDate:     r.FormValue("work_date"),
		Priority:     types.Priority(r.FormValue("priority")),
	}

	created, err := h.AuthService.Client(w, r).CreateJob(r.Context(), job)
	if err != nil {
		handleAlertError(w, r, err, "create job")
		return
	}
	render(w, r, templates.SuccessAlert(fmt.Sprintf("Job #%d posted for %s.", created.ID, created.CustomerName)), "success alert")
}
