package templates

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/a-h/templ"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

// Option is a select choice
type Option struct {
	Value    string
	Label    string
	Selected bool
}

// Field is one form control. Type "select" and "textarea" render those elements, anything else an input.
type Field struct {
	Name        string
	Label       string
	Type        string
	Value       string
	Placeholder string
	Required    bool
	Min         string
	Options     []Option
	Help        string
}

// Form is posted with htmx; the handler answers with an alert swapped into the page alert area
type Form struct {
	ID     string
	Action string
	Submit string
	Fields []Field
	// Note is shown above the fields, e.g. when a prerequisite is missing
	Note string
}

// FormCard renders a form inside a card
func FormCard(f Form) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		h := &htmlWriter{w: w}
		h.raw(`<div class="card">`)
		pageAlerts(h)
		if f.Note != "" {
			h.raw(`<p class="muted">`)
			h.text(f.Note)
			h.raw(`</p>`)
		}
		h.raw(`<form`)
		if f.ID != "" {
			h.attr("id", f.ID)
		}
		h.attr("hx-post", f.Action)
		h.attr("hx-target", "#"+PageAlertsID)
		h.raw(`><div class="form-grid">`)
		for _, fd := range f.Fields {
			writeField(h, fd)
		}
		h.raw(`</div><div class="form-actions"><button type="submit" class="btn-primary">`)
		h.text(f.Submit)
		h.raw(`</button></div></form></div>`)
		return h.err
	})
}

func writeField(h *htmlWriter, f Field) {
	h.raw(`<div><label`)
	h.attr("for", f.Name)
	h.raw(">")
	h.text(f.Label)
	h.raw(`</label>`)
	switch f.Type {
	case "select":
		h.raw(`<select`)
		h.attr("id", f.Name)
		h.attr("name", f.Name)
		if f.Required {
			h.raw(` required`)
		}
		h.raw(">")
		for _, o := range f.Options {
			h.raw(`<option`)
			h.attr("value", o.Value)
			if o.Selected {
				h.raw(` selected`)
			}
			h.raw(">")
			h.text(o.Label)
			h.raw(`</option>`)
		}
		h.raw(`</select>`)
	case "textarea":
		h.raw(`<textarea rows="4"`)
		h.attr("id", f.Name)
		h.attr("name", f.Name)
		if f.Placeholder != "" {
			h.attr("placeholder", f.Placeholder)
		}
		if f.Required {
			h.raw(` required`)
		}
		h.raw(">")
		h.text(f.Value)
		h.raw(`</textarea>`)
	default:
		typ := f.Type
		if typ == "" {
			typ = "text"
		}
		h.raw(`<input class="input-field"`)
		h.attr("type", typ)
		h.attr("id", f.Name)
		h.attr("name", f.Name)
		if f.Value != "" {
			h.attr("value", f.Value)
		}
		if f.Placeholder != "" {
			h.attr("placeholder", f.Placeholder)
		}
		if f.Min != "" {
			h.attr("min", f.Min)
		}
		if f.Required {
			h.raw(` required`)
		}
		h.raw(">")
	}
	if f.Help != "" {
		h.raw(`<small class="muted">`)
		h.text(f.Help)
		h.raw(`</small>`)
	}
	h.raw(`</div>`)
}

var priorityOptions = []Option{
	{Value: string(types.PriorityLow), Label: "Low"},
	{Value: string(types.PriorityMedium), Label: "Medium", Selected: true},
	{Value: string(types.PriorityHigh), Label: "High"},
}

func PostJobForm() Form {
	return Form{
		ID:     "post-job",
		Action: "/ui-api/jobs",
		Submit: "Post job",
		Fields: []Field{
			{Name: "customer_name", Label: "Customer name", Required: true},
			{Name: "phone_number", Label: "Phone number", Type: "tel", Required: true},
			{Name: "location", Label: "Location", Required: true},
			{Name: "work_date", Label: "Work date", Type: "date", Required: true},
			{Name: "priority", Label: "Priority", Type: "select", Options: priorityOptions},
			{Name: "issue", Label: "Issue", Type: "textarea", Required: true, Placeholder: "Describe the problem"},
		},
	}
}

// NewRentalForm offers the available devices by serial number
func NewRentalForm(devices []types.Device) Form {
	options := []Option{{Value: "", Label: "Select a device"}}
	for _, d := range devices {
		if d.Availability != types.AvailabilityAvailable {
			continue
		}
		options = append(options, Option{Value: d.SerialNo, Label: fmt.Sprintf("%s (%s)", d.DeviceName, d.SerialNo)})
	}
	f := Form{
		ID:     "new-rental",
		Action: "/ui-api/rentals",
		Submit: "Create rental",
		Fields: []Field{
			{Name: "customer_name", Label: "Customer name", Required: true},
			{Name: "phone_number", Label: "Phone number", Type: "tel", Required: true},
			{Name: "device_serial", Label: "Device", Type: "select", Required: true, Options: options},
			{Name: "from_date", Label: "From", Type: "date", Required: true},
			{Name: "to_date", Label: "To", Type: "date", Required: true},
			{Name: "rental_days", Label: "Rental days", Type: "number", Min: "1", Required: true},
			{Name: "security_deposit", Label: "Security deposit", Type: "number", Min: "0", Required: true},
		},
	}
	if len(options) == 1 {
		f.Note = "No devices are available for rent right now."
	}
	return f
}

func AddDeviceForm() Form {
	return Form{
		ID:     "add-device",
		Action: "/ui-api/devices",
		Submit: "Add device",
		Fields: []Field{
			{Name: "device_name", Label: "Device name", Required: true},
			{Name: "serial_no", Label: "Serial number", Required: true},
			{Name: "model", Label: "Model", Required: true},
			{Name: "availability", Label: "Availability", Type: "select", Options: []Option{
				{Value: string(types.AvailabilityAvailable), Label: "Available", Selected: true},
				{Value: string(types.AvailabilityMaintenance), Label: "Maintenance"},
			}},
		},
	}
}

func RegisterUserForm() Form {
	return Form{
		ID:     "register-user",
		Action: "/ui-api/users",
		Submit: "Create user",
		Fields: []Field{
			{Name: "email", Label: "Email", Type: "email", Required: true},
			{Name: "username", Label: "Username"},
			{Name: "password", Label: "Password", Type: "password", Required: true},
			{Name: "role", Label: "Role", Type: "select", Options: []Option{
				{Value: string(types.RoleEmployee), Label: "Employee", Selected: true},
				{Value: string(types.RoleAdmin), Label: "Admin"},
			}},
		},
	}
}

// SubmitReportForm lists the employee's in progress jobs. selected preselects one of them.
func SubmitReportForm(jobs []types.Job, selected int) Form {
	options := []Option{{Value: "", Label: "Select a job"}}
	for _, j := range jobs {
		if j.Status != types.JobInProgress {
			continue
		}
		options = append(options, Option{
			Value:    strconv.Itoa(j.ID),
			Label:    fmt.Sprintf("#%d %s, %s", j.ID, j.CustomerName, j.Location),
			Selected: j.ID == selected,
		})
	}
	f := Form{
		ID:     "submit-report",
		Action: "/ui-api/reports",
		Submit: "Submit report",
		Fields: []Field{
			{Name: "job", Label: "Job", Type: "select", Required: true, Options: options},
			{Name: "company_name", Label: "Company name", Required: true},
			{Name: "time_taken", Label: "Time taken", Required: true, Placeholder: "e.g. 2 hours"},
			{Name: "equipment_used", Label: "Equipment used", Required: true},
			{Name: "work_description", Label: "Work description", Type: "textarea", Required: true},
		},
	}
	if len(options) == 1 {
		f.Note = "You have no jobs in progress. Accept a job first."
	}
	return f
}
