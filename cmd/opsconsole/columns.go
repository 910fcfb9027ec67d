package main

import (
	"strconv"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

var statusText = datatable.RenderFunc(func(value any, _ datatable.Record) datatable.Cell {
	return datatable.Cell{Text: types.StatusLabel(datatable.Stringify(value))}
})

var dateText = datatable.RenderFunc(func(value any, _ datatable.Record) datatable.Cell {
	return datatable.Cell{Text: types.FormatDate(datatable.Stringify(value))}
})

var activeText = datatable.RenderFunc(func(_ any, rec datatable.Record) datatable.Cell {
	if active, ok := rec["is_active"].(bool); ok && !active {
		return datatable.Cell{Text: "Inactive"}
	}
	return datatable.Cell{Text: "Active"}
})

var jobColumns = []datatable.Column{
	{Key: "customer_name", Title: "Customer"},
	{Key: "location", Title: "Location"},
	{Key: "work_date", Title: "Work date", Render: dateText, DisableSearch: true},
	{Key: "priority", Title: "Priority", Render: statusText},
	{Key: "status", Title: "Status", Render: statusText},
	{Key: "assigned_to.username", Title: "Assigned to", Render: datatable.Placeholder("Unassigned")},
	{Key: "issue", Title: "Issue", DisableSort: true},
}

var rentalColumns = []datatable.Column{
	{Key: "customer_name", Title: "Customer"},
	{Key: "device_serial", Title: "Device"},
	{Key: "from_date", Title: "From", Render: dateText, DisableSearch: true},
	{Key: "to_date", Title: "To", Render: dateText, DisableSearch: true},
	{Key: "status", Title: "Status", Render: statusText},
	{Key: "security_deposit", Title: "Deposit", DisableSearch: true},
	{Key: "phone_number", Title: "Phone", DisableSort: true},
}

var deviceColumns = []datatable.Column{
	{Key: "device_name", Title: "Device"},
	{Key: "serial_no", Title: "Serial"},
	{Key: "model", Title: "Model"},
	{Key: "availability", Title: "Availability", Render: statusText},
}

var userColumns = []datatable.Column{
	{Key: "email", Title: "Email"},
	{Key: "username", Title: "Username", Render: datatable.Placeholder("-")},
	{Key: "role", Title: "Role", Render: statusText},
	{Key: "is_active", Title: "Status", Render: activeText, DisableSearch: true},
}

var reportColumns = []datatable.Column{
	{Key: "job", Title: "Job"},
	{Key: "company_name", Title: "Company"},
	{Key: "time_taken", Title: "Time taken"},
	{Key: "equipment_used", Title: "Equipment"},
	{Key: "work_description", Title: "Work done", DisableSort: true},
}

// parseID reads a numeric record id argument
func parseID(arg string) (int, error) {
	id, err := strconv.Atoi(arg)
	if err != nil || id < 1 {
		return 0, &argError{arg: arg}
	}
	return id, nil
}

type argError struct {
	arg string
}

func (e *argError) Error() string {
	return "invalid id " + strconv.Quote(e.arg) + ", expected a positive number"
}
