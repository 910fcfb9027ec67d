package handlers

import (
	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

// shared column renderers

var jobStatusBadge = datatable.Badge(
	map[string]string{
		string(types.JobOpen):       "badge badge-blue",
		string(types.JobInProgress): "badge badge-yellow",
		string(types.JobCompleted):  "badge badge-green",
	},
	labels(types.JobOpen, types.JobInProgress, types.JobCompleted),
	"badge badge-grey",
)

var priorityBadge = datatable.Badge(
	map[string]string{
		string(types.PriorityHigh):   "badge badge-red",
		string(types.PriorityMedium): "badge badge-yellow",
		string(types.PriorityLow):    "badge badge-grey",
	},
	labels(types.PriorityLow, types.PriorityMedium, types.PriorityHigh),
	"badge badge-grey",
)

var rentalStatusBadge = datatable.Badge(
	map[string]string{
		string(types.RentalActive):   "badge badge-blue",
		string(types.RentalReturned): "badge badge-green",
	},
	labels(types.RentalActive, types.RentalReturned),
	"badge badge-grey",
)

var availabilityBadge = datatable.Badge(
	map[string]string{
		string(types.AvailabilityAvailable):   "badge badge-green",
		string(types.AvailabilityRented):      "badge badge-yellow",
		string(types.AvailabilityMaintenance): "badge badge-red",
	},
	labels(types.AvailabilityAvailable, types.AvailabilityRented, types.AvailabilityMaintenance),
	"badge badge-grey",
)

var roleBadge = datatable.Badge(
	map[string]string{
		string(types.RoleAdmin):    "badge badge-blue",
		string(types.RoleEmployee): "badge badge-grey",
	},
	labels(types.RoleAdmin, types.RoleEmployee),
	"badge badge-grey",
)

// activeBadge treats a missing is_active as active, as the backend only sends it on the users list
var activeBadge = datatable.RenderFunc(func(_ any, rec datatable.Record) datatable.Cell {
	if recordActive(rec) {
		return datatable.Cell{Text: "Active", Class: "badge badge-green"}
	}
	return datatable.Cell{Text: "Inactive", Class: "badge badge-grey"}
})

var dateCell = datatable.RenderFunc(func(value any, _ datatable.Record) datatable.Cell {
	return datatable.Cell{Text: types.FormatDate(datatable.Stringify(value))}
})

var dateTimeCell = datatable.RenderFunc(func(value any, _ datatable.Record) datatable.Cell {
	s := datatable.Stringify(value)
	if s == "" {
		return datatable.Cell{Text: "N/A", Class: "muted"}
	}
	return datatable.Cell{Text: types.FormatDateTime(s)}
})

func labels[S ~string](values ...S) map[string]string {
	m := make(map[string]string, len(values))
	for _, v := range values {
		m[string(v)] = types.StatusLabel(v)
	}
	return m
}

func recordActive(rec datatable.Record) bool {
	active, ok := rec["is_active"].(bool)
	return !ok || active
}
