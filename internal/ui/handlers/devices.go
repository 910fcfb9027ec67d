package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/templates"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func loadDevices(ctx context.Context, c *client.Client) ([]datatable.Record, error) {
	devices, err := c.Devices(ctx)
	if err != nil {
		return nil, err
	}
	return datatable.RecordsFrom(devices)
}

var devicesTable = &tableDef{
	id:          "devices",
	role:        types.RoleAdmin,
	title:       "Devices",
	description: "The rental inventory.",
	pagePath:    "/admin/devices",
	columns: []datatable.Column{
		{Key: "device_name", Title: "Device"},
		{Key: "serial_no", Title: "Serial number"},
		{Key: "model", Title: "Model"},
		{Key: "availability", Title: "Availability", Render: availabilityBadge},
	},
	placeholder: "Search name, serial, model...",
	tabs: []tableTab{
		allTab,
		{name: "available", label: "Available", keep: fieldIs("availability", string(types.AvailabilityAvailable))},
		{name: "rented", label: "Rented", keep: fieldIs("availability", string(types.AvailabilityRented))},
		{name: "maintenance", label: "Maintenance", keep: fieldIs("availability", string(types.AvailabilityMaintenance))},
	},
	emptyState: &datatable.EmptyState{
		Title:       "No devices",
		Message:     "Add a device to start renting it out.",
		ActionLabel: "Add device",
		ActionURL:   "/admin/devices/new",
	},
	load: loadDevices,
}

func (h *HandlerService) AddDevicePage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "Add device", "/admin/devices/new", templates.Join(
		templates.PageHeader("Add device", "Register a device in the rental inventory."),
		templates.FormCard(templates.AddDeviceForm()),
	))
}

// CreateDevice handles the add device form
func (h *HandlerService) CreateDevice(w http.ResponseWriter, r *http.Request) {
	device := types.NewDevice{
		DeviceName:   r.FormValue("device_name"),
		SerialNo:     strings.TrimSpace(r.FormValue("serial_no")),
		Model:        r.FormValue("model"),
		Availability: types.Availability(r.FormValue("availability")),
	}

	created, err := h.AuthService.Client(w, r).CreateDevice(r.Context(), device)
	if err != nil {
		handleAlertError(w, r, err, "create device")
		return
	}
	render(w, r, templates.SuccessAlert(fmt.Sprintf("Device %s (%s) added.", created.DeviceName, created.SerialNo)), "success alert")
}
