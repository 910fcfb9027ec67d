package handlers

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/templates"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func loadRentals(ctx context.Context, c *client.Client) ([]datatable.Record, error) {
	rentals, err := c.Rentals(ctx)
	if err != nil {
		return nil, err
	}
	return datatable.RecordsFrom(rentals)
}

var rentalColumns = []datatable.Column{
	{Key: "customer_name", Title: "Customer"},
	{Key: "phone_number", Title: "Phone", DisableSort: true},
	{Key: "device_serial", Title: "Device"},
	{Key: "from_date", Title: "From", Render: dateCell, DisableSearch: true},
	{Key: "to_date", Title: "To", Render: dateCell, DisableSearch: true},
	{Key: "rental_days", Title: "Days", DisableSearch: true},
	{Key: "security_deposit", Title: "Deposit", DisableSearch: true},
	{Key: "status", Title: "Status", Render: rentalStatusBadge},
}

var ongoingRentalsTable = &tableDef{
	id:          "ongoing-rentals",
	role:        types.RoleAdmin,
	title:       "Ongoing rentals",
	description: "Devices currently out with customers.",
	pagePath:    "/admin/rentals/ongoing",
	columns:     rentalColumns,
	placeholder: "Search customer or device...",
	tabs:        []tableTab{{name: "all", label: "All", keep: fieldIs("status", string(types.RentalActive))}},
	emptyState: &datatable.EmptyState{
		Title:       "No active rentals",
		Message:     "Create a rental when a customer takes a device.",
		ActionLabel: "New rental",
		ActionURL:   "/admin/rentals/new",
	},
	load: loadRentals,
	actions: func(req *tableRequest) []datatable.RowAction {
		return []datatable.RowAction{{
			Name:  "return",
			Label: "Return",
			Icon:  "↩",
			Disabled: func(rec datatable.Record) bool {
				return recordString(rec, "status") != string(types.RentalActive)
			},
			OnClick: func(ctx context.Context, rec datatable.Record) error {
				id, err := datatable.IntField(rec, "id")
				if err != nil {
					return err
				}
				_, err = req.client.ReturnRental(ctx, id, types.RentalStatus(recordString(rec, "status")))
				return err
			},
		}}
	},
	messages: map[string]string{"return": "Rental returned. The device is available again."},
}

var rentalHistoryTable = &tableDef{
	id:          "rental-history",
	role:        types.RoleAdmin,
	title:       "Rental history",
	description: "Every rental, active and returned.",
	pagePath:    "/admin/rentals/history",
	columns:     rentalColumns,
	placeholder: "Search customer or device...",
	tabs: []tableTab{
		allTab,
		{name: "active", label: "Active", keep: fieldIs("status", string(types.RentalActive))},
		{name: "returned", label: "Returned", keep: fieldIs("status", string(types.RentalReturned))},
	},
	emptyState: &datatable.EmptyState{Title: "No rentals yet", Message: "Rentals appear here once they are created."},
	load:       loadRentals,
}

// NewRentalPage offers the devices that can be rented
func (h *HandlerService) NewRentalPage(w http.ResponseWriter, r *http.Request) {
	devices, err := h.AuthService.Client(w, r).Devices(r.Context())
	if err != nil {
		handlePageError(w, r, err, "load devices", "New rental", "/admin/rentals/new")
		return
	}
	renderPage(w, r, "New rental", "/admin/rentals/new", templates.Join(
		templates.PageHeader("New rental", "Rent a device to a customer."),
		templates.FormCard(templates.NewRentalForm(devices)),
	))
}

// CreateRental handles the new rental form
func (h *HandlerService) CreateRental(w http.ResponseWriter, r *http.Request) {
	days, _ := strconv.Atoi(r.FormValue("rental_days"))
	rental := types.NewRental{
		CustomerName:    r.FormValue("customer_name"),
		PhoneNumber:     r.FormValue("phone_number"),
		DeviceSerial:    strings.TrimSpace(r.FormValue("device_serial")),
		FromDate:        r.FormValue("from_date"),
		ToDate:          r.FormValue("to_date"),
		RentalDays:      days,
		SecurityDeposit: r.FormValue("security_deposit"),
	}

	created, err := h.AuthService.Client(w, r).CreateRental(r.Context(), rental)
	if err != nil {
		handleAlertError(w, r, err, "create rental")
		return
	}
	render(w, r, templates.SuccessAlert(fmt.Sprintf("Rental #%d created for %s.", created.ID, created.CustomerName)), "success alert")
}
