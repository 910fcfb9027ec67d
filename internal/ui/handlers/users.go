package handlers

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/client"
	"github.com/fieldops/opsconsole/internal/ui/templates"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func loadUsers(ctx context.Context, c *client.Client) ([]datatable.Record, error) {
	users, err := c.Users(ctx)
	if err != nil {
		return nil, err
	}
	return datatable.RecordsFrom(users)
}

// usersTable lists accounts. Deleting a user deactivates it, so inactive users stay listed.
var usersTable = &tableDef{
	id:          "users",
	role:        types.RoleAdmin,
	title:       "Users",
	description: "Admin and employee accounts.",
	pagePath:    "/admin/users",
	columns: []datatable.Column{
		{Key: "username", Title: "Username", Render: datatable.Placeholder("-")},
		{Key: "email", Title: "Email"},
		{Key: "role", Title: "Role", Render: roleBadge},
		{Key: "is_active", Title: "Status", Render: activeBadge, DisableSearch: true},
	},
	placeholder: "Search username or email...",
	tabs: []tableTab{
		allTab,
		{name: "active", label: "Active only", keep: recordActive},
	},
	emptyState: &datatable.EmptyState{
		Title:       "No users",
		Message:     "Create an account for each admin and employee.",
		ActionLabel: "New user",
		ActionURL:   "/admin/users/new",
	},
	load: loadUsers,
	actions: func(req *tableRequest) []datatable.RowAction {
		return []datatable.RowAction{{
			Name:     "deactivate",
			Label:    "Deactivate",
			Icon:     "⊘",
			Style:    "btn-danger",
			Disabled: func(rec datatable.Record) bool { return !recordActive(rec) },
			OnClick: func(ctx context.Context, rec datatable.Record) error {
				id, err := datatable.IntField(rec, "id")
				if err != nil {
					return err
				}
				return req.client.DeactivateUser(ctx, id)
			},
		}}
	},
	messages: map[string]string{"deactivate": "User deactivated."},
}

func (h *HandlerService) RegisterUserPage(w http.ResponseWriter, r *http.Request) {
	renderPage(w, r, "New user", "/admin/users/new", templates.Join(
		templates.PageHeader("New user", "Create an admin or employee account."),
		templates.FormCard(templates.RegisterUserForm()),
	))
}

// RegisterUser handles the new user form
func (h *HandlerService) RegisterUser(w http.ResponseWriter, r *http.Request) {
	req := types.RegisterRequest{
		Email:    r.FormValue("email"),
		Password: r.FormValue("password"),
		Username: r.FormValue("username"),
		Role:     types.Role(r.FormValue("role")),
	}

	res, err := h.AuthService.Client(w, r).Register(r.Context(), req)
	if err != nil {
		handleAlertError(w, r, err, "register user")
		return
	}
	msg := res.Message
	if msg == "" {
		msg = fmt.Sprintf("Account created for %s.", res.User.Email)
	}
	render(w, r, templates.SuccessAlert(msg), "success alert")
}
