package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func newUsersCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage admin and employee accounts",
	}
	cmd.AddCommand(newUsersListCmd(c), newUsersAddCmd(c), newUsersDeactivateCmd(c))
	return cmd
}

// usersTable deactivates rather than deletes: inactive users stay listed
func (c *cli) usersTable() *datatable.Table {
	return datatable.New(userColumns, datatable.Options{
		EmptyState: &datatable.EmptyState{Title: "No users"},
		RowActions: []datatable.RowAction{{
			Name:  "deactivate",
			Label: "Deactivate",
			Disabled: func(rec datatable.Record) bool {
				active, ok := rec["is_active"].(bool)
				return ok && !active
			},
			OnClick: func(ctx context.Context, rec datatable.Record) error {
				id, err := datatable.IntField(rec, "id")
				if err != nil {
					return err
				}
				return c.client.DeactivateUser(ctx, id)
			},
		}},
	})
}

func (c *cli) userRecords(ctx context.Context) ([]datatable.Record, error) {
	users, err := c.client.Users(ctx)
	if err != nil {
		return nil, err
	}
	return datatable.RecordsFrom(users)
}

func newUsersListCmd(c *cli) *cobra.Command {
	var flags tableFlags
	var activeOnly bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				records, err := c.userRecords(ctx)
				if err != nil {
					return err
				}
				if activeOnly {
					kept := records[:0]
					for _, rec := range records {
						if active, ok := rec["is_active"].(bool); !ok || active {
							kept = append(kept, rec)
						}
					}
					records = kept
				}
				return flags.writeRecords(cmd.OutOrStdout(), c.usersTable(), records)
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().BoolVar(&activeOnly, "active", false, "hide deactivated users")
	return cmd
}

func newUsersAddCmd(c *cli) *cobra.Command {
	var req types.RegisterRequest
	var role string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create an account",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			req.Role = types.Role(role)
			return c.run(cmd, func(ctx context.Context) error {
				res, err := c.client.Register(ctx, req)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Created %s account for %s\n", res.User.Role, res.User.Email)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&req.Email, "email", "", "email address")
	cmd.Flags().StringVar(&req.Username, "username", "", "username")
	cmd.Flags().StringVar(&req.Password, "password", "", "initial password")
	cmd.Flags().StringVar(&role, "role", string(types.RoleEmployee), "admin or employee")
	return cmd
}

func newUsersDeactivateCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate ID",
		Short: "Deactivate an account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context) error {
				records, err := c.userRecords(ctx)
				if err != nil {
					return err
				}
				if err := dispatch(ctx, c.usersTable(), records, id, "deactivate", "user"); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "User #%d deactivated\n", id)
				return nil
			})
		},
	}
}
