package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func newRentalsCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rentals",
		Short: "List, create and return equipment rentals",
	}
	cmd.AddCommand(newRentalsListCmd(c), newRentalsCreateCmd(c), newRentalsReturnCmd(c))
	return cmd
}

func (c *cli) rentalsTable() *datatable.Table {
	return datatable.New(rentalColumns, datatable.Options{
		EmptyState: &datatable.EmptyState{Title: "No rentals", Message: "Rentals appear here once they are created."},
		RowActions: []datatable.RowAction{{
			Name:  "return",
			Label: "Return",
			Disabled: func(rec datatable.Record) bool {
				return datatable.Stringify(rec["status"]) != string(types.RentalActive)
			},
			OnClick: func(ctx context.Context, rec datatable.Record) error {
				id, err := datatable.IntField(rec, "id")
				if err != nil {
					return err
				}
				_, err = c.client.ReturnRental(ctx, id, types.RentalStatus(datatable.Stringify(rec["status"])))
				return err
			},
		}},
	})
}

func (c *cli) rentalRecords(ctx context.Context) ([]datatable.Record, error) {
	rentals, err := c.client.Rentals(ctx)
	if err != nil {
		return nil, err
	}
	return datatable.RecordsFrom(rentals)
}

func newRentalsListCmd(c *cli) *cobra.Command {
	var flags tableFlags
	var status string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List rentals",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				records, err := c.rentalRecords(ctx)
				if err != nil {
					return err
				}
				return flags.writeRecords(cmd.OutOrStdout(), c.rentalsTable(), filterRecords(records, "status", status))
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&status, "status", "", "only rentals with this status: active or returned")
	return cmd
}

func newRentalsCreateCmd(c *cli) *cobra.Command {
	var rental types.NewRental
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Rent a device to a customer",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				created, err := c.client.CreateRental(ctx, rental)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Created rental #%d: %s to %s\n", created.ID, created.DeviceSerial, created.CustomerName)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&rental.CustomerName, "customer", "", "customer name")
	cmd.Flags().StringVar(&rental.PhoneNumber, "phone", "", "customer phone number")
	cmd.Flags().StringVar(&rental.DeviceSerial, "serial", "", "serial number of the device")
	cmd.Flags().StringVar(&rental.FromDate, "from", "", "start date, YYYY-MM-DD")
	cmd.Flags().StringVar(&rental.ToDate, "to", "", "end date, YYYY-MM-DD")
	cmd.Flags().IntVar(&rental.RentalDays, "days", 0, "number of rental days")
	cmd.Flags().StringVar(&rental.SecurityDeposit, "deposit", "", "security deposit amount")
	return cmd
}

func newRentalsReturnCmd(c *cli) *cobra.Command {
	return &cobra.Command{
		Use:   "return ID",
		Short: "Mark an active rental returned",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			return c.run(cmd, func(ctx context.Context) error {
				records, err := c.rentalRecords(ctx)
				if err != nil {
					return err
				}
				if err := dispatch(ctx, c.rentalsTable(), records, id, "return", "rental"); err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Rental #%d returned\n", id)
				return nil
			})
		},
	}
}
