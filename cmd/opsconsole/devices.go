package main

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/fieldops/opsconsole/internal/datatable"
	"github.com/fieldops/opsconsole/internal/ui/types"
)

func newDevicesCmd(c *cli) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "devices",
		Short: "List and add rental devices",
	}
	cmd.AddCommand(newDevicesListCmd(c), newDevicesAddCmd(c))
	return cmd
}

func newDevicesListCmd(c *cli) *cobra.Command {
	var flags tableFlags
	var availability, serial string
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List devices",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.run(cmd, func(ctx context.Context) error {
				var devices []types.Device
				var err error
				if serial != "" {
					devices, err = c.client.DevicesBySerial(ctx, serial)
				} else {
					devices, err = c.client.Devices(ctx)
				}
				if err != nil {
					return err
				}
				records, err := datatable.RecordsFrom(devices)
				if err != nil {
					return err
				}
				t := datatable.New(deviceColumns, datatable.Options{
					EmptyState: &datatable.EmptyState{Title: "No devices", Message: "Add one with `opsconsole devices add`."},
				})
				return flags.writeRecords(cmd.OutOrStdout(), t, filterRecords(records, "availability", availability))
			})
		},
	}
	flags.register(cmd)
	cmd.Flags().StringVar(&availability, "availability", "", "only devices that are available, rented or in maintenance")
	cmd.Flags().StringVar(&serial, "serial", "", "look up a device by serial number")
	return cmd
}

func newDevicesAddCmd(c *cli) *cobra.Command {
	var device types.NewDevice
	var availability string
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a device to the inventory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			device.Availability = types.Availability(availability)
			return c.run(cmd, func(ctx context.Context) error {
				created, err := c.client.CreateDevice(ctx, device)
				if err != nil {
					return err
				}
				printf(cmd.OutOrStdout(), "Added device %s (%s)\n", created.DeviceName, created.SerialNo)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&device.DeviceName, "name", "", "device name")
	cmd.Flags().StringVar(&device.SerialNo, "serial", "", "serial number")
	cmd.Flags().StringVar(&device.Model, "model", "", "model")
	cmd.Flags().StringVar(&availability, "availability", string(types.AvailabilityAvailable), "available or maintenance")
	return cmd
}
