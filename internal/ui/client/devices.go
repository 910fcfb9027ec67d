package client

import (
	"context"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

// Devices returns the inventory ordered by model
func (c *Client) Devices(ctx context.Context) ([]types.Device, error) {
	body, err := c.Get(ctx, EndpointDevices)
	if err != nil {
		return nil, err
	}
	return decodeList[types.Device](body, "decoding devices response")
}

// DevicesBySerial returns the devices with the given serial number (zero or one)
func (c *Client) DevicesBySerial(ctx context.Context, serial string) ([]types.Device, error) {
	body, err := c.Get(ctx, DeviceBySerial(serial))
	if err != nil {
		return nil, err
	}
	devices, err := decodeList[types.Device](body, "decoding device lookup response")
	if err != nil {
		return nil, err
	}

	// older backends ignore the serial_no filter and return the whole inventory
	matched := devices[:0]
	for _, d := range devices {
		if d.SerialNo == serial {
			matched = append(matched, d)
		}
	}
	return matched, nil
}

func (c *Client) CreateDevice(ctx context.Context, device types.NewDevice) (*types.Device, error) {
	if device.Availability == "" {
		device.Availability = types.AvailabilityAvailable
	}
	if err := device.Validate(); err != nil {
		return nil, NewClientInputError(err)
	}
	body, err := c.Post(ctx, EndpointDevices, device)
	if err != nil {
		return nil, err
	}
	created, err := decode[types.Device](body, "decoding create device response")
	if err != nil {
		return nil, err
	}
	return &created, nil
}
