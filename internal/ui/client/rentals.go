package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

// Rentals returns every rental, newest first
func (c *Client) Rentals(ctx context.Context) ([]types.Rental, error) {
	body, err := c.Get(ctx, EndpointRentals)
	if err != nil {
		return nil, err
	}
	return decodeList[types.Rental](body, "decoding rentals response")
}

// Rental returns one rental
func (c *Client) Rental(ctx context.Context, id int) (*types.Rental, error) {
	body, err := c.Get(ctx, RentalDetail(id))
	if err != nil {
		return nil, err
	}
	rental, err := decode[types.Rental](body, "decoding rental response")
	if err != nil {
		return nil, err
	}
	return &rental, nil
}

// CreateRental records a new rental. The device serial must belong to a known device.
func (c *Client) CreateRental(ctx context.Context, rental types.NewRental) (*types.Rental, error) {
	if err := rental.Validate(); err != nil {
		return nil, NewClientInputError(err)
	}

	devices, err := c.DevicesBySerial(ctx, rental.DeviceSerial)
	if err != nil {
		return nil, err
	}
	if len(devices) == 0 {
		return nil, NewClientInputError(fmt.Errorf("device %s not found", rental.DeviceSerial))
	}

	body, err := c.Post(ctx, EndpointRentals, rental)
	if err != nil {
		return nil, err
	}
	created, err := decode[types.Rental](body, "decoding create rental response")
	if err != nil {
		return nil, err
	}
	return &created, nil
}

// ReturnRental ends an active rental; the backend makes the device available again.
// from is the status the caller last saw.
func (c *Client) ReturnRental(ctx context.Context, id int, from types.RentalStatus) (*types.Rental, error) {
	if err := from.CheckTransition(types.RentalReturned); err != nil {
		return nil, NewClientInputError(err)
	}
	res, err := c.send(ctx, http.MethodPost, RentalReturn(id), nil, requestOptions{})
	if err != nil {
		return nil, err
	}
	if res.Body == nil {
		return &types.Rental{ID: id, Status: types.RentalReturned}, nil
	}
	returned, err := decode[types.Rental](res.Body, "decoding return rental response")
	if err != nil {
		return nil, err
	}
	return &returned, nil
}
