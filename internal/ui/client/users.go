package client

import (
	"context"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

func (c *Client) Users(ctx context.Context) ([]types.User, error) {
	body, err := c.Get(ctx, EndpointUsers)
	if err != nil {
		return nil, err
	}
	return decodeList[types.User](body, "decoding users response")
}

// DeactivateUser disables the account. The user stays listed as inactive.
func (c *Client) DeactivateUser(ctx context.Context, id int) error {
	_, err := c.Delete(ctx, UserDelete(id))
	return err
}
