package client

import (
	"context"

	"github.com/fieldops/opsconsole/internal/ui/types"
)

// DashboardStats returns the aggregate counts shown on the admin dashboard
func (c *Client) DashboardStats(ctx context.Context) (*types.DashboardStats, error) {
	body, err := c.Get(ctx, EndpointDashboardStats)
	if err != nil {
		return nil, err
	}
	stats, err := decode[types.DashboardStats](body, "decoding dashboard stats response")
	if err != nil {
		return nil, err
	}
	return &stats, nil
}
