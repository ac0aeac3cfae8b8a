package gateway

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

type Stats struct{ c *Client }

var _ ports.StatsGateway = (*Stats)(nil)

func NewStats(c *Client) *Stats { return &Stats{c: c} }

func (g *Stats) GlobalStatistics(ctx context.Context) (*domain.GlobalStatisticsResponse, error) {
	var out domain.GlobalStatisticsResponse
	if err := g.c.get(ctx, "stats.GlobalStatistics", unversioned, "/stats/global", &out); err != nil {
		return nil, err
	}
	return &out, nil
}
