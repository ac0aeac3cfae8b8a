package gateway

import (
	"context"

	"github.com/99minutos/ebanking-console/internal/core/domain"
	"github.com/99minutos/ebanking-console/internal/core/ports"
)

type Settings struct{ c *Client }

var _ ports.SettingsGateway = (*Settings)(nil)

func NewSettings(c *Client) *Settings { return &Settings{c: c} }

func (g *Settings) GlobalSettings(ctx context.Context) (*domain.GlobalSettingsResponse, error) {
	var out domain.GlobalSettingsResponse
	if err := g.c.get(ctx, "settings.GlobalSettings", unversioned, "/settings/global", &out); err != nil {
		return nil, err
	}
	return &out, nil
}

func (g *Settings) UpdateGlobalSettings(ctx context.Context, s domain.GlobalSettings) (*domain.GlobalSettingsResponse, error) {
	var out domain.GlobalSettingsResponse
	if err := g.c.put(ctx, "settings.UpdateGlobalSettings", unversioned, "/settings/global", nil, s, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// UpdateFeePercentage ignores the response body; callers reload settings.
func (g *Settings) UpdateFeePercentage(ctx context.Context, req domain.UpdateFeePercentageRequest) error {
	return g.c.put(ctx, "settings.UpdateFeePercentage", unversioned, "/settings/global/feePercentage", nil, req, nil)
}
