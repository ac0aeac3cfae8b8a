package domain

// GlobalSettings are the platform limits editable by an admin.
type GlobalSettings struct {
	MaxClientAccountBalance float64 `json:"maxClientAccountBalance" validate:"gte=0"`
	MaxDailyNewClients      int64   `json:"maxDailyNewClients" validate:"gte=0"`
	FeePercentage           float64 `json:"feePercentage" validate:"gte=0,lte=100"`
}

type GlobalSettingsResponse struct {
	Settings  GlobalSettings `json:"settings"`
	Status    string         `json:"status"`
	Message   string         `json:"message"`
	Timestamp int64          `json:"timestamp"`
}

// UpdateFeePercentageRequest carries the new fee as a decimal string.
type UpdateFeePercentageRequest struct {
	Value string `json:"value" validate:"required,numeric"`
}
