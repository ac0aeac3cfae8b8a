package view

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

func TestFormatVolume(t *testing.T) {
	cases := map[float64]string{
		1_500_000_000: "1.50B",
		2_250_000:     "2.25M",
		3_000:         "3.00K",
		999.5:         "999.50",
		0:             "0.00",
	}
	for in, want := range cases {
		assert.Equal(t, want, FormatVolume(in))
	}
}

func TestFormatMarketCap(t *testing.T) {
	marketCap := 4.2e9
	zero := 0.0
	assert.Equal(t, "4.20B", FormatMarketCap(&marketCap))
	assert.Equal(t, "N/A", FormatMarketCap(&zero))
	assert.Equal(t, "N/A", FormatMarketCap(nil))
}

func TestFormatAmount(t *testing.T) {
	assert.Equal(t, "12.50 MAD", FormatAmount(12.5, "MAD"))
	assert.Equal(t, "0.00", FormatAmount(0, ""))
}

func TestFormatCrypto(t *testing.T) {
	assert.Equal(t, "0.00123400 BTC", FormatCrypto(0.001234, "BTC"))
	assert.Equal(t, "0.00000000 ETH", FormatCrypto(0, "ETH"))
}

func TestFormatDate(t *testing.T) {
	assert.Equal(t, "N/A", FormatDate(time.Time{}))
	assert.Equal(t, "Mar 1, 2024 10:15", FormatDate(time.Date(2024, 3, 1, 10, 15, 0, 0, time.UTC)))
}

func TestCryptoHelpers(t *testing.T) {
	rates := &domain.CryptoRates{BTC: 400000, ETH: 20000, USDT: 10}
	assert.Equal(t, 400000.0, RateFor(rates, "BTC"))
	assert.Equal(t, 10.0, RateFor(rates, "USDT"))
	assert.Zero(t, RateFor(rates, "DOGE"))
	assert.Zero(t, RateFor(nil, "BTC"))

	assert.Equal(t, 0.0025, SellAmount(1000, 400000))
	assert.Zero(t, SellAmount(1000, 0))

	w := &domain.CryptoWalletDetails{
		CryptoBalances: map[string]float64{"BTC": 0.5},
		BalanceDetails: []domain.CryptoBalanceDetail{{CryptoType: "BTC", ValueInMAD: 200000}, {CryptoType: "ETH"}},
	}
	assert.Equal(t, 0.5, BalanceOf(w, "BTC"))
	assert.Zero(t, BalanceOf(w, "ETH"))
	assert.Equal(t, 200000.0, ValueInMAD(w, "BTC"))
	assert.Equal(t, []string{"BTC", "ETH"}, HeldCryptos(w))

	assert.Equal(t, "Tether", CryptoName("USDT"))
	assert.Equal(t, "DOGE", CryptoName("DOGE"))
}

func TestFindOperator(t *testing.T) {
	op, ok := FindOperator("Maroc_Telecom")
	assert.True(t, ok)
	assert.Equal(t, "Maroc Telecom", op.Name)

	op, ok = FindOperator(" maroc telecom ")
	assert.True(t, ok)
	assert.Equal(t, "Maroc_Telecom", op.Code)

	_, ok = FindOperator("Vodafone")
	assert.False(t, ok)
}
