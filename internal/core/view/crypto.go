package view

import "github.com/99minutos/ebanking-console/internal/core/domain"

// DefaultPlatformFee is charged on buys from the main account.
const DefaultPlatformFee = 10.00

var cryptoNames = map[string]string{
	domain.CryptoBTC:  "Bitcoin",
	domain.CryptoETH:  "Ethereum",
	domain.CryptoUSDT: "Tether",
	"BNB":             "Binance Coin",
}

// CryptoName returns the display name of a symbol, or the symbol itself.
func CryptoName(symbol string) string {
	if name, ok := cryptoNames[symbol]; ok {
		return name
	}
	return symbol
}

// RateFor returns the MAD rate of symbol; 0 when rates are missing or the
// symbol is not quoted.
func RateFor(rates *domain.CryptoRates, symbol string) float64 {
	if rates == nil {
		return 0
	}
	switch symbol {
	case domain.CryptoBTC:
		return rates.BTC
	case domain.CryptoETH:
		return rates.ETH
	case domain.CryptoUSDT:
		return rates.USDT
	default:
		return 0
	}
}

// SellAmount converts a fiat amount into the crypto quantity sold at rate.
func SellAmount(fiat, rate float64) float64 {
	if rate <= 0 || fiat <= 0 {
		return 0
	}
	return fiat / rate
}

// BalanceOf returns the wallet balance of symbol.
func BalanceOf(w *domain.CryptoWalletDetails, symbol string) float64 {
	if w == nil {
		return 0
	}
	return w.CryptoBalances[symbol]
}

// ValueInMAD returns the valued balance of symbol from the wallet details.
func ValueInMAD(w *domain.CryptoWalletDetails, symbol string) float64 {
	if w == nil {
		return 0
	}
	for _, d := range w.BalanceDetails {
		if d.CryptoType == symbol {
			return d.ValueInMAD
		}
	}
	return 0
}

// HeldCryptos lists the symbols with a balance line, in wallet order.
func HeldCryptos(w *domain.CryptoWalletDetails) []string {
	if w == nil {
		return nil
	}
	out := make([]string, 0, len(w.BalanceDetails))
	for _, d := range w.BalanceDetails {
		out = append(out, d.CryptoType)
	}
	return out
}
