package view

import (
	"strings"

	"github.com/99minutos/ebanking-console/internal/core/domain"
)

// Operator is a mobile network accepting recharges.
type Operator struct {
	Name           string   `json:"name"`
	Code           string   `json:"code"`
	SupportedTypes []string `json:"supportedTypes"`
}

var both = []string{domain.RechargePrepaid, domain.RechargePostpaid}

// Operators is the recharge catalogue.
var Operators = []Operator{
	{Name: "Orange", Code: "Orange", SupportedTypes: both},
	{Name: "Maroc Telecom", Code: "Maroc_Telecom", SupportedTypes: both},
	{Name: "Inwi", Code: "Inwi", SupportedTypes: both},
}

// QuickAmounts are the preset recharge amounts.
var QuickAmounts = []float64{10, 20, 50, 100, 200, 500}

// FindOperator looks an operator up by code or display name, ignoring case.
func FindOperator(code string) (Operator, bool) {
	code = strings.TrimSpace(code)
	for _, op := range Operators {
		if strings.EqualFold(op.Code, code) || strings.EqualFold(op.Name, code) {
			return op, true
		}
	}
	return Operator{}, false
}
