package stock_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/yieldfood-api/internal/domain/entity"
	"github.com/jhoicas/yieldfood-api/internal/domain/stock"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func TestEvaluateAlert(t *testing.T) {
	threshold := d("200")

	cases := []struct {
		name string
		qty  string
		want string
	}{
		{"por encima del umbral", "550", ""},
		{"justo en el umbral", "200", entity.AlertTypeLowStock},
		{"bajo el umbral", "0.5", entity.AlertTypeLowStock},
		{"agotado", "0", entity.AlertTypeOutOfStock},
		{"negativo", "-150", entity.AlertTypeNegativeStock},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, stock.EvaluateAlert(d(tc.qty), threshold))
		})
	}
}

func TestEvaluateAlert_SinUmbral(t *testing.T) {
	assert.Empty(t, stock.EvaluateAlert(d("3"), decimal.Zero), "sin umbral no hay stock bajo")
	assert.Equal(t, entity.AlertTypeOutOfStock, stock.EvaluateAlert(decimal.Zero, decimal.Zero))
	assert.Equal(t, entity.AlertTypeNegativeStock, stock.EvaluateAlert(d("-0.001"), decimal.Zero))
}

func TestRestockQuantity(t *testing.T) {
	ideal, suggested := stock.RestockQuantity(d("50"), d("200"))
	assert.True(t, ideal.Equal(d("300")))
	assert.True(t, suggested.Equal(d("250")))

	_, suggested = stock.RestockQuantity(d("400"), d("200"))
	assert.True(t, suggested.IsZero(), "con stock sobrado no se sugiere pedido")
}
