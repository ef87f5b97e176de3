package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMoneyArithmetic(t *testing.T) {
	m := NewMoney(5000, "IDR")

	assert.Equal(t, int64(3000), m.Sub(2000).Amount)
	assert.Equal(t, int64(5000), m.Amount, "operations return copies")

	assert.True(t, NewMoney(0, "IDR").IsZero())
	assert.True(t, m.Sub(6000).IsNegative())
	assert.False(t, m.IsNegative())
}

func TestMoneyFormatting(t *testing.T) {
	tests := []struct {
		name     string
		money    Money
		expected string
	}{
		{"whole units", NewMoney(250000, "IDR"), "IDR 2500.00"},
		{"with cents", NewMoney(6667, "EUR"), "EUR 66.67"},
		{"negative balance", NewMoney(-1000, "USD"), "USD -10.00"},
		{"zero", NewMoney(0, "IDR"), "IDR 0.00"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, tt.money.String())
		})
	}
}
