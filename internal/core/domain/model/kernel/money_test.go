package kernel_test

import (
	"testing"

	"foodorder/internal/core/domain/model/kernel"
	"foodorder/internal/pkg/errs"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoneyFromString(t *testing.T) {
	t.Run("should parse and keep cents", func(t *testing.T) {
		m, err := kernel.MoneyFromString("20")

		require.NoError(t, err)
		assert.Equal(t, "20.00", m.String())
	})

	t.Run("should round to cents", func(t *testing.T) {
		m, err := kernel.MoneyFromString("0.125")

		require.NoError(t, err)
		assert.Equal(t, "0.13", m.String())
	})

	t.Run("should reject negative amounts", func(t *testing.T) {
		_, err := kernel.MoneyFromString("-1.00")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("should reject garbage", func(t *testing.T) {
		_, err := kernel.MoneyFromString("ten")

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}

func TestMoney_Arithmetic(t *testing.T) {
	t.Run("decimal sums stay exact", func(t *testing.T) {
		sum := kernel.ZeroMoney()
		for range 10 {
			sum = sum.Add(kernel.MustMoney("0.10"))
		}

		assert.True(t, sum.Equal(kernel.MustMoney("1.00")))
	})

	t.Run("mul by quantity", func(t *testing.T) {
		total, err := kernel.MustMoney("5.00").Mul(2)

		require.NoError(t, err)
		assert.Equal(t, "10.00", total.String())
	})

	t.Run("sub refuses to go negative", func(t *testing.T) {
		_, err := kernel.MustMoney("1.00").Sub(kernel.MustMoney("1.01"))

		require.Error(t, err)
	})

	t.Run("new money from decimal", func(t *testing.T) {
		m, err := kernel.NewMoney(decimal.RequireFromString("3"))

		require.NoError(t, err)
		assert.Equal(t, "3.00", m.String())
	})
}

func TestMoney_Text(t *testing.T) {
	var m kernel.Money
	require.NoError(t, m.UnmarshalText([]byte("12.5")))

	text, err := m.MarshalText()

	require.NoError(t, err)
	assert.Equal(t, "12.50", string(text))
}
