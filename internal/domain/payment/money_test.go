//go:build unit

package payment_test

import (
	"testing"

	"accept-broker/internal/domain/payment"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMoney(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  string
		cents int64
		errIs error
	}{
		{name: "整数", input: "10", want: "10.00", cents: 1000},
		{name: "小数1桁", input: "10.5", want: "10.50", cents: 1050},
		{name: "小数2桁", input: "10.50", want: "10.50", cents: 1050},
		{name: "ドル記号と空白", input: " $25.00 ", want: "25.00", cents: 2500},
		{name: "整数部なし", input: ".99", want: "0.99", cents: 99},
		{name: "ゼロ", input: "0", want: "0.00", cents: 0},
		{name: "小数3桁NG", input: "10.505", errIs: payment.ErrInvalidAmount},
		{name: "小数点のみNG", input: "10.", errIs: payment.ErrInvalidAmount},
		{name: "負数NG", input: "-1.00", errIs: payment.ErrInvalidAmount},
		{name: "空文字NG", input: "", errIs: payment.ErrInvalidAmount},
		{name: "数値以外NG", input: "abc", errIs: payment.ErrInvalidAmount},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := payment.ParseMoney(tc.input)
			if tc.errIs != nil {
				assert.ErrorIs(t, err, tc.errIs)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tc.want, got.String())
			assert.Equal(t, tc.cents, got.Cents())
		})
	}
}

func TestNewPositiveMoney(t *testing.T) {
	t.Run("正の金額OK", func(t *testing.T) {
		m, err := payment.NewPositiveMoney("0.01")
		require.NoError(t, err)
		assert.Equal(t, int64(1), m.Cents())
	})

	t.Run("ゼロはErrAmountNotPositive", func(t *testing.T) {
		_, err := payment.NewPositiveMoney("0.00")
		assert.ErrorIs(t, err, payment.ErrAmountNotPositive)
	})

	t.Run("不正な書式はErrInvalidAmount", func(t *testing.T) {
		_, err := payment.NewPositiveMoney("1,000")
		assert.ErrorIs(t, err, payment.ErrInvalidAmount)
	})
}

func TestNewMoneyFromFloat(t *testing.T) {
	m, err := payment.NewMoneyFromFloat(19.999)
	require.NoError(t, err)
	assert.Equal(t, "20.00", m.String())

	_, err = payment.NewMoneyFromFloat(-0.5)
	assert.ErrorIs(t, err, payment.ErrInvalidAmount)

	_, err = payment.NewMoneyFromCents(-1)
	assert.ErrorIs(t, err, payment.ErrInvalidAmount)
}
