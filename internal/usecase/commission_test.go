package usecase_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"clinic-settlements/internal/usecase"
)

func TestSplitCommission(t *testing.T) {
	t.Run("professional earns on the pre-discount base", func(t *testing.T) {
		split := usecase.SplitCommission(dec("22000"), dec("20000"), dec("65"))

		assert.True(t, split.ProfessionalEarnings.Equal(dec("14300")), "earnings %s", split.ProfessionalEarnings)
		assert.True(t, split.TenseCommission.Equal(dec("5700")), "commission %s", split.TenseCommission)
		assert.True(t, split.TenseCommissionNet.Equal(split.TenseCommission))
	})

	t.Run("changing only the discount does not change earnings", func(t *testing.T) {
		noDiscount := usecase.SplitCommission(dec("22000"), dec("22000"), dec("65"))
		withDiscount := usecase.SplitCommission(dec("22000"), dec("20000"), dec("65"))

		assert.True(t, noDiscount.ProfessionalEarnings.Equal(withDiscount.ProfessionalEarnings))
		assert.True(t, noDiscount.TenseCommission.Sub(withDiscount.TenseCommission).Equal(dec("2000")))
	})

	t.Run("heavy discounts drive the clinic share negative, unclamped", func(t *testing.T) {
		split := usecase.SplitCommission(dec("10000"), dec("6000"), dec("65"))

		assert.True(t, split.ProfessionalEarnings.Equal(dec("6500")))
		assert.True(t, split.TenseCommission.Equal(dec("-500")), "commission %s", split.TenseCommission)
	})

	t.Run("earnings plus clinic share conserve the billed total", func(t *testing.T) {
		cases := [][3]string{
			{"22000", "20000", "65"},
			{"10000", "6000", "65"},
			{"9999.99", "9500.50", "33.33"},
			{"0", "0", "65"},
		}
		for _, c := range cases {
			split := usecase.SplitCommission(dec(c[0]), dec(c[1]), dec(c[2]))
			assert.True(t, split.ProfessionalEarnings.Add(split.TenseCommission).Equal(dec(c[1])),
				"base=%s billed=%s rate=%s", c[0], c[1], c[2])
		}
	})
}
