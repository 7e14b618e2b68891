package liquidation_test

import (
	"math"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clasc/site/generic"
	"github.com/clasc/site/liquidation"
)

func pesos(n int64) decimal.Decimal { return decimal.NewFromInt(n) }

func assertPesos(t *testing.T, want int64, got decimal.Decimal, field string) {
	t.Helper()
	assert.True(t, got.Equal(pesos(want)), "%s: expected %d, got %s", field, want, got)
}

func TestBreakdown_FullYear(t *testing.T) {
	// GIVEN: A worker on 1.300.000 who worked a full commercial year
	// THEN: Each benefit follows the 360-day formulas
	s := liquidation.Settlement{BaseSalary: pesos(1300000), TransportAid: pesos(162000), DaysWorked: 360}

	b := s.Breakdown()

	assertPesos(t, 1300000, b.Severance, "severance")
	assertPesos(t, 156000, b.SeveranceInterest, "severance interest")
	assertPesos(t, 1300000, b.ServiceBonus, "service bonus")
	assertPesos(t, 650000, b.Vacation, "vacation")
	assertPesos(t, 3406000, b.Total, "total")
	assertPesos(t, 162000, b.TransportAid, "transport aid echoed")
	assert.Equal(t, 360, b.DaysWorked)
}

func TestBreakdown_HalfYear(t *testing.T) {
	s := liquidation.Settlement{BaseSalary: pesos(1300000), DaysWorked: 180}

	b := s.Breakdown()

	assertPesos(t, 650000, b.Severance, "severance")
	assertPesos(t, 39000, b.SeveranceInterest, "severance interest")
	assertPesos(t, 650000, b.ServiceBonus, "service bonus")
	assertPesos(t, 325000, b.Vacation, "vacation")
	assertPesos(t, 1664000, b.Total, "total")
}

func TestBreakdown_TransportAidNotInTotal(t *testing.T) {
	without := liquidation.Settlement{BaseSalary: pesos(1000000), DaysWorked: 90}.Total()
	with := liquidation.Settlement{BaseSalary: pesos(1000000), TransportAid: pesos(140606), DaysWorked: 90}.Total()

	assert.True(t, with.Equal(without))
}

func TestBreakdown_ZeroDays(t *testing.T) {
	b := liquidation.Settlement{BaseSalary: pesos(1000000)}.Breakdown()
	assert.True(t, b.Total.IsZero())
}

func TestParseSettlement(t *testing.T) {
	s := liquidation.ParseSettlement("1.300.000", "$ 162.000", "120")

	assertPesos(t, 1300000, s.BaseSalary, "salary")
	assertPesos(t, 162000, s.TransportAid, "aid")
	assert.Equal(t, 120, s.DaysWorked)

	blank := liquidation.ParseSettlement("", "", "")
	assert.True(t, blank.BaseSalary.IsZero())
	assert.Equal(t, 0, blank.DaysWorked)
}

func TestParseSettlement_DaysReadLikeParseInt(t *testing.T) {
	tests := []struct {
		name     string
		days     string
		want     int
		rejected bool
	}{
		{"negative keeps its sign", "-30", -30, true},
		{"fraction truncates", "1.5", 1, false},
		{"trailing text ignored", "90 días", 90, false},
		{"not a number", "abc", 0, false},
		{"beyond int range saturates", "9223372036854775808", math.MaxInt, true},
		{"below int range saturates", "-9223372036854775809", math.MinInt, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			// WHEN: The form is parsed
			s := liquidation.ParseSettlement("1.300.000", "", tt.days)

			// THEN: Days follow the form's integer reading and bad values never pass
			assert.Equal(t, tt.want, s.DaysWorked)
			err := s.Validate()
			if tt.rejected {
				var verr *generic.ValidationError
				require.ErrorAs(t, err, &verr)
				assert.Contains(t, verr.Fields, "days_worked")
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidate_RejectsOversizedAmounts(t *testing.T) {
	// GIVEN: A 20-digit salary typed into the grouped field
	s := liquidation.ParseSettlement("12345678901234567890", "1000000000000000", "30")

	err := s.Validate()

	var verr *generic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr.Fields, "base_salary")
	assert.Contains(t, verr.Fields, "transport_aid")

	require.NoError(t, liquidation.ParseSettlement("999.999.999.999.999", "", "30").Validate())
	require.NoError(t, liquidation.Settlement{BaseSalary: pesos(1), DaysWorked: liquidation.MaxDaysWorked}.Validate())
}

func TestValidate(t *testing.T) {
	require.NoError(t, liquidation.Settlement{BaseSalary: pesos(1), DaysWorked: 1}.Validate())

	err := liquidation.Settlement{BaseSalary: pesos(-1), TransportAid: pesos(-1), DaysWorked: -3}.Validate()
	require.Error(t, err)
	assert.ErrorIs(t, err, generic.ErrValidation)

	var verr *generic.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Len(t, verr.Fields, 3)
	assert.Contains(t, verr.Fields, "days_worked")
}
