package model_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/slok/fourd/internal/model"
)

func TestParseDate(t *testing.T) {
	exp := model.NewDate(2024, 1, 15)

	tests := map[string]struct {
		value  string
		exp    time.Time
		expErr bool
	}{
		"ISO date":                  {value: "2024-01-15", exp: exp},
		"RFC3339 timestamp":         {value: "2024-01-15T18:30:00Z", exp: exp},
		"US numeric date":           {value: "01/15/2024", exp: exp},
		"US numeric short date":     {value: "1/15/24", exp: exp},
		"MS Project date":           {value: "Mon 1/15/24", exp: exp},
		"MS Project date with time": {value: "Mon 1/15/24 8:00 AM", exp: exp},
		"Written month":             {value: "January 15, 2024", exp: exp},
		"Short written month":       {value: "Jan 15, 2024", exp: exp},
		"Day first written month":   {value: "15 Jan 2024", exp: exp},
		"Surrounding spaces":        {value: "  2024-01-15 ", exp: exp},
		"Empty value should fail":   {value: "", expErr: true},
		"Garbage should fail":       {value: "tomorrow", expErr: true},
		"Invalid day should fail":   {value: "2024-02-30", expErr: true},
		"Weekday alone should fail": {value: "Mon", expErr: true},
	}

	for name, test := range tests {
		t.Run(name, func(t *testing.T) {
			got, err := model.ParseDate(test.value)

			if test.expErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, model.ErrInvalidDate))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, test.exp, got)
		})
	}
}

func TestDaysBetween(t *testing.T) {
	assert.Equal(t, 0, model.DaysBetween(model.NewDate(2024, 1, 1), model.NewDate(2024, 1, 1)))
	assert.Equal(t, 4, model.DaysBetween(model.NewDate(2024, 1, 1), model.NewDate(2024, 1, 5)))
	assert.Equal(t, -1, model.DaysBetween(model.NewDate(2024, 1, 2), model.NewDate(2024, 1, 1)))
	assert.Equal(t, 366, model.DaysBetween(model.NewDate(2024, 1, 1), model.NewDate(2025, 1, 1)))
	assert.Equal(t, 3652058, model.DaysBetween(model.NewDate(1, 1, 1), model.NewDate(9999, 12, 31)))
	assert.Equal(t, model.NewDate(2024, 3, 1), model.AddDays(model.NewDate(2024, 2, 28), 2))
}
