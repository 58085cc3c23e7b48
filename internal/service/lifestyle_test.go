package service

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alonkrifcher/aura-insight-whisperer/internal"
)

func validLifestyleRequest() *LifestyleEntryRequest {
	return &LifestyleEntryRequest{
		Date:             "2025-06-01",
		CaffeineServings: iptr(2),
		AlcoholServings:  iptr(0),
		ScreentimeEnd:    sptr("21:30"),
		SleepAids:        []string{"melatonin"},
		StressLevel:      iptr(4),
	}
}

func TestValidateLifestyleRequestOK(t *testing.T) {
	assert.NoError(t, ValidateLifestyleRequest(validLifestyleRequest()))

	// Sparse entries are fine; only the date is required.
	assert.NoError(t, ValidateLifestyleRequest(&LifestyleEntryRequest{Date: "2025-06-01"}))
}

func TestValidateLifestyleRequestTimes(t *testing.T) {
	valid := []string{"00:00", "9:05", "09:30", "23:59"}
	for _, v := range valid {
		req := validLifestyleRequest()
		req.ScreentimeEnd = sptr(v)
		assert.NoErrorf(t, ValidateLifestyleRequest(req), "expected %q to be accepted", v)
	}

	invalid := []string{"24:00", "9:60", "930", "nine thirty"}
	for _, v := range invalid {
		req := validLifestyleRequest()
		req.ScreentimeEnd = sptr(v)
		err := ValidateLifestyleRequest(req)
		require.Errorf(t, err, "expected %q to be rejected", v)

		var appErr *internal.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "screentime_end", appErr.Field)
		assert.Contains(t, appErr.Message, "HH:MM")
	}
}

func TestValidateLifestyleRequestDate(t *testing.T) {
	for _, v := range []string{"", "06/01/2025", "2025-6-1", "yesterday"} {
		req := validLifestyleRequest()
		req.Date = v
		err := ValidateLifestyleRequest(req)
		require.Errorf(t, err, "expected date %q to be rejected", v)

		var appErr *internal.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "date", appErr.Field)
	}
}

func TestValidateLifestyleRequestStressRange(t *testing.T) {
	for _, v := range []int{1, 5, 10} {
		req := validLifestyleRequest()
		req.StressLevel = iptr(v)
		assert.NoError(t, ValidateLifestyleRequest(req))
	}
	for _, v := range []int{0, 11, -2} {
		req := validLifestyleRequest()
		req.StressLevel = iptr(v)
		err := ValidateLifestyleRequest(req)
		require.Error(t, err)

		var appErr *internal.AppError
		require.True(t, errors.As(err, &appErr))
		assert.Equal(t, "stress_level", appErr.Field)
		assert.Contains(t, appErr.Message, "between 1 and 10")
	}
}

func TestValidateLifestyleRequestSleepAids(t *testing.T) {
	req := validLifestyleRequest()
	req.SleepAids = []string{"melatonin", "unisom", "xanax"}
	assert.NoError(t, ValidateLifestyleRequest(req))

	req.SleepAids = []string{"melatonin", "benadryl"}
	err := ValidateLifestyleRequest(req)
	require.Error(t, err)

	var appErr *internal.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Contains(t, appErr.Message, "xanax, melatonin, unisom")
}

func TestValidateLifestyleRequestNegativeServings(t *testing.T) {
	req := validLifestyleRequest()
	req.CaffeineServings = iptr(-1)
	err := ValidateLifestyleRequest(req)
	require.Error(t, err)

	var appErr *internal.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "caffeine_servings", appErr.Field)
}
