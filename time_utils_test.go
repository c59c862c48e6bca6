package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFloorToMinuteMS(t *testing.T) {
	assert.Equal(t, int64(60_000), floorToMinuteMS(65_432))
	assert.Equal(t, int64(0), floorToMinuteMS(59_999))
	assert.Equal(t, int64(120_000), floorToMinuteMS(120_000))
}

func TestFormatMinuteISOOverridableForTests(t *testing.T) {
	orig := minuteISOFormatter
	defer func() { minuteISOFormatter = orig }()

	minuteISOFormatter = func(minuteTSMS int64) string { return "FIXED" }
	assert.Equal(t, "FIXED", formatMinuteISO(123))
}

func TestNowMonotonicNSIsNonDecreasing(t *testing.T) {
	a := nowMonotonicNS()
	b := nowMonotonicNS()
	assert.GreaterOrEqual(t, b, a)
}
