package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseValue(t *testing.T) {
	assert.Equal(t, 2020, ParseValue("2020"))
	assert.Equal(t, 2020, ParseValue("  2020  "))
	assert.Equal(t, -5, ParseValue("-5"))
	assert.Equal(t, 1500.5, ParseValue("1500.5"))
	assert.Equal(t, "Alameda", ParseValue("Alameda"))
	assert.Equal(t, "", ParseValue("   "))
}

func TestNumeric(t *testing.T) {
	assert.Equal(t, 42.0, Numeric(42))
	assert.Equal(t, 42.0, Numeric(int64(42)))
	assert.Equal(t, 42.5, Numeric(42.5))
	assert.Equal(t, 42.0, Numeric(float32(42)))
	assert.Equal(t, 42.0, Numeric("42"))
	assert.Equal(t, 0.0, Numeric("not a number"))
	assert.Equal(t, 0.0, Numeric(nil))
	assert.Equal(t, 0.0, Numeric(struct{}{}))
}

func TestRoundIntTiesAwayFromZero(t *testing.T) {
	assert.Equal(t, 1, RoundInt(0.5))
	assert.Equal(t, -1, RoundInt(-0.5))
	assert.Equal(t, 67, RoundInt(66.666))
	assert.Equal(t, 33, RoundInt(33.333))
	assert.Equal(t, 0, RoundInt(0))
	assert.Equal(t, 3, RoundInt(2.5))
}
