package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateModeFromFlags(t *testing.T) {
	mode, ok := RateModeFromFlags(true, false)
	assert.True(t, ok)
	assert.Equal(t, RateModeCreateNew, mode)

	mode, ok = RateModeFromFlags(false, true)
	assert.True(t, ok)
	assert.Equal(t, RateModeRemove, mode)

	_, ok = RateModeFromFlags(true, true)
	assert.False(t, ok)
	_, ok = RateModeFromFlags(false, false)
	assert.False(t, ok)
}

func TestLocationSetting_MarshalJSONIncludesFlags(t *testing.T) {
	raw, err := json.Marshal(LocationSetting{
		ID:         "s1",
		LocationID: "loc-1",
		Mode:       RateModeRemove,
	})
	require.NoError(t, err)

	var out map[string]any
	require.NoError(t, json.Unmarshal(raw, &out))
	assert.Equal(t, "loc-1", out["locationId"])
	assert.Equal(t, false, out["createNewRates"])
	assert.Equal(t, true, out["removeRates"])
	assert.Nil(t, out["location"])
}

func TestValidateID(t *testing.T) {
	assert.NoError(t, ValidateID("0b6e3f2c-3c55-4b8e-9a0e-2d1c8f0a9b11", "store id"))

	err := ValidateID("", "store id")
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "store id is required", err.Error())

	err = ValidateID("64f0c2a1b2c3d4e5f6a7b8c9", "store id")
	assert.Equal(t, KindValidation, KindOf(err))
	assert.Equal(t, "Invalid store id", err.Error())

	for _, id := range []string{
		"0B6E3F2C-3C55-4B8E-9A0E-2D1C8F0A9B11",
		"{0b6e3f2c-3c55-4b8e-9a0e-2d1c8f0a9b11}",
		"urn:uuid:0b6e3f2c-3c55-4b8e-9a0e-2d1c8f0a9b11",
		"0b6e3f2c3c554b8e9a0e2d1c8f0a9b11",
	} {
		err = ValidateID(id, "store id")
		assert.Equal(t, KindValidation, KindOf(err), id)
	}
}
