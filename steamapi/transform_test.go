package steamapi

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFlexIntDecodesSteamVariants(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want int
	}{
		{"plain number", `18`, 18},
		{"quoted number", `"18"`, 18},
		{"quoted with plus", `"18+"`, 18},
		{"zero", `0`, 0},
		{"empty string", `""`, 0},
		{"null", `null`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var f flexInt
			require.NoError(t, json.Unmarshal([]byte(tt.raw), &f))
			assert.Equal(t, tt.want, int(f))
		})
	}

	t.Run("garbage rejected", func(t *testing.T) {
		var f flexInt
		assert.Error(t, json.Unmarshal([]byte(`"mature"`), &f))
	})
}

func TestDecodeAppDetailsFallsBackToRequestedID(t *testing.T) {
	body := []byte(`{"570":{"success":true,"data":{"name":"Dota 2"}}}`)

	details, err := decodeAppDetails(body, "570")
	require.NoError(t, err)
	assert.Equal(t, "570", details.AppID, "missing steam_appid falls back to the requested id")
	assert.Equal(t, "Dota 2", details.Name)
}

func TestDecodeAppDetailsMissingEnvelope(t *testing.T) {
	body := []byte(`{"571":{"success":true,"data":{"name":"Other"}}}`)

	_, err := decodeAppDetails(body, "570")
	require.Error(t, err)
	assert.True(t, IsNotFound(err))
}
