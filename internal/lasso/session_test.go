package lasso

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToolKind_String(t *testing.T) {
	assert.Equal(t, "none", ToolNone.String())
	assert.Equal(t, "freehand", ToolFreehand.String())
	assert.Equal(t, "polygonal", ToolPolygonal.String())
	assert.Equal(t, "magnetic", ToolMagnetic.String())
	assert.Equal(t, "tool(9)", ToolKind(9).String())
}

func TestParseToolKind(t *testing.T) {
	tests := []struct {
		in      string
		want    ToolKind
		wantErr bool
	}{
		{"freehand", ToolFreehand, false},
		{" Magnetic ", ToolMagnetic, false},
		{"polygon", ToolPolygonal, false},
		{"POLYGONAL", ToolPolygonal, false},
		{"", ToolNone, false},
		{"rectangle", ToolNone, true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseToolKind(tt.in)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestConfig_WithDefaults(t *testing.T) {
	c := Config{Sensitivity: 400}.withDefaults()
	assert.Equal(t, DefaultCloseThreshold, c.CloseThreshold)
	assert.Equal(t, DefaultSnapRadius, c.SnapRadius)
	assert.Equal(t, DefaultSnapSpacing, c.SnapSpacing)
	assert.Equal(t, DefaultMarkerRadius, c.MarkerRadius)
	assert.Equal(t, 100, c.Sensitivity)
	assert.Positive(t, c.SamplesPerSpan)

	custom := Config{CloseThreshold: 7, Sensitivity: -2}.withDefaults()
	assert.Equal(t, 7.0, custom.CloseThreshold)
	assert.Equal(t, 0, custom.Sensitivity)
}
