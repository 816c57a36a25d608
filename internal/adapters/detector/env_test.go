package detector_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/Viskhan-95/golden-chicken/internal/adapters/detector"
)

func TestDetect(t *testing.T) {
	tests := []struct {
		name     string
		ciValue  string
		isTTY    bool
		expected detector.OutputMode
	}{
		{"CI=true forces linear mode", "true", true, detector.ModeLinear},
		{"CI=1 forces linear mode", "1", true, detector.ModeLinear},
		{"CI=false keeps the terminal", "false", true, detector.ModeTUI},
		{"no CI on a terminal", "", true, detector.ModeTUI},
		{"no terminal", "", false, detector.ModeLinear},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("CI", tt.ciValue)
			assert.Equal(t, tt.expected, detector.Detect(tt.isTTY))
		})
	}
}

func TestDetectEnvironment_CI(t *testing.T) {
	t.Setenv("CI", "true")
	assert.Equal(t, detector.ModeLinear, detector.DetectEnvironment())
}

func TestResolveMode(t *testing.T) {
	tests := []struct {
		name         string
		autoDetected detector.OutputMode
		userFlag     string
		expected     detector.OutputMode
	}{
		{"auto respects auto-detection (TUI)", detector.ModeTUI, "auto", detector.ModeTUI},
		{"auto respects auto-detection (Linear)", detector.ModeLinear, "auto", detector.ModeLinear},
		{"empty flag respects auto-detection", detector.ModeTUI, "", detector.ModeTUI},
		{"tui overrides auto-detection", detector.ModeLinear, "tui", detector.ModeTUI},
		{"linear overrides auto-detection", detector.ModeTUI, "linear", detector.ModeLinear},
		{"ci is alias for linear", detector.ModeTUI, "ci", detector.ModeLinear},
		{"invalid flag respects auto-detection", detector.ModeTUI, "invalid", detector.ModeTUI},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := detector.ResolveMode(tt.autoDetected, tt.userFlag)
			assert.Equal(t, tt.expected, got, "ResolveMode(%v, %q)", tt.autoDetected, tt.userFlag)
		})
	}
}

func TestOutputMode_String(t *testing.T) {
	assert.Equal(t, "auto", detector.ModeAuto.String())
	assert.Equal(t, "tui", detector.ModeTUI.String())
	assert.Equal(t, "linear", detector.ModeLinear.String())
}
