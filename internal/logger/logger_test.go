package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLine(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line), buf.String())
	return line
}

func TestInitWithWriter_Levels(t *testing.T) {
	t.Cleanup(func() { InitWithWriter("info", false, &bytes.Buffer{}) })

	tests := []struct {
		level string
		want  zerolog.Level
	}{
		{level: "debug", want: zerolog.DebugLevel},
		{level: "warn", want: zerolog.WarnLevel},
		{level: "error", want: zerolog.ErrorLevel},
		{level: "", want: zerolog.InfoLevel},
		{level: "verbose", want: zerolog.InfoLevel},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			InitWithWriter(tt.level, false, &bytes.Buffer{})
			assert.Equal(t, tt.want, zerolog.GlobalLevel())
		})
	}
}

func TestInitWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("debug", false, &buf)
	t.Cleanup(func() { InitWithWriter("info", false, &bytes.Buffer{}) })

	console := Logger()
	console.Debug().Int("placed", 48).Msg("packing finished")

	line := decodeLine(t, &buf)
	assert.Equal(t, ServiceName, line["service"])
	assert.Equal(t, "debug", line["level"])
	assert.EqualValues(t, 48, line["placed"])
	assert.Contains(t, line, "time")
}

func TestInitWithWriter_FiltersBelowLevel(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("warn", false, &buf)
	t.Cleanup(func() { InitWithWriter("info", false, &bytes.Buffer{}) })

	console := Logger()
	console.Info().Msg("hidden")
	assert.Zero(t, buf.Len())

	console.Warn().Msg("cartons could not be loaded")
	assert.Equal(t, "warn", decodeLine(t, &buf)["level"])
}

func TestInitWithWriter_Pretty(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", true, &buf)
	t.Cleanup(func() { InitWithWriter("info", false, &bytes.Buffer{}) })

	console := Logger()
	console.Info().Str("container", "40hc").Msg("Simulation completed")

	out := buf.String()
	assert.Contains(t, out, "Simulation completed")
	assert.Contains(t, out, "40hc")
	assert.NotContains(t, out, `"service"`)
}

func TestForSimulation(t *testing.T) {
	var buf bytes.Buffer
	InitWithWriter("info", false, &buf)
	t.Cleanup(func() { InitWithWriter("info", false, &bytes.Buffer{}) })

	simLog := ForSimulation("sim-9", "20ft")
	simLog.Info().Msg("Simulation exported")

	line := decodeLine(t, &buf)
	assert.Equal(t, "sim-9", line["simulation_id"])
	assert.Equal(t, "20ft", line["container"])
	assert.Equal(t, ServiceName, line["service"])
}
