package logger

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLogger_LevelsAndAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(DEBUG, &buf)

	log.Debug("dbg", "a", 1)
	log.Info("inf", "b", 2)
	log.Warn("wrn", "c", 3)
	log.Error("err", "d", 4)

	out := buf.String()
	for _, want := range []string{
		"level=DEBUG", "msg=dbg", "a=1",
		"level=INFO", "msg=inf", "b=2",
		"level=WARN", "msg=wrn", "c=3",
		"level=ERROR", "msg=err", "d=4",
	} {
		require.Contains(t, out, want)
	}
}

func TestLogger_SetLevelFilters(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(INFO, &buf)

	log.Debug("hidden")
	require.NotContains(t, buf.String(), "hidden")

	log.SetLevel(DEBUG)
	log.Debug("shown")
	require.Contains(t, buf.String(), "shown")

	log.SetLevel(ERROR)
	log.Warn("quiet")
	require.NotContains(t, buf.String(), "quiet")
}

func TestLogger_WithAddsAttributes(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter(INFO, &buf).With("component", "claims")

	log.Info("hello", "k", "v")
	out := buf.String()
	require.Contains(t, out, "component=claims")
	require.Contains(t, out, "k=v")
}

func TestParseLevel(t *testing.T) {
	require.Equal(t, DEBUG, ParseLevel("DEBUG"))
	require.Equal(t, WARN, ParseLevel("warning"))
	require.Equal(t, ERROR, ParseLevel(" error "))
	require.Equal(t, INFO, ParseLevel(""))
	require.Equal(t, INFO, ParseLevel("verbose"))
}
