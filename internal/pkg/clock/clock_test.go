package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestFixed(t *testing.T) {
	at := time.Date(2025, 3, 14, 9, 26, 0, 0, time.UTC)
	c := Fixed{At: at}
	require.Equal(t, at, c.Now())
	require.Equal(t, at, c.Now())
}

func TestFunc(t *testing.T) {
	n := 0
	c := Func(func() time.Time {
		n++
		return time.Unix(int64(n), 0)
	})
	require.Equal(t, time.Unix(1, 0), c.Now())
	require.Equal(t, time.Unix(2, 0), c.Now())
}

func TestSystem(t *testing.T) {
	before := time.Now()
	got := System{}.Now()
	require.False(t, got.Before(before))
}
