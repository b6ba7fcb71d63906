package cache

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/edgebt/bredr"
)

func TestStoreLoadRoundTrip(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "identities.json"))
	a := bredr.NewAddr("a1:a2:a3:a4:a5:a6")

	id := bredr.Identity{
		Address:  a.String(),
		Public:   true,
		PageScan: 0x01,
		ClockOff: 0x1234,
	}
	require.NoError(t, c.Store(a, id, false))

	got, err := c.Load(a)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestStoreNoReplace(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "identities.json"))
	a := bredr.NewAddr("a1:a2:a3:a4:a5:a6")

	require.NoError(t, c.Store(a, bredr.Identity{Address: a.String()}, false))
	assert.Error(t, c.Store(a, bredr.Identity{Address: a.String()}, false),
		"second store without replace should fail")

	updated := bredr.Identity{Address: a.String(), PageScan: 0x02}
	require.NoError(t, c.Store(a, updated, true))

	got, err := c.Load(a)
	require.NoError(t, err)
	assert.Equal(t, uint8(0x02), got.PageScan)
}

func TestLoadMissing(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "identities.json"))

	_, err := c.Load(bredr.NewAddr("b1:b2:b3:b4:b5:b6"))
	assert.Error(t, err)
}

func TestClear(t *testing.T) {
	c := New(filepath.Join(t.TempDir(), "identities.json"))
	a := bredr.NewAddr("a1:a2:a3:a4:a5:a6")

	require.NoError(t, c.Store(a, bredr.Identity{Address: a.String()}, false))
	require.NoError(t, c.Clear())

	_, err := c.Load(a)
	assert.Error(t, err)
}
