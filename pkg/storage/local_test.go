package storage

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLocalDiskRoundTrip(t *testing.T) {
	ctx := context.Background()
	d := NewLocalDisk(t.TempDir(), "http://pos.local/storage/")

	require.NoError(t, d.Put(ctx, "exports/sales.csv", []byte("id,total\n1,300.00\n")))

	ok, err := d.Exists(ctx, "exports/sales.csv")
	require.NoError(t, err)
	assert.True(t, ok)

	data, err := d.Get(ctx, "exports/sales.csv")
	require.NoError(t, err)
	assert.Equal(t, "id,total\n1,300.00\n", string(data))

	files, err := d.Files(ctx, "exports")
	require.NoError(t, err)
	assert.Equal(t, []string{"exports/sales.csv"}, files)

	assert.Equal(t, "http://pos.local/storage/exports/sales.csv", d.URL("exports/sales.csv"))

	require.NoError(t, d.Delete(ctx, "exports/sales.csv"))
	require.NoError(t, d.Delete(ctx, "exports/sales.csv"))

	_, err = d.Get(ctx, "exports/sales.csv")
	assert.ErrorIs(t, err, ErrNotExist)
}

func TestLocalDiskStaysInsideRoot(t *testing.T) {
	ctx := context.Background()
	root := t.TempDir()
	d := NewLocalDisk(root, "")

	require.NoError(t, d.Put(ctx, "../../escape.csv", []byte("x")))

	ok, err := d.Exists(ctx, "escape.csv")
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestManagerUse(t *testing.T) {
	d := NewLocalDisk(t.TempDir(), "")
	RegisterDisk("test", d)
	SetDefault("test")
	t.Cleanup(func() { SetDefault("local") })

	got, err := Default()
	require.NoError(t, err)
	assert.Same(t, d, got)

	_, err = Use("missing")
	assert.Error(t, err)
}
