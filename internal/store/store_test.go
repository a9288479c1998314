package store

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"bubblemap/internal/config"
)

func exercise(t *testing.T, b Backend) {
	t.Helper()
	ctx := context.Background()

	_, err := b.Load(ctx)
	assert.ErrorIs(t, err, ErrNoDocument)

	require.NoError(t, b.Save(ctx, []byte(`{"bubbles":[]}`)))
	got, err := b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"bubbles":[]}`, string(got))

	require.NoError(t, b.Save(ctx, []byte(`{"bubbles":[{"id":"a"}]}`)))
	got, err = b.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"bubbles":[{"id":"a"}]}`, string(got))
}

func TestMemory(t *testing.T) {
	m := NewMemory()
	exercise(t, m)

	doc := []byte("abc")
	require.NoError(t, m.Save(context.Background(), doc))
	doc[0] = 'z'
	got, _ := m.Load(context.Background())
	assert.Equal(t, "abc", string(got))
}

func TestFile(t *testing.T) {
	dir := t.TempDir()
	f := NewFile(filepath.Join(dir, "sub", "mindmap.json"))
	exercise(t, f)

	entries, err := os.ReadDir(filepath.Join(dir, "sub"))
	require.NoError(t, err)
	require.Len(t, entries, 1, "temp files must not be left behind")
	assert.Equal(t, "mindmap.json", entries[0].Name())
}

func TestFileEmptyIsAbsent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mindmap.json")
	require.NoError(t, os.WriteFile(path, []byte("  \n"), 0o644))
	_, err := NewFile(path).Load(context.Background())
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestFileHonoursContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	f := NewFile(filepath.Join(t.TempDir(), "mindmap.json"))
	assert.ErrorIs(t, f.Save(ctx, []byte("{}")), context.Canceled)
	_, err := f.Load(ctx)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFileSaveFailure(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "blocker")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	f := NewFile(filepath.Join(blocker, "mindmap.json"))
	assert.Error(t, f.Save(context.Background(), []byte("{}")))
}

func TestSQLite(t *testing.T) {
	path := filepath.Join(t.TempDir(), "db", "mindmap.db")
	s, err := OpenSQLite(path, "mindmap-save")
	require.NoError(t, err)
	exercise(t, s)

	ctx := context.Background()
	require.NoError(t, s.Put(ctx, "mindmap-theme", "dark"))
	theme, err := s.Get(ctx, "mindmap-theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", theme)
	require.NoError(t, s.Close())

	reopened, err := OpenSQLite(path, "mindmap-save")
	require.NoError(t, err)
	defer reopened.Close()
	got, err := reopened.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, `{"bubbles":[{"id":"a"}]}`, string(got))

	other, err := OpenSQLite(path, "elsewhere")
	require.NoError(t, err)
	defer other.Close()
	_, err = other.Load(ctx)
	assert.ErrorIs(t, err, ErrNoDocument)
}

func TestOpen(t *testing.T) {
	cfg := config.Default()
	cfg.Store.SaveDirectory = t.TempDir()

	b, err := Open(cfg)
	require.NoError(t, err)
	f, ok := b.(*File)
	require.True(t, ok)
	assert.Equal(t, filepath.Join(cfg.Store.SaveDirectory, "mindmap.json"), f.Path())

	cfg.Store.Backend = "memory"
	b, err = Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &Memory{}, b)

	cfg.Store.Backend = "sqlite"
	b, err = Open(cfg)
	require.NoError(t, err)
	assert.IsType(t, &SQLite{}, b)
	require.NoError(t, b.Close())

	cfg.Store.Backend = "cloud"
	_, err = Open(cfg)
	assert.Error(t, err)
}
