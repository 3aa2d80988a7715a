package session

import (
	"os"
	"path/filepath"
	"runtime"
	"testing"

	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "nested", "session.json")
	store, err := NewStore(path)
	require.NoError(t, err)
	return store
}

func TestSaveAndLoad_RoundTrip(t *testing.T) {
	store := newTestStore(t)

	in := Data{Email: "a@b.com", AccessToken: "A1", RefreshToken: "R1"}
	require.NoError(t, store.Save(in))

	out, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, in, *out)
}

func TestSave_OverwritesPreviousPair(t *testing.T) {
	store := newTestStore(t)

	require.NoError(t, store.Save(Data{Email: "a@b.com", AccessToken: "A1", RefreshToken: "R1"}))
	require.NoError(t, store.Save(Data{Email: "a@b.com", AccessToken: "A2", RefreshToken: "R2"}))

	out, err := store.Load()
	require.NoError(t, err)
	require.Equal(t, "A2", out.AccessToken)
	require.Equal(t, "R2", out.RefreshToken)
}

func TestSave_OwnerOnlyPermissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("file modes are not meaningful on windows")
	}

	store := newTestStore(t)
	require.NoError(t, store.Save(Data{Email: "a@b.com"}))

	fi, err := os.Stat(store.path)
	require.NoError(t, err)
	require.Equal(t, os.FileMode(0o600), fi.Mode().Perm())
}

func TestLoad_MissingFile(t *testing.T) {
	store := newTestStore(t)

	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)
}

func TestLoad_CorruptFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0o600))

	store, err := NewStore(path)
	require.NoError(t, err)

	_, err = store.Load()
	require.Error(t, err)
	require.NotErrorIs(t, err, ErrNoSession)
}

func TestClear(t *testing.T) {
	store := newTestStore(t)
	require.NoError(t, store.Save(Data{Email: "a@b.com"}))

	require.NoError(t, store.Clear())
	_, err := store.Load()
	require.ErrorIs(t, err, ErrNoSession)

	// повторная очистка не ошибка
	require.NoError(t, store.Clear())
}

func TestDefaultPath(t *testing.T) {
	p, err := DefaultPath()
	require.NoError(t, err)
	require.Contains(t, p, "accmachine")
	require.Equal(t, "session.json", filepath.Base(p))
}
