package storage

import (
	"context"
	"io"
	"net/http"
	"os"
	"strings"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newMemStorage(t *testing.T) (FileStorage, afero.Fs) {
	t.Helper()
	fs := afero.NewMemMapFs()
	st, err := NewFsStorage(fs)
	require.NoError(t, err)
	return st, fs
}

func TestLocalStorageSaveListDelete(t *testing.T) {
	ctx := context.Background()
	st, fs := newMemStorage(t)

	require.NoError(t, st.Save(ctx, Key(AreaDrills, "drill_b.mp4"), strings.NewReader("b"), 1, "video/mp4"))
	require.NoError(t, st.Save(ctx, Key(AreaDrills, "drill_a.pdf"), strings.NewReader("a"), 1, "application/pdf"))
	require.NoError(t, afero.WriteFile(fs, "drills/.DS_Store", []byte("x"), 0o644))

	data, err := afero.ReadFile(fs, "drills/drill_b.mp4")
	require.NoError(t, err)
	assert.Equal(t, "b", string(data))

	names, err := st.List(ctx, AreaDrills)
	require.NoError(t, err)
	assert.Equal(t, []string{"drill_a.pdf", "drill_b.mp4"}, names)

	require.NoError(t, st.Delete(ctx, Key(AreaDrills, "drill_a.pdf")))
	require.NoError(t, st.Delete(ctx, Key(AreaDrills, "drill_a.pdf")), "deleting twice is fine")

	names, err = st.List(ctx, AreaDrills)
	require.NoError(t, err)
	assert.Equal(t, []string{"drill_b.mp4"}, names)

	names, err = st.List(ctx, AreaPlayers)
	require.NoError(t, err)
	assert.Empty(t, names)
}

func TestLocalStorageRejectsEscapingKeys(t *testing.T) {
	ctx := context.Background()
	st, _ := newMemStorage(t)

	for _, key := range []string{"../etc/passwd", "drills/../../x", "", "drills/./a"} {
		err := st.Save(ctx, key, strings.NewReader("x"), 1, "")
		assert.Error(t, err, key)
	}
}

func TestLocalStorageURL(t *testing.T) {
	st, _ := newMemStorage(t)
	url, err := st.URL(context.Background(), Key(AreaPlayers, "p_1.jpg"))
	require.NoError(t, err)
	assert.Equal(t, "/static/players/p_1.jpg", url)
}

func TestHTTPFileSystem(t *testing.T) {
	ctx := context.Background()
	st, _ := newMemStorage(t)
	require.NoError(t, st.Save(ctx, Key(AreaPlayers, "p_1.jpg"), strings.NewReader("jpeg"), 4, "image/jpeg"))

	hfs, ok := HTTPFileSystem(st, AreaPlayers)
	require.True(t, ok)

	f, err := hfs.Open("/p_1.jpg")
	require.NoError(t, err)
	defer f.Close()
	data, err := io.ReadAll(f)
	require.NoError(t, err)
	assert.Equal(t, "jpeg", string(data))

	_, err = hfs.Open("/missing.jpg")
	assert.Error(t, err)

	_, err = hfs.Open("/")
	assert.ErrorIs(t, err, os.ErrNotExist, "areas are not listable")

	var _ http.FileSystem = hfs
}

func TestNewObjectName(t *testing.T) {
	a := NewObjectName("p_", "Photo.JPG", ".jpg")
	b := NewObjectName("p_", "Photo.JPG", ".jpg")
	assert.NotEqual(t, a, b)
	assert.True(t, strings.HasPrefix(a, "p_"))
	assert.True(t, strings.HasSuffix(a, ".jpg"))
	assert.Len(t, a, len("p_")+16+len(".jpg"))

	assert.True(t, strings.HasSuffix(NewObjectName("p_", "noext", ".jpg"), ".jpg"))
	assert.True(t, strings.HasSuffix(NewObjectName("drill_", `C:\clips\swing.MOV`, ""), ".mov"))

	bare := NewObjectName("drill_", "noext", "")
	assert.Len(t, bare, len("drill_")+16)
}
