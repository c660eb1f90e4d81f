package catalog

import (
	"strings"
	"testing"

	"modelwatch/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestFormatName(t *testing.T) {
	long := strings.Repeat("x", 35)
	got := FormatName(long)
	require.Equal(t, strings.Repeat("x", 27)+"...", got)
	require.Equal(t, 30, len([]rune(got)))

	short := strings.Repeat("x", 29)
	require.Equal(t, short, FormatName(short))

	exact := strings.Repeat("x", 30)
	require.Equal(t, exact, FormatName(exact))

	// rune counting, not bytes
	cjk := strings.Repeat("字", 35)
	require.Equal(t, strings.Repeat("字", 27)+"...", FormatName(cjk))
}

func TestSelectForDigest(t *testing.T) {
	db, cleanup := testutil.SetupStore(t, "services/catalog")
	defer cleanup()
	store := NewStore(db)

	dated := func(model, id, date string) Video {
		v := video(model, id, "link-"+id, 0)
		v.UploadTime = date
		return v
	}
	for _, v := range []Video{
		dated("m1", "old", "01/05/2026"),
		dated("m1", "newest", "04/20/2026"),
		dated("m1", "mid", "02/10/2026"),
		dated("m2", "only", "03/01/2026"),
		dated("m3", "unwanted", "03/01/2026"),
	} {
		require.NoError(t, store.Videos.Insert(v))
	}

	selected, err := store.SelectForDigest([]string{"m2", "m1"})
	require.NoError(t, err)
	require.Len(t, selected, 3)

	// per-model picks concatenated in wanted order, newest first
	require.Equal(t, "only", selected[0].ID)
	require.Equal(t, "newest", selected[1].ID)
	require.Equal(t, "mid", selected[2].ID)
}

func TestSelectForDigestTruncatesNames(t *testing.T) {
	db, cleanup := testutil.SetupStore(t, "services/catalog")
	defer cleanup()
	store := NewStore(db)

	v := video("m1", "id1", "link1", 0)
	v.Name = strings.Repeat("a", 40)
	require.NoError(t, store.Videos.Insert(v))

	selected, err := store.SelectForDigest([]string{"m1"})
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("a", 27)+"...", selected[0].Name)

	// truncation is selection-time formatting, the stored row is
	// untouched
	stored, err := store.Videos.All()
	require.NoError(t, err)
	require.Equal(t, strings.Repeat("a", 40), stored[0].Name)
}
