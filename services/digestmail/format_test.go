package digestmail

import (
	"strings"
	"testing"

	"modelwatch/lib/testutil"
	"modelwatch/services/catalog"

	"github.com/stretchr/testify/require"
)

func seedCatalog(t *testing.T) catalog.Store {
	db, cleanup := testutil.SetupStore(t, "services/digestmail")
	t.Cleanup(cleanup)
	store := catalog.NewStore(db)

	for _, m := range []catalog.Model{
		{Name: "m1", Link: "https://site/models/m1/", Avatar: catalog.DefaultAvatar},
		{Name: "m2", Link: "https://site/models/m2/", Avatar: "https://img/m2.jpg"},
	} {
		require.NoError(t, store.Models.Insert(m))
	}
	for _, v := range []catalog.Video{
		{Model: "m1", ID: "a1", Name: "first", Link: "https://v/a1", Image: "https://i/a1", Views: 1234567, Likes: 89, Tags: []string{"t1", "t2"}, UploadTime: "04/01/2026"},
		{Model: "m1", ID: "a2", Name: "second", Link: "https://v/a2", Image: "https://i/a2", Views: 55, Likes: 1, Tags: []string{"t1"}, UploadTime: "04/10/2026"},
		{Model: "m1", ID: "a3", Name: "third", Link: "https://v/a3", Image: "https://i/a3", Views: 9, Likes: 0, Tags: nil, UploadTime: "01/01/2026"},
		{Model: "m2", ID: "b1", Name: "solo", Link: "https://v/b1", Image: "https://i/b1", Views: 42, Likes: 7, Tags: nil, UploadTime: "02/02/2026"},
	} {
		require.NoError(t, store.Videos.Insert(v))
	}
	return store
}

func TestGroupDigits(t *testing.T) {
	require.Equal(t, "0", groupDigits(0))
	require.Equal(t, "999", groupDigits(999))
	require.Equal(t, "1,000", groupDigits(1000))
	require.Equal(t, "1,234,567", groupDigits(1234567))
	require.Equal(t, "-12,345", groupDigits(-12345))
}

func TestDaily(t *testing.T) {
	store := seedCatalog(t)
	body, err := NewFormatter(store).Daily()
	require.NoError(t, err)

	// two suggested models and one of the stored videos
	require.Contains(t, body, "Worth a look")
	require.True(t,
		strings.Contains(body, "https://v/a1") ||
			strings.Contains(body, "https://v/a2") ||
			strings.Contains(body, "https://v/a3") ||
			strings.Contains(body, "https://v/b1"))
	require.Contains(t, body, "https://site/models/m1/")
	require.Contains(t, body, "https://site/models/m2/")
}

func TestDailyNeedsContent(t *testing.T) {
	db, cleanup := testutil.SetupStore(t, "services/digestmail")
	defer cleanup()
	store := catalog.NewStore(db)

	_, err := NewFormatter(store).Daily()
	require.Error(t, err)
}

func TestWeekly(t *testing.T) {
	store := seedCatalog(t)
	body, err := NewFormatter(store).Weekly([]string{"m1", "m2"})
	require.NoError(t, err)

	// top 2 of m1 by upload date, m1 section before m2
	require.Contains(t, body, "https://v/a2")
	require.Contains(t, body, "https://v/a1")
	require.NotContains(t, body, "https://v/a3")
	require.Contains(t, body, "https://v/b1")
	require.Less(t, strings.Index(body, ">m1<"), strings.Index(body, ">m2<"))
	require.Contains(t, body, "1,234,567 views")
}

func TestWeeklySkipsUnknownModels(t *testing.T) {
	store := seedCatalog(t)
	body, err := NewFormatter(store).Weekly([]string{"m2", "ghost"})
	require.NoError(t, err)
	require.Contains(t, body, ">m2<")
	require.NotContains(t, body, "ghost")
}
