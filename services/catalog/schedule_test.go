package catalog

import (
	"testing"

	"modelwatch/lib/testutil"

	"github.com/stretchr/testify/require"
)

func TestAddRecipient(t *testing.T) {
	db, cleanup := testutil.SetupStore(t, "services/catalog")
	defer cleanup()
	store := NewStore(db)

	monday := Trigger{Minute: 0, Hour: 0, DaysOfWeek: []string{"MON"}}

	require.NoError(t, store.AddRecipient(monday, "a@x"))
	require.Equal(t, 1, store.Schedules.Len())

	require.NoError(t, store.AddRecipient(monday, "b@x"))
	require.Equal(t, 1, store.Schedules.Len())

	found, err := store.Schedules.Search(monday.Match)
	require.NoError(t, err)
	require.Len(t, found, 1)
	require.Equal(t, []string{"a@x", "b@x"}, found[0].Emails)

	// a different trigger is a distinct schedule document
	tuesday := Trigger{Minute: 0, Hour: 0, DaysOfWeek: []string{"TUE"}}
	require.NoError(t, store.AddRecipient(tuesday, "c@x"))
	require.Equal(t, 2, store.Schedules.Len())
}

func TestAddRecipientDeduplicates(t *testing.T) {
	db, cleanup := testutil.SetupStore(t, "services/catalog")
	defer cleanup()
	store := NewStore(db)

	monday := Trigger{Minute: 30, Hour: 8, DaysOfWeek: []string{"MON"}}
	require.NoError(t, store.AddRecipient(monday, "a@x"))
	require.NoError(t, store.AddRecipient(monday, "a@x"))

	found, err := store.Schedules.Search(monday.Match)
	require.NoError(t, err)
	require.Equal(t, []string{"a@x"}, found[0].Emails)
}

func TestTriggerIdentityIsOrderSensitive(t *testing.T) {
	db, cleanup := testutil.SetupStore(t, "services/catalog")
	defer cleanup()
	store := NewStore(db)

	require.NoError(t, store.AddRecipient(Trigger{DaysOfWeek: []string{"MON", "TUE"}}, "a@x"))
	require.NoError(t, store.AddRecipient(Trigger{DaysOfWeek: []string{"TUE", "MON"}}, "a@x"))
	require.Equal(t, 2, store.Schedules.Len())
}

func TestRemoveRecipient(t *testing.T) {
	db, cleanup := testutil.SetupStore(t, "services/catalog")
	defer cleanup()
	store := NewStore(db)

	monday := Trigger{Minute: 0, Hour: 0, DaysOfWeek: []string{"MON"}}

	require.NoError(t, store.AddRecipient(monday, "a@x"))
	require.Equal(t, 1, store.Schedules.Len())

	// removing the sole recipient removes the whole schedule
	require.NoError(t, store.RemoveRecipient("a@x"))
	require.Equal(t, 0, store.Schedules.Len())

	require.NoError(t, store.AddRecipient(monday, "a@x"))
	require.NoError(t, store.AddRecipient(monday, "b@x"))
	require.NoError(t, store.AddRecipient(monday, "c@x"))
	require.Equal(t, 1, store.Schedules.Len())

	require.NoError(t, store.RemoveRecipient("c@x"))
	require.Equal(t, 1, store.Schedules.Len())

	found, err := store.Schedules.Search(monday.Match)
	require.NoError(t, err)
	require.Equal(t, []string{"a@x", "b@x"}, found[0].Emails)
}
