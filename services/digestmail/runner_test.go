package digestmail

import (
	"testing"

	"modelwatch/services/catalog"

	"github.com/stretchr/testify/require"
)

type recordingNotifier struct {
	recipients []string
	subject    string
	body       string
	sends      int
}

func (n *recordingNotifier) Send(recipients []string, subject, body string) error {
	n.recipients = recipients
	n.subject = subject
	n.body = body
	n.sends++
	return nil
}

func TestCronSpec(t *testing.T) {
	require.Equal(t, "30 8 * * MON", CronSpec(catalog.Trigger{
		Minute: 30, Hour: 8, DaysOfWeek: []string{"MON"},
	}))
	require.Equal(t, "0 0 * * MON,WED,FRI", CronSpec(catalog.Trigger{
		DaysOfWeek: []string{"MON", "WED", "FRI"},
	}))
	require.Equal(t, "15 21 * * *", CronSpec(catalog.Trigger{Minute: 15, Hour: 21}))
}

func TestRunnerRegister(t *testing.T) {
	store := seedCatalog(t)
	require.NoError(t, store.AddRecipient(catalog.Trigger{Minute: 0, Hour: 9, DaysOfWeek: []string{"MON"}}, "a@x"))
	require.NoError(t, store.AddRecipient(catalog.Trigger{Minute: 0, Hour: 9, DaysOfWeek: []string{"BADDAY"}}, "b@x"))

	// a stored schedule with an invalid day token must surface at
	// registration, not fire time
	runner := NewRunner(store, &recordingNotifier{})
	require.Error(t, runner.Register())
}

func TestRunnerDeliver(t *testing.T) {
	store := seedCatalog(t)
	notifier := &recordingNotifier{}
	runner := NewRunner(store, notifier)

	runner.deliver(catalog.Schedule{
		Trigger: catalog.Trigger{Minute: 0, Hour: 9, DaysOfWeek: []string{"MON"}},
		Emails:  []string{"a@x", "b@x"},
	})

	require.Equal(t, 1, notifier.sends)
	require.Equal(t, []string{"a@x", "b@x"}, notifier.recipients)
	require.Contains(t, notifier.body, "https://v/a2")
}
