package commands

import (
	"os"
	"strings"

	"modelwatch/lib/serviceutil"
	"modelwatch/services/catalog"
	"modelwatch/services/digestmail"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

var scheduleMinute *int
var scheduleHour *int
var scheduleDays *[]string

func init() {
	scheduleMinute = scheduleAddCmd.Flags().Int("minute", 0, "Minute of the trigger.")
	scheduleHour = scheduleAddCmd.Flags().Int("hour", 0, "Hour of the trigger.")
	scheduleDays = scheduleAddCmd.Flags().StringSlice("dow", nil, "Days of week (MON..SUN), every day when omitted.")

	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleRemoveCmd)
	scheduleCmd.AddCommand(scheduleListCmd)
	rootCmd.AddCommand(scheduleCmd)
}

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manages digest notification schedules.",
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add --minute <m> --hour <h> --dow MON[,TUE...] <email>",
	Short: "Subscribes an email to a trigger, creating the schedule on first use.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, store := mustOpenCatalog()

		trigger := catalog.Trigger{
			Minute:     *scheduleMinute,
			Hour:       *scheduleHour,
			DaysOfWeek: *scheduleDays,
		}
		err := store.AddRecipient(trigger, args[0])
		if err != nil {
			serviceutil.Fatal("failed to add recipient", err)
		}
	},
}

var scheduleRemoveCmd = &cobra.Command{
	Use:   "remove <email>",
	Short: "Unsubscribes an email from every schedule it is on.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		_, store := mustOpenCatalog()

		err := store.RemoveRecipient(args[0])
		if err != nil {
			serviceutil.Fatal("failed to remove recipient", err)
		}
	},
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "Prints every schedule with its cron spec and recipients.",
	Run: func(cmd *cobra.Command, args []string) {
		_, store := mustOpenCatalog()

		schedules, err := store.Schedules.All()
		if err != nil {
			serviceutil.Fatal("failed to list schedules", err)
		}

		t := table.NewWriter()
		t.SetOutputMirror(os.Stdout)
		t.AppendHeader(table.Row{"Cron", "Recipients"})
		for _, s := range schedules {
			t.AppendRow(table.Row{
				digestmail.CronSpec(s.Trigger),
				strings.Join(s.Emails, ", "),
			})
		}
		t.Render()
	},
}
