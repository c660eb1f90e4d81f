package commands

import (
	"modelwatch/lib/serviceutil"
	"modelwatch/services/digestmail"

	"github.com/spf13/cobra"
)

var sendTo *[]string

func init() {
	sendCmd.AddCommand(sendDailyCmd)
	sendCmd.AddCommand(sendWeeklyCmd)
	sendTo = sendCmd.PersistentFlags().StringSlice("to", nil, "Recipient addresses.")
	sendCmd.MarkPersistentFlagRequired("to")
	rootCmd.AddCommand(sendCmd)
}

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Renders a digest from the store and mails it.",
}

var sendDailyCmd = &cobra.Command{
	Use:   "daily --to <email>",
	Short: "Sends the daily digest: a random video and two suggested models.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, store := mustOpenCatalog()

		body, err := digestmail.NewFormatter(store).Daily()
		if err != nil {
			serviceutil.Fatal("failed to format daily digest", err)
		}
		err = digestmail.NewSender(cfg.Smtp).Send(*sendTo, "Your daily pick", body)
		if err != nil {
			serviceutil.Fatal("failed to send daily digest", err)
		}
	},
}

var sendWeeklyCmd = &cobra.Command{
	Use:   "weekly --to <email> [model...]",
	Short: "Sends the weekly digest of recent videos, all models unless named.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg, store := mustOpenCatalog()

		wanted := args
		if len(wanted) == 0 {
			models, err := store.Models.All()
			if err != nil {
				serviceutil.Fatal("failed to list models", err)
			}
			for _, m := range models {
				wanted = append(wanted, m.Name)
			}
		}

		body, err := digestmail.NewFormatter(store).Weekly(wanted)
		if err != nil {
			serviceutil.Fatal("failed to format weekly digest", err)
		}
		err = digestmail.NewSender(cfg.Smtp).Send(*sendTo, "Your weekly digest", body)
		if err != nil {
			serviceutil.Fatal("failed to send weekly digest", err)
		}
	},
}
