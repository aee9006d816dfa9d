package main

import (
	"fmt"

	"github.com/mark3labs/toolstatus/internal/logger"
	"github.com/spf13/cobra"
)

var publishCmd = &cobra.Command{
	Use:   "publish [file...]",
	Short: "Publish tool-call records to a session",
	Long: `Read tool-call records and append them to the session's JetStream log.

Records without a toolCallId are given a random one. The ID of every
published record is printed, one per line.`,
	RunE: runPublish,
}

func runPublish(cmd *cobra.Command, args []string) error {
	invs, err := readInputs(args)
	if err != nil {
		return err
	}

	store, cleanup, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer cleanup()

	for _, inv := range invs {
		stored, err := store.Publish(cmd.Context(), cfg.Session, inv)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), stored.ID)
	}

	logger.Info("Published %d records to session %s", len(invs), cfg.Session)
	return nil
}
