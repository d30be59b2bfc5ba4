package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete a learner's brain map history",
	RunE: func(cmd *cobra.Command, args []string) error {
		user := resolveUser(cmd)

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		if err := s.BrainMaps().Delete(cmd.Context(), user); err != nil {
			return err
		}
		fmt.Printf("Brain map history for %s deleted\n", user)
		return nil
	},
}
