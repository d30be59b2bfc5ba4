package cmd

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/nkapur/verbaprep/internal/store"
)

var importCmd = &cobra.Command{
	Use:   "import [bank-dir]",
	Short: "Validate bank JSON files and load them into SQLite",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runImport,
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	bankDir := cfg.BankDir
	if len(args) == 1 {
		bankDir = args[0]
	}

	bank, err := store.LoadBankDir(bankDir)
	if err != nil {
		return err
	}
	logrus.WithFields(logrus.Fields{
		"dir":       bankDir,
		"questions": len(bank.Questions),
		"passages":  len(bank.Passages),
	}).Info("bank loaded and validated")

	s, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer s.Close()

	n, err := s.Questions().Import(ctx, bank)
	if err != nil {
		return fmt.Errorf("import bank: %w", err)
	}
	fmt.Printf("Imported %d questions and %d passages\n", n, len(bank.Passages))
	return nil
}
