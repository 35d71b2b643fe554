package cli

import (
	"github.com/spf13/cobra"

	"github.com/timekeep/timekeep/internal/storage"
)

func newInitCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create the database file and schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			exec := storage.NewExecutor()
			if err := exec.Connect(dbPath); err != nil {
				return err
			}
			defer exec.Close()
			cmd.Printf("Initialized database at %s\n", exec.Name())
			return nil
		},
	}
}

func newResetCommand() *cobra.Command {
	var confirmed bool

	cmd := &cobra.Command{
		Use:   "reset",
		Short: "Delete all records, keeping the schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !confirmed {
				cmd.Println("Refusing to wipe the database without --yes")
				return nil
			}
			exec := storage.NewExecutor()
			if err := exec.Connect(dbPath); err != nil {
				return err
			}
			defer exec.Close()
			if err := exec.ResetDatabase(); err != nil {
				return err
			}
			cmd.Printf("Reset database at %s\n", exec.Name())
			return nil
		},
	}

	cmd.Flags().BoolVar(&confirmed, "yes", false, "confirm the wipe")
	return cmd
}
