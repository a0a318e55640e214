package cli

import "github.com/spf13/cobra"

// RootCmd wires every subcommand under the onboarding binary.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "onboarding",
		Short: "Employee onboarding form service",
		Long: `Serves a per-place onboarding form, stores submitted photos on disk
and keeps one row per submission in the users table.`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(ServeCmd())
	root.AddCommand(MigrateCmd())
	root.AddCommand(UsersCmd())
	return root
}
