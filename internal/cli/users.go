package cli

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

// UsersCmd returns the users command
func UsersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users <place_id>",
		Short: "List onboarding submissions for a place",
		Long: `List every stored submission for place_id in insertion order.

Usage:
  onboarding users store7          # table
  onboarding users store7 --json   # same output as the lookup API`,
		Args: cobra.ExactArgs(1),
		RunE: runUsers,
	}
	cmd.Flags().Bool("json", false, "Print JSON instead of a table")
	return cmd
}

func runUsers(cmd *cobra.Command, args []string) error {
	asJSON, _ := cmd.Flags().GetBool("json")
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	a, err := openApp(cmd.Context(), cfg, false)
	if err != nil {
		return err
	}
	defer a.close()

	list, err := a.uc.ListByPlace(cmd.Context(), args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(list)
	}
	if len(list) == 0 {
		fmt.Fprintf(out, "No submissions for %s\n", color.New(color.FgYellow).Sprint(args[0]))
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, color.New(color.Bold).Sprint("ID\tNAME\tSURNAME\tPOSITION\tIMAGE\tCHECK-IN"))
	for _, r := range list {
		img := color.New(color.FgRed).Sprint("(none)")
		if r.UserImage != nil {
			img = *r.UserImage
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
			color.New(color.FgHiBlue).Sprint(r.ID),
			r.UserName, r.UserSurname, r.EmpPosition, img,
			r.CheckinAt.UTC().Format(time.RFC3339),
		)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Fprintf(out, "%d submission(s) for %s\n", len(list), args[0])
	return nil
}
