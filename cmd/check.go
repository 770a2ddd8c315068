package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/daily-proof/internal/schema"
	"github.com/Tiliavir/daily-proof/internal/storage"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the tracker data file",
	Long: `Validate the tracker data file against its JSON schema and list the
records that would be repaired or ignored. Exits with status 1 when
problems are found.`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

func runCheck(cmd *cobra.Command, args []string) error {
	path := store.Path()
	w := cmd.OutOrStdout()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		fmt.Fprintf(w, "%s does not exist yet; it will be created on first use.\n", path)
		return nil
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}

	if _, err := storage.Decode(data); err != nil {
		fmt.Fprintf(w, "%s: %v\nThe file will be moved aside and replaced by an empty document on next use.\n", path, err)
		os.Exit(1)
	}

	issues, err := schema.Validate(data)
	if err != nil {
		return err
	}
	if len(issues) == 0 {
		fmt.Fprintf(w, "%s: OK\n", path)
		return nil
	}

	fmt.Fprintf(w, "%s: %d problem(s)\n", path, len(issues))
	for _, is := range issues {
		fmt.Fprintf(w, "  %s\n", is)
	}
	os.Exit(1)
	return nil
}
