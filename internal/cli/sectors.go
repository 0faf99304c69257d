package cli

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dexdogs/physaudit/internal/extract"
	"github.com/dexdogs/physaudit/internal/model"
)

var (
	sectorsRemote bool
	scopesURL     string
)

// sectorsCmd represents the sectors command
var sectorsCmd = &cobra.Command{
	Use:   "sectors",
	Short: "List the sectoral scope registry",
	Long: `Sectors prints the embedded CDM sectoral scope registry.

With --remote, the live scopes table is fetched and cross-checked against
the embedded registry, flagging IDs that are missing or renamed upstream.

Example:
  physaudit sectors
  physaudit sectors --remote`,
	RunE: runSectors,
}

func init() {
	rootCmd.AddCommand(sectorsCmd)

	sectorsCmd.Flags().BoolVar(&sectorsRemote, "remote", false, "cross-check against the live scopes table")
	sectorsCmd.Flags().StringVar(&scopesURL, "scopes-url", extract.DefaultScopesURL, "scopes table URL")
}

func runSectors(cmd *cobra.Command, args []string) error {
	for _, s := range model.Sectors() {
		fmt.Printf("  %s  %s\n", s.ID, s.Name)
	}

	if !sectorsRemote {
		return nil
	}

	cfg := loadConfig()
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	scopes, err := extract.FetchScopes(ctx, scopesURL, cfg.HTTP.UserAgent, cfg.HTTP.Timeout)
	if err != nil {
		return fmt.Errorf("cross-check: %w", err)
	}

	fmt.Printf("\nRemote scopes table (%d rows):\n", len(scopes))
	remote := make(map[string]string, len(scopes))
	for _, s := range scopes {
		remote[s.ID] = s.Name
	}

	var drift int
	for _, s := range model.Sectors() {
		name, ok := remote[s.ID]
		switch {
		case !ok:
			drift++
			fmt.Printf("  ! %s missing from remote table\n", s.ID)
		case name != s.Name:
			drift++
			fmt.Printf("  ~ %s remote name differs: %q\n", s.ID, name)
		}
	}
	if drift == 0 {
		fmt.Println("  Registry matches the remote table.")
	}

	return nil
}
