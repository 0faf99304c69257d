package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"
	"time"

	"github.com/spf13/cobra"

	"github.com/dexdogs/physaudit/internal/audit"
	"github.com/dexdogs/physaudit/internal/oracle"
)

var (
	syncSector  string
	syncNoCache bool
	syncTimeout time.Duration
)

// syncCmd represents the sync command
var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Fetch and display a sector's reference constants",
	Long: `Sync fetches the sector's published physics standard from the oracle
and prints the constants. Use it to confirm the oracle is reachable and
the document is well-formed before running audits.

Example:
  physaudit sync --sector 13
  physaudit sync --sector 13 --no-cache`,
	RunE: runSync,
}

func init() {
	rootCmd.AddCommand(syncCmd)

	syncCmd.Flags().StringVar(&syncSector, "sector", "", "sectoral scope code (01-15)")
	_ = syncCmd.MarkFlagRequired("sector")

	syncCmd.Flags().BoolVar(&syncNoCache, "no-cache", false, "bypass the cache (force fresh fetch)")
	syncCmd.Flags().DurationVar(&syncTimeout, "timeout", 30*time.Second, "fetch timeout")
}

func runSync(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithTimeout(context.Background(), syncTimeout)
	defer cancel()

	cfg := loadConfig()
	cfg.HTTP.Timeout = syncTimeout
	if syncNoCache {
		cfg.Cache.Enabled = false
	}

	auditor, err := audit.NewAuditor(cfg)
	if err != nil {
		return err
	}

	record, err := auditor.Fetcher().Fetch(ctx, syncSector)
	if err != nil {
		return describeFetchError(err)
	}

	fmt.Printf("Reference for sector %s\n", record.SectorID)
	fmt.Printf("  Source:  %s\n", record.SourceURL)
	fmt.Printf("  Fetched: %s\n", record.FetchedAt.Format(time.RFC3339))
	if record.FetchMeta.LastModified != "" {
		fmt.Printf("  Last-Modified: %s\n", record.FetchMeta.LastModified)
	}
	if record.DeprecatedSchema {
		fmt.Fprintf(os.Stderr, "Warning: document uses the deprecated physics_constraints schema\n")
	}
	fmt.Println()

	names := make([]string, 0, len(record.Constants))
	for name := range record.Constants {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %g\n", name, record.Constants[name])
	}

	return nil
}

// describeFetchError keeps the three fetch failure classes distinguishable
// in user-facing output.
func describeFetchError(err error) error {
	var notFound *oracle.NotFoundError
	var network *oracle.NetworkError
	var parse *oracle.ParseError

	switch {
	case errors.As(err, &notFound):
		return fmt.Errorf("%w\nCheck: 1. Owner 2. Repo 3. Branch 4. Filename case sensitivity", err)
	case errors.As(err, &network):
		return fmt.Errorf("oracle unreachable: %w", err)
	case errors.As(err, &parse):
		return fmt.Errorf("oracle document malformed: %w", err)
	default:
		return err
	}
}
