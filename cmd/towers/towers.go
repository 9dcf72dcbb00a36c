package towers

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/endorses/cdcat/internal/pkg/cellid"
	"github.com/endorses/cdcat/internal/pkg/towerdb"
	"github.com/spf13/cobra"
)

// TowersCmd is the base command for tower table operations.
var TowersCmd = &cobra.Command{
	Use:   "towers",
	Short: "Inspect tower lookup tables",
	Long: `Inspect tower lookup tables without running a full parse.

Subcommands:
  check   - Load a table and report how many entries it holds
  lookup  - Resolve a single cell identifier against a table

Examples:
  cdcat towers check sites.xlsx
  cdcat towers lookup sites.csv 311480550414df40c`,
}

var checkCmd = &cobra.Command{
	Use:   "check <table-file>",
	Short: "Load a tower table and report its size",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := towerdb.LoadFile(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("%s: %d towers\n", args[0], table.Len())
		return nil
	},
}

var lookupCmd = &cobra.Command{
	Use:   "lookup <table-file> <cell-id>",
	Short: "Resolve one cell identifier against a tower table",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		table, err := towerdb.LoadFile(args[0])
		if err != nil {
			return err
		}

		id := args[1]
		composite := ""
		if ident := cellid.Decode(id); ident != nil {
			composite = ident.CompositeKey()
		}
		fullKey := cellid.FullKey(id)
		shortKey, _ := cellid.ShortKey(id)

		tower, ok := table.Lookup(composite, fullKey, shortKey)
		if !ok {
			return fmt.Errorf("no tower for %q", id)
		}
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(tower)
	},
}

func init() {
	TowersCmd.AddCommand(checkCmd)
	TowersCmd.AddCommand(lookupCmd)
}
