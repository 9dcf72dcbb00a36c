package parse

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/endorses/cdcat/internal/pkg/cdc"
	"github.com/endorses/cdcat/internal/pkg/cmdutil"
	"github.com/endorses/cdcat/internal/pkg/towerdb"
	"github.com/spf13/cobra"
)

var ParseCmd = &cobra.Command{
	Use:   "parse <dump-file>",
	Short: "Parse a CDC dump into correlated call records",
	Long: `Parse a CDC dump file: segment it into records, decode the embedded
signaling and location data, correlate everything into call records and
print the result as JSON. With a tower table attached, cell identifiers
are resolved to tower sites.`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

var (
	towerFile      string
	outputFile     string
	fallbackBucket string
	compact        bool
)

func init() {
	ParseCmd.Flags().StringVarP(&towerFile, "towers", "t", "", "tower table to resolve cell ids against (csv or xlsx)")
	ParseCmd.Flags().StringVarP(&outputFile, "output", "o", "", "write JSON to file instead of stdout")
	ParseCmd.Flags().StringVarP(&fallbackBucket, "fallback-bucket", "b", "", "bucket name for records without a call id")
	ParseCmd.Flags().BoolVar(&compact, "compact", false, "emit compact JSON instead of indented")
}

// Report is the JSON document the parse command emits.
type Report struct {
	Messages []*cdc.ParsedMessage      `json:"messages"`
	Calls    []*cdc.CallRecord         `json:"calls"`
	Towers   map[string]*towerdb.Tower `json:"towers,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	report, err := buildReport(args[0],
		cmdutil.GetStringConfig("cdc.tower_table", towerFile),
		cmdutil.GetStringConfig("cdc.fallback_bucket", fallbackBucket))
	if err != nil {
		return err
	}
	return writeReport(report, outputFile, cmdutil.GetBoolConfig("cdc.compact_output", compact))
}

// buildReport runs one parse session over the dump at dumpPath, loading a
// tower table first when towerPath is non-empty.
func buildReport(dumpPath, towerPath, bucket string) (*Report, error) {
	data, err := os.ReadFile(dumpPath)
	if err != nil {
		return nil, fmt.Errorf("read dump: %w", err)
	}

	var opts []cdc.Option
	if towerPath != "" {
		table, err := towerdb.LoadFile(towerPath)
		if err != nil {
			return nil, err
		}
		opts = append(opts, cdc.WithTowerLookup(table))
	}
	if bucket != "" {
		opts = append(opts, cdc.WithFallbackBucket(bucket))
	}

	session := cdc.NewSession(opts...)
	result := session.Parse(string(data))
	return &Report{
		Messages: result.Messages,
		Calls:    result.Calls,
		Towers:   session.ResolveTowers(result),
	}, nil
}

func writeReport(report *Report, path string, compact bool) error {
	var (
		data []byte
		err  error
	)
	if compact {
		data, err = json.Marshal(report)
	} else {
		data, err = json.MarshalIndent(report, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	data = append(data, '\n')

	if path == "" {
		_, err = os.Stdout.Write(data)
		return err
	}
	return os.WriteFile(path, data, 0644)
}
