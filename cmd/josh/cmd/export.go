package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/joshsim/joshc/internal/joshexport"
)

var exportViewCmd = &cobra.Command{
	Use:   "export [file]",
	Short: "Decode a newline-delimited export file and print it as a table",
	Long: `Reads a file of JSON-encoded rows (one per line, as produced by
joshexport.EncodeRow) and prints them as a tab-separated table with
columns in natural order, step and replicate first.`,
	Args: cobra.ExactArgs(1),
	RunE: runExportView,
}

func init() {
	rootCmd.AddCommand(exportViewCmd)
}

func runExportView(_ *cobra.Command, args []string) error {
	f, err := os.Open(args[0])
	if err != nil {
		return fmt.Errorf("opening %s: %w", args[0], err)
	}
	defer f.Close()

	var rows []joshexport.Row
	var steps, replicates []int64
	columns := map[string]bool{}

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		row, step, replicate, err := joshexport.DecodeRow(line)
		if err != nil {
			return fmt.Errorf("decoding row: %w", err)
		}
		rows = append(rows, row)
		steps = append(steps, step)
		replicates = append(replicates, replicate)
		for name := range row {
			columns[name] = true
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("reading %s: %w", args[0], err)
	}

	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sorted := joshexport.SortedColumns(names)

	header := append([]string{"step", "replicate"}, sorted...)
	fmt.Println(strings.Join(header, "\t"))
	for i, row := range rows {
		fields := make([]string, 0, len(header))
		fields = append(fields, fmt.Sprint(steps[i]), fmt.Sprint(replicates[i]))
		for _, name := range sorted {
			fields = append(fields, row[name])
		}
		fmt.Println(strings.Join(fields, "\t"))
	}
	return nil
}
