package main

import (
	"encoding/json"
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/degreecalc/degreecalc/pkg/classification"
)

func newZonesCmd() *cobra.Command {
	var outputFmt string

	cmd := &cobra.Command{
		Use:   "zones",
		Short: "Print the mark-to-GPA zone table",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			zones := classification.Zones()
			out := cmd.OutOrStdout()

			switch outputFmt {
			case "json":
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(zones)
			case "", "text":
				tw := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "MARKS\tGPA")
				for _, z := range zones {
					fmt.Fprintf(tw, "%d-%d\t%.2f\n", z.Low, z.High, z.Points)
				}
				return tw.Flush()
			default:
				return fmt.Errorf("unknown output format %q (want text or json)", outputFmt)
			}
		},
	}

	cmd.Flags().StringVarP(&outputFmt, "output", "o", "text", "Output format: text or json")
	return cmd
}
