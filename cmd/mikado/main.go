// Command mikado drives the locus-resolution core end to end: pick reads
// a GFF3 annotation and a configuration file and emits the final loci;
// configure emits a starter configuration document to fill in and tune.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mikado",
		Short: "Resolve overlapping transcripts into loci",
		Long: "mikado groups candidate transcript predictions into superloci, " +
			"picks one representative transcript per locus by a configurable " +
			"scoring function, and reports the admitted alternative splicing.",
	}
	cmd.AddCommand(newPickCmd())
	cmd.AddCommand(newConfigureCmd())
	return cmd
}
