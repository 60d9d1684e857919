package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

const defaultConfigTemplate = `chimera_split:
  execute: true
  blast_check: true
  minimal_hsp_overlap: 0.9
  maximal_hsp_evalue: 1e-6
orf_loading:
  minimal_secondary_orf_length: 100
  trust_strand: false
run_options:
  purge: false
  subloci_from_cds_only: false
  stranded: false
  mono_overlap_fraction: 0.5
requirements:
  expression: "cdna_length"
  parameters:
    cdna_length:
      name: cdna_length
      operator: gt
      value: 200
scoring:
  parameters:
    cdna_length:
      rescaling: max
      multiplier: 1.0
    combined_cds_length:
      rescaling: max
      multiplier: 2.0
    exon_num:
      rescaling: max
      multiplier: 1.0
alternative_splicing:
  report: true
  max_isoforms: 3
  max_similarity: 0.9
  valid_class_codes: ["=", "j", "C", "c"]
  cds_only: false
source: mikado
`

func newConfigureCmd() *cobra.Command {
	var outputPath string
	cmd := &cobra.Command{
		Use:   "configure",
		Short: "Emit a starter configuration document",
		Long:  "Writes a default scoring/run configuration to stdout or a file, for the caller to tune and pass to pick --config.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConfigure(outputPath)
		},
	}
	cmd.Flags().StringVar(&outputPath, "output", "", "write to this path instead of stdout")
	return cmd
}

func runConfigure(outputPath string) error {
	// Parse the template with yaml.v3 before emitting it, so a YAML syntax
	// error in the literal is reported instead of written out. This checks
	// syntax only: the document is not decoded into config.Config and not
	// passed through Validate.
	var doc map[string]interface{}
	if err := yaml.Unmarshal([]byte(defaultConfigTemplate), &doc); err != nil {
		return fmt.Errorf("validating default configuration template: %w", err)
	}

	if outputPath == "" {
		_, err := fmt.Print(defaultConfigTemplate)
		return err
	}
	return os.WriteFile(outputPath, []byte(defaultConfigTemplate), 0o644)
}
