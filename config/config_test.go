package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Lvmingjie/mikado/evidence"
)

const validYAML = `
chimera_split:
  execute: true
  blast_check: false
  minimal_hsp_overlap: 0.9
  maximal_hsp_evalue: 1e-6
orf_loading:
  minimal_secondary_orf_length: 50
  trust_strand: false
run_options:
  purge: true
  subloci_from_cds_only: false
  stranded: true
  mono_overlap_fraction: 0.5
requirements:
  expression: "long"
  parameters:
    long:
      name: cdna_length
      operator: gt
      value: 200
scoring:
  parameters:
    cdna_length:
      rescaling: max
      multiplier: 1.0
alternative_splicing:
  report: true
  max_isoforms: 3
  max_similarity: 0.9
  valid_class_codes: ["=", "j"]
  cds_only: false
source: mikado
`

func writeTempConfig(t *testing.T, content string) string {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	path := writeTempConfig(t, validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.True(t, cfg.RunOptions.Stranded)
	assert.Equal(t, "mikado", cfg.Source)
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := writeTempConfig(t, validYAML+"\nbogus_top_level_key: true\n")
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadRequiresCDNALengthScoringKey(t *testing.T) {
	without := `
scoring:
  parameters:
    exon_num:
      rescaling: max
      multiplier: 1.0
`
	path := writeTempConfig(t, without)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestCompileRunOptionsWiresAllSections(t *testing.T) {
	path := writeTempConfig(t, validYAML)
	cfg, err := Load(path)
	require.NoError(t, err)

	store := evidence.NewMemStore()
	store.Freeze()
	opts, err := cfg.CompileRunOptions(store)
	require.NoError(t, err)

	assert.True(t, opts.Purge)
	assert.Equal(t, 0.5, opts.MonoOverlapFraction)
	assert.Equal(t, 50, opts.MinimalSecondaryORFLength)
	assert.True(t, opts.Chimera.Execute)
	assert.Equal(t, 3, opts.MaxIsoforms)
	assert.True(t, opts.ASClassCodes["="])
	assert.True(t, opts.ASClassCodes["j"])
	require.NotNil(t, opts.Requirements)
	require.NotNil(t, opts.Scorer)
	assert.Equal(t, store, opts.Evidence)
}
