// Package config loads and validates the hierarchical run configuration
// (§3 "Configuration", §6 "Configuration file") and compiles it into the
// runtime objects the locus package consumes: a locus.RunOptions, a
// compiled scoring.Requirements, and a scoring.Scorer.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Lvmingjie/mikado/errs"
	"github.com/Lvmingjie/mikado/evidence"
	"github.com/Lvmingjie/mikado/locus"
	"github.com/Lvmingjie/mikado/scoring"
	"github.com/Lvmingjie/mikado/transcript"
)

// ChimeraSplit mirrors the chimera_split.* keys.
type ChimeraSplit struct {
	Execute           bool    `yaml:"execute"`
	BlastCheck        bool    `yaml:"blast_check"`
	MinimalHSPOverlap float64 `yaml:"minimal_hsp_overlap"`
	MaximalHSPEvalue  float64 `yaml:"maximal_hsp_evalue"`
}

// ORFLoading mirrors the orf_loading.* keys.
type ORFLoading struct {
	MinimalSecondaryORFLength int  `yaml:"minimal_secondary_orf_length"`
	TrustStrand               bool `yaml:"trust_strand"`
}

// RunOptions mirrors the run_options.* keys.
type RunOptions struct {
	Purge                 bool    `yaml:"purge"`
	SublociFromCDSOnly    bool    `yaml:"subloci_from_cds_only"`
	Stranded              bool    `yaml:"stranded"`
	MonoOverlapFraction   float64 `yaml:"mono_overlap_fraction"`
}

// AlternativeSplicing mirrors the alternative_splicing.* keys. Besides the
// spec's explicit "report" flag, it carries the parameters §4.9's
// admission rules require operationally: the isoform cap, the similarity
// ceiling, the class-code allow-list, and whether the AS predicate is
// restricted to CDS introns.
type AlternativeSplicing struct {
	Report          bool     `yaml:"report"`
	MaxIsoforms     int      `yaml:"max_isoforms"`
	MaxSimilarity   float64  `yaml:"max_similarity"`
	ValidClassCodes []string `yaml:"valid_class_codes"`
	CDSOnly         bool     `yaml:"cds_only"`
}

// Parameter mirrors one entry of requirements.parameters: a named metric
// predicate.
type Parameter struct {
	Name     string    `yaml:"name"`
	Operator string    `yaml:"operator"`
	Value    float64   `yaml:"value"`
	Set      []float64 `yaml:"set"`
	Range    []float64 `yaml:"range"`
}

// Requirements mirrors the requirements.* keys.
type Requirements struct {
	Expression string               `yaml:"expression"`
	Parameters map[string]Parameter `yaml:"parameters"`
}

// Filter mirrors a scoring.parameters.<metric>.filter block.
type Filter struct {
	Name     string  `yaml:"name"`
	Operator string  `yaml:"operator"`
	Value    float64 `yaml:"value"`
}

// ScoringMetric mirrors one entry of scoring.parameters: a metric's
// rescaling rule, weight, and optional filter.
type ScoringMetric struct {
	Rescaling  string  `yaml:"rescaling"`
	Value      float64 `yaml:"value"` // target value, for rescaling: target
	Multiplier float64 `yaml:"multiplier"`
	Filter     *Filter `yaml:"filter"`
}

// Scoring mirrors the scoring.* keys.
type Scoring struct {
	Parameters map[string]ScoringMetric `yaml:"parameters"`
}

// Config is the root of the configuration document.
type Config struct {
	ChimeraSplit        ChimeraSplit        `yaml:"chimera_split"`
	ORFLoading          ORFLoading          `yaml:"orf_loading"`
	RunOptions          RunOptions          `yaml:"run_options"`
	Requirements        Requirements        `yaml:"requirements"`
	Scoring             Scoring             `yaml:"scoring"`
	AlternativeSplicing AlternativeSplicing `yaml:"alternative_splicing"`
	Source              string              `yaml:"source"`
}

// Load reads and strictly decodes the YAML configuration at path. Unknown
// keys are rejected (§6 "Unknown keys are rejected").
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, errs.Wrap(errs.IOError, err, "opening configuration file "+path)
	}
	defer f.Close()

	dec := yaml.NewDecoder(f)
	dec.KnownFields(true)
	var cfg Config
	if err := dec.Decode(&cfg); err != nil {
		return nil, errs.Wrap(errs.NoJSONConfig, err, "parsing configuration file "+path)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// requiredScoringKeys have no sensible default and must be present for a
// scoring pass to be well defined.
var requiredScoringKeys = []string{"cdna_length"}

// Validate enumerates the required keys with no default (§6).
func (c *Config) Validate() error {
	if len(c.Scoring.Parameters) == 0 {
		return errs.New(errs.NoJSONConfig, "scoring.parameters is required and must name at least one metric")
	}
	for _, required := range requiredScoringKeys {
		if _, ok := c.Scoring.Parameters[required]; !ok {
			return errs.New(errs.NoJSONConfig, fmt.Sprintf("scoring.parameters.%s is required", required))
		}
	}
	for name, m := range c.Scoring.Parameters {
		switch m.Rescaling {
		case "max", "min", "target":
		default:
			return errs.New(errs.UnrecognizedRescaler, fmt.Sprintf("scoring.parameters.%s.rescaling: unrecognized %q", name, m.Rescaling))
		}
	}
	return nil
}

// CompileScorer builds a scoring.Scorer from scoring.parameters.
func (c *Config) CompileScorer() (*scoring.Scorer, error) {
	var metrics []scoring.MetricConfig
	for name, m := range c.Scoring.Parameters {
		mc := scoring.MetricConfig{
			Metric:     name,
			Rescaling:  scoring.Rescaling(m.Rescaling),
			Target:     m.Value,
			Multiplier: m.Multiplier,
		}
		if m.Filter != nil {
			mc.Filter = &scoring.Parameter{
				Name:     m.Filter.Name,
				Operator: scoring.Operator(m.Filter.Operator),
				Value:    m.Filter.Value,
			}
		}
		metrics = append(metrics, mc)
	}
	return scoring.NewScorer(metrics)
}

// CompileRequirements builds a scoring.Requirements from
// requirements.expression/parameters. Returns (nil, nil) when no
// expression is configured: the prefilter is then a no-op.
func (c *Config) CompileRequirements() (*scoring.Requirements, error) {
	if c.Requirements.Expression == "" {
		return nil, nil
	}
	params := make(map[string]scoring.Parameter, len(c.Requirements.Parameters))
	for key, p := range c.Requirements.Parameters {
		sp := scoring.Parameter{
			Name:     p.Name,
			Operator: scoring.Operator(p.Operator),
			Value:    p.Value,
			Set:      p.Set,
		}
		if len(p.Range) == 2 {
			sp.Range = [2]float64{p.Range[0], p.Range[1]}
		}
		params[key] = sp
	}
	return scoring.CompileRequirements(c.Requirements.Expression, params)
}

// CompileRunOptions assembles a locus.RunOptions from every compiled
// piece plus the caller-supplied evidence store.
func (c *Config) CompileRunOptions(ev evidence.Store) (locus.RunOptions, error) {
	scorer, err := c.CompileScorer()
	if err != nil {
		return locus.RunOptions{}, err
	}
	requirements, err := c.CompileRequirements()
	if err != nil {
		return locus.RunOptions{}, err
	}

	classCodes := make(map[string]bool, len(c.AlternativeSplicing.ValidClassCodes))
	for _, code := range c.AlternativeSplicing.ValidClassCodes {
		classCodes[code] = true
	}

	return locus.RunOptions{
		Stranded:            c.RunOptions.Stranded,
		CDSOnly:             c.RunOptions.SublociFromCDSOnly,
		Purge:               c.RunOptions.Purge,
		MonoOverlapFraction: c.RunOptions.MonoOverlapFraction,

		MinimalSecondaryORFLength: c.ORFLoading.MinimalSecondaryORFLength,
		TrustStrand:               c.ORFLoading.TrustStrand,
		Chimera: transcript.ChimeraConfig{
			Execute:           c.ChimeraSplit.Execute,
			BlastCheck:        c.ChimeraSplit.BlastCheck,
			MinimalHSPOverlap: c.ChimeraSplit.MinimalHSPOverlap,
			MaximalHSPEvalue:  c.ChimeraSplit.MaximalHSPEvalue,
		},

		MaxIsoforms:     c.AlternativeSplicing.MaxIsoforms,
		ASMaxSimilarity: c.AlternativeSplicing.MaxSimilarity,
		ASClassCodes:    classCodes,
		ASCDSOnly:       c.AlternativeSplicing.CDSOnly,
		ASReport:        c.AlternativeSplicing.Report,

		Requirements: requirements,
		Scorer:       scorer,
		Evidence:     ev,
	}, nil
}
