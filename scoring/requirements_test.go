package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompileRequirementsEvaluatesAndOr(t *testing.T) {
	params := map[string]Parameter{
		"long":  {Name: "cdna_length", Operator: OpGT, Value: 200},
		"coded": {Name: "combined_cds_length", Operator: OpGT, Value: 0},
	}
	reqs, err := CompileRequirements("long and coded", params)
	require.NoError(t, err)

	assert.True(t, reqs.Evaluate(map[string]float64{"cdna_length": 300, "combined_cds_length": 90}))
	assert.False(t, reqs.Evaluate(map[string]float64{"cdna_length": 100, "combined_cds_length": 90}))
	assert.False(t, reqs.Evaluate(map[string]float64{"cdna_length": 300, "combined_cds_length": 0}))
}

func TestCompileRequirementsNotAndParens(t *testing.T) {
	params := map[string]Parameter{
		"short": {Name: "cdna_length", Operator: OpLT, Value: 100},
		"coded": {Name: "combined_cds_length", Operator: OpGT, Value: 0},
	}
	reqs, err := CompileRequirements("not (short and coded)", params)
	require.NoError(t, err)

	assert.True(t, reqs.Evaluate(map[string]float64{"cdna_length": 300, "combined_cds_length": 90}))
	assert.False(t, reqs.Evaluate(map[string]float64{"cdna_length": 50, "combined_cds_length": 90}))
}

func TestCompileRequirementsRejectsUnknownParameter(t *testing.T) {
	_, err := CompileRequirements("missing", map[string]Parameter{})
	assert.Error(t, err)
}

func TestCompileRequirementsRejectsUnbalancedParens(t *testing.T) {
	params := map[string]Parameter{"a": {Name: "cdna_length", Operator: OpGT, Value: 1}}
	_, err := CompileRequirements("(a", params)
	assert.Error(t, err)
}

func TestParameterEvaluateOperators(t *testing.T) {
	assert.True(t, Parameter{Operator: OpIn, Set: []float64{1, 2, 3}}.Evaluate(2))
	assert.False(t, Parameter{Operator: OpIn, Set: []float64{1, 2, 3}}.Evaluate(4))
	assert.True(t, Parameter{Operator: OpWithin, Range: [2]float64{0, 1}}.Evaluate(0.5))
	assert.False(t, Parameter{Operator: OpWithin, Range: [2]float64{0, 1}}.Evaluate(1.5))
	assert.True(t, Parameter{Operator: OpEQ, Value: 4}.Evaluate(4))
}
