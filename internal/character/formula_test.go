package character

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
)

func TestEvalFormula(t *testing.T) {
	vars := map[string]int{"level": 5, "int": 3, "wis": -1}

	tests := []struct {
		formula  string
		expected int
	}{
		{"3", 3},
		{"level", 5},
		{"level + int", 8},
		{"max(1, level + int)", 8},
		{"max(1, wis)", 1},
		{"max(1, level + wis)", 4},
		{"(level) + (int)", 8},
		{"max(max(1, 2), 3)", 3},
	}

	for _, tt := range tests {
		got, err := EvalFormula(tt.formula, vars)
		require.NoError(t, err, "formula %q", tt.formula)
		assert.Equal(t, tt.expected, got, "formula %q", tt.formula)
	}
}

func TestEvalFormulaErrors(t *testing.T) {
	vars := map[string]int{"level": 2}

	for _, formula := range []string{
		"",
		"level +",
		"cha",
		"max(1)",
		"max(1, 2",
		"level * 2",
		"1; drop",
	} {
		_, err := EvalFormula(formula, vars)
		require.Error(t, err, "formula %q", formula)
		assert.True(t, dnderr.IsValidation(err), "formula %q", formula)
	}
}

func TestEvalFormulaCaseInsensitiveVars(t *testing.T) {
	got, err := EvalFormula("Level + INT", map[string]int{"level": 4, "int": 2})
	require.NoError(t, err)
	assert.Equal(t, 6, got)
}
