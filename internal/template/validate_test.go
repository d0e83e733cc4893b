package template

import (
	"testing"

	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_EmptyTemplate(t *testing.T) {
	err := Validate(&ProjectTemplate{CodePrefix: "EMP"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidate_DuplicateTaskNames(t *testing.T) {
	tpl := &ProjectTemplate{
		CodePrefix: "DUP",
		Tasks: []TaskBlueprint{
			{Name: "Design", DurationDays: 3},
			{Name: "Design", DurationDays: 5},
		},
	}

	err := Validate(tpl)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Design")
}

func TestValidate_NonPositiveDuration(t *testing.T) {
	tpl := &ProjectTemplate{
		CodePrefix: "NEG",
		Tasks: []TaskBlueprint{
			{Name: "Kickoff", DurationDays: 0},
		},
	}

	err := Validate(tpl)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestValidate_UnknownDependency(t *testing.T) {
	tpl := &ProjectTemplate{
		CodePrefix: "UNK",
		Tasks: []TaskBlueprint{
			{Name: "Build", DurationDays: 5, DependsOn: []string{"Design"}},
		},
	}

	err := Validate(tpl)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Design")
}

func TestValidate_DependencyCycle(t *testing.T) {
	tpl := &ProjectTemplate{
		CodePrefix: "CYC",
		Tasks: []TaskBlueprint{
			{Name: "A", DurationDays: 1, DependsOn: []string{"C"}},
			{Name: "B", DurationDays: 1, DependsOn: []string{"A"}},
			{Name: "C", DurationDays: 1, DependsOn: []string{"B"}},
		},
	}

	err := Validate(tpl)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "cycle")
}

func TestValidate_ValidDiamond(t *testing.T) {
	tpl := &ProjectTemplate{
		CodePrefix: "DIA",
		Tasks: []TaskBlueprint{
			{Name: "Start", DurationDays: 1},
			{Name: "Left", DurationDays: 2, DependsOn: []string{"Start"}},
			{Name: "Right", DurationDays: 3, DependsOn: []string{"Start"}},
			{Name: "End", DurationDays: 1, DependsOn: []string{"Left", "Right"}},
		},
	}

	assert.NoError(t, Validate(tpl))
}

func TestTopoOrder_DeclarationOrderTieBreak(t *testing.T) {
	tasks := []TaskBlueprint{
		{Name: "B", DurationDays: 1},
		{Name: "A", DurationDays: 1},
		{Name: "C", DurationDays: 1, DependsOn: []string{"B", "A"}},
	}

	order, err := topoOrder(tasks)
	require.NoError(t, err)
	// Both B and A are free; declaration order wins.
	assert.Equal(t, []int{0, 1, 2}, order)
}
