package template

import (
	"testing"

	"github.com/kmadrilejo/atelier/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func simpleTemplate(prefix string) *ProjectTemplate {
	return &ProjectTemplate{
		CodePrefix: prefix,
		Tasks: []TaskBlueprint{
			{Name: "Kickoff", DurationDays: 2},
			{Name: "Delivery", DurationDays: 5, DependsOn: []string{"Kickoff"}},
		},
	}
}

func TestLibrary_RegisterAndResolve(t *testing.T) {
	lib := NewLibrary(nil)

	require.NoError(t, lib.Register("basic", simpleTemplate("BAS"), false))

	tpl, err := lib.Resolve("basic")
	require.NoError(t, err)
	assert.Equal(t, "BAS", tpl.CodePrefix)
	assert.True(t, lib.Exists("basic"))
}

func TestLibrary_RegisterConflict(t *testing.T) {
	lib := NewLibrary(nil)
	require.NoError(t, lib.Register("basic", simpleTemplate("BAS"), false))

	err := lib.Register("basic", simpleTemplate("NEW"), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConflict)

	// The original registration is untouched.
	tpl, err := lib.Resolve("basic")
	require.NoError(t, err)
	assert.Equal(t, "BAS", tpl.CodePrefix)
}

func TestLibrary_RegisterOverwrite(t *testing.T) {
	lib := NewLibrary(nil)
	require.NoError(t, lib.Register("basic", simpleTemplate("BAS"), false))
	require.NoError(t, lib.Register("basic", simpleTemplate("NEW"), true))

	tpl, err := lib.Resolve("basic")
	require.NoError(t, err)
	assert.Equal(t, "NEW", tpl.CodePrefix)
}

func TestLibrary_RegisterInvalidStoresNothing(t *testing.T) {
	lib := NewLibrary(nil)

	err := lib.Register("broken", &ProjectTemplate{CodePrefix: "BRK"}, false)
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.False(t, lib.Exists("broken"))
}

func TestLibrary_ResolveUnknown(t *testing.T) {
	lib := NewLibrary(nil)

	_, err := lib.Resolve("missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestLibrary_UnregisterUnknownIsNoop(t *testing.T) {
	lib := NewLibrary(nil)
	lib.Unregister("missing")
	assert.Empty(t, lib.IDs())
}

func TestLibrary_IDsSorted(t *testing.T) {
	lib := NewLibrary(nil)
	require.NoError(t, lib.Register("zeta", simpleTemplate("ZET"), false))
	require.NoError(t, lib.Register("alpha", simpleTemplate("ALP"), false))

	assert.Equal(t, []string{"alpha", "zeta"}, lib.IDs())
}

func TestBuiltinTemplates_AllValid(t *testing.T) {
	// NewLibrary panics on an invalid seed, so constructing it is the check.
	lib := NewLibrary(BuiltinTemplates())

	assert.ElementsMatch(t, []string{"website", "branding", "consulting"}, lib.IDs())

	prefix, err := lib.CodePrefix("website")
	require.NoError(t, err)
	assert.Equal(t, "WEB", prefix)
}
