package aba

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dialectic-ai/argcore/dung"
)

// mutualAttack builds two assumptions whose contraries each derive from the
// other assumption.
func mutualAttack(t *testing.T) *Framework {
	t.Helper()
	f := NewFramework()
	f.AddAssumption("a")
	f.AddAssumption("b")
	require.NoError(t, f.AddContrary("a", "not_a"))
	require.NoError(t, f.AddContrary("b", "not_b"))
	require.NoError(t, f.AddRule("not_a", "b"))
	require.NoError(t, f.AddRule("not_b", "a"))
	return f
}

func TestToAF(t *testing.T) {
	f := mutualAttack(t)

	af, derivations, err := f.ToAF()
	require.NoError(t, err)

	ids := make([]string, len(derivations))
	for i, d := range derivations {
		ids[i] = d.ID()
	}
	assert.Equal(t, []string{"a|a", "b|b", "not_a|b", "not_b|a"}, ids)

	assert.True(t, af.Attacks("not_a|b", "a|a"))
	assert.True(t, af.Attacks("not_b|a", "b|b"))
	assert.True(t, af.Attacks("not_a|b", "not_b|a"))
	assert.True(t, af.Attacks("not_b|a", "not_a|b"))
	assert.False(t, af.Attacks("a|a", "not_a|b"))
}

func TestToAFSkipsUnderivableContrary(t *testing.T) {
	f := NewFramework()
	f.AddAssumption("a")
	require.NoError(t, f.AddContrary("a", "not_a"))
	require.NoError(t, f.AddRule("b", "a"))

	af, derivations, err := f.ToAF()
	require.NoError(t, err)

	// not_a has no rule, so it contributes no argument and no attack
	assert.Len(t, derivations, 2)
	assert.Equal(t, []string{"a|a", "b|a"}, af.Arguments())
	assert.Empty(t, af.AttackersOf("a|a"))
}

func TestExtensionsAssumptionProjection(t *testing.T) {
	f := mutualAttack(t)

	res, err := f.Extensions(dung.Preferred)
	require.NoError(t, err)

	assert.Equal(t, dung.Preferred, res.Semantics)
	assert.Equal(t, [][]string{
		{"a|a", "not_b|a"},
		{"b|b", "not_a|b"},
	}, res.Extensions)
	assert.Equal(t, [][]string{{"a"}, {"b"}}, res.AssumptionExtensions)
}

func TestExtensionsGrounded(t *testing.T) {
	f := mutualAttack(t)

	res, err := f.Extensions(dung.Grounded)
	require.NoError(t, err)

	// the mutual attack leaves everything undecided
	require.Len(t, res.Extensions, 1)
	assert.Empty(t, res.Extensions[0])
	assert.Empty(t, res.AssumptionExtensions[0])
}

func TestExtensionsValidatesFramework(t *testing.T) {
	f := NewFramework()
	f.AddAssumption("a")
	require.NoError(t, f.AddRule("b", "a", "ghost"))

	_, err := f.Extensions(dung.Grounded)
	assert.ErrorIs(t, err, ErrUndefinedAtom)
}
