package graph

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuilderAutoIDs(t *testing.T) {
	b := NewBuilder()

	uid := b.AddUnit(NewUnit("claim without id"))
	assert.NotEmpty(t, uid)

	wid := b.AddWarrant(NewUnit("warrant without id"))
	assert.NotEmpty(t, wid)
	assert.NotEqual(t, uid, wid)

	other := b.AddUnit(NewUnit("second claim"))
	e0 := b.AddSupport(uid, other)
	e1 := b.AddAttack(other, uid)
	assert.Equal(t, "e0", e0)
	assert.Equal(t, "e1", e1)
}

func TestBuilderKeepsExplicitIDs(t *testing.T) {
	b := NewBuilder()
	assert.Equal(t, "a", b.AddUnit(NewUnit("a").WithID("a")))
	assert.Equal(t, "b", b.AddUnit(NewUnit("b").WithID("b")))
	assert.Equal(t, "edge", b.AddRelation(NewRelation("a", "b", KindSupport).WithID("edge")))
}

func TestFreezeValidation(t *testing.T) {
	tests := []struct {
		name    string
		build   func(b *Builder)
		wantErr error
	}{
		{
			name: "dangling relation source",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.AddSupport("ghost", "a")
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "dangling relation destination",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.AddAttack("a", "ghost")
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "dangling warrant reference",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.AddUnit(NewUnit("b").WithID("b"))
				b.AddRelation(NewRelation("a", "b", KindSupport).WithWarrants(GateOr, "ghost"))
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "duplicate unit id",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("first").WithID("a"))
				b.AddUnit(NewUnit("second").WithID("a"))
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "warrant id collides with unit id",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("claim").WithID("a"))
				b.AddWarrant(NewUnit("warrant").WithID("a"))
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "duplicate relation id",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.AddUnit(NewUnit("b").WithID("b"))
				b.AddRelation(NewRelation("a", "b", KindSupport).WithID("e"))
				b.AddRelation(NewRelation("b", "a", KindAttack).WithID("e"))
			},
			wantErr: ErrDuplicateID,
		},
		{
			name: "axiom without score",
			build: func(b *Builder) {
				u := NewUnit("pinned").WithID("a")
				u.IsAxiom = true
				b.AddUnit(u)
			},
			wantErr: ErrAxiomScore,
		},
		{
			name: "invalid unit type",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a").WithType("opinion"))
			},
			wantErr: ErrInvalidKind,
		},
		{
			name: "invalid relation kind",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.AddUnit(NewUnit("b").WithID("b"))
				b.AddRelation(NewRelation("a", "b", "contradicts"))
			},
			wantErr: ErrInvalidKind,
		},
		{
			name: "invalid gate mode",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.AddUnit(NewUnit("b").WithID("b"))
				b.AddWarrant(NewUnit("w").WithID("w"))
				b.AddRelation(NewRelation("a", "b", KindSupport).WithWarrants("XOR", "w"))
			},
			wantErr: ErrInvalidKind,
		},
		{
			name: "warrant attack on unknown warrant",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.AddWarrantAttack("a", "ghost")
			},
			wantErr: ErrDanglingReference,
		},
		{
			name: "bundle with one unit",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.DefineBundle("B", "a")
			},
			wantErr: ErrBundleMembership,
		},
		{
			name: "unit assigned to two bundles",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.AddUnit(NewUnit("b").WithID("b"))
				b.AddUnit(NewUnit("c").WithID("c"))
				b.DefineBundle("B1", "a", "b")
				b.DefineBundle("B2", "a", "c")
			},
			wantErr: ErrBundleMembership,
		},
		{
			name: "bundle referencing unknown unit",
			build: func(b *Builder) {
				b.AddUnit(NewUnit("a").WithID("a"))
				b.DefineBundle("B", "a", "ghost")
			},
			wantErr: ErrDanglingReference,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := NewBuilder()
			tt.build(b)
			_, err := b.Freeze()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestFreezeValidGraph(t *testing.T) {
	b := NewBuilder()
	b.AddUnit(NewUnit("the road is wet").WithID("wet").WithScore(0.9))
	b.AddUnit(NewUnit("it rained last night").WithID("rain").AsAxiom(0.8))
	b.AddWarrant(NewUnit("rain wets roads").WithID("w1").WithScore(0.7))
	b.AddRelation(NewRelation("rain", "wet", KindSupport).WithWarrants(GateAnd, "w1"))
	b.AddWarrantAttack("wet", "w1")

	m, err := b.Freeze()
	require.NoError(t, err)

	assert.Equal(t, []string{"rain", "wet"}, m.UnitIDs())
	assert.Equal(t, []string{"w1"}, m.WarrantIDs())

	rain, ok := m.Unit("rain")
	require.True(t, ok)
	assert.True(t, rain.IsAxiom)

	incoming := m.Incoming("wet")
	require.Len(t, incoming, 1)
	assert.Equal(t, "rain", incoming[0].Src)
	assert.Equal(t, []string{"w1"}, incoming[0].WarrantIDs)

	attacks := m.WarrantAttacks()
	require.Len(t, attacks, 1)
	assert.Equal(t, WarrantAttack{Src: "wet", WarrantID: "w1"}, attacks[0])
}

func TestFreezeCapturesBundleRelations(t *testing.T) {
	b := NewBuilder()
	b.AddUnit(NewUnit("a1").WithID("a1"))
	b.AddUnit(NewUnit("a2").WithID("a2"))
	b.AddUnit(NewUnit("b1").WithID("b1"))
	b.AddSupport("a1", "a2")
	b.AddAttack("a1", "b1")
	b.DefineBundle("A", "a1", "a2")

	m, err := b.Freeze()
	require.NoError(t, err)

	bundle, ok := m.Bundle("A")
	require.True(t, ok)
	assert.Equal(t, []string{"a1", "a2"}, bundle.Units)
	require.Len(t, bundle.Relations, 1)
	assert.Equal(t, "a1", bundle.Relations[0].Src)
	assert.Equal(t, "a2", bundle.Relations[0].Dst)
}

func TestModelAccessorsReturnCopies(t *testing.T) {
	b := NewBuilder()
	b.AddUnit(NewUnit("a").WithID("a").WithMetadata("k", "v"))
	b.AddUnit(NewUnit("b").WithID("b"))
	b.AddSupport("a", "b")

	m, err := b.Freeze()
	require.NoError(t, err)

	ids := m.UnitIDs()
	ids[0] = "mutated"
	assert.Equal(t, []string{"a", "b"}, m.UnitIDs())

	u, _ := m.Unit("a")
	u.Metadata["k"] = "changed"
	u2, _ := m.Unit("a")
	assert.Equal(t, "v", u2.Metadata["k"])

	rels := m.Relations()
	rels[0].Src = "mutated"
	assert.Equal(t, "a", m.Relations()[0].Src)
}

func TestAttackEdgesProjection(t *testing.T) {
	b := NewBuilder()
	b.AddUnit(NewUnit("a").WithID("a"))
	b.AddUnit(NewUnit("b").WithID("b"))
	b.AddUnit(NewUnit("c").WithID("c"))
	b.AddSupport("a", "b")
	b.AddAttack("a", "c")
	b.AddRelation(NewRelation("b", "c", KindUndercut))
	b.AddRelation(NewRelation("b", "c", KindRebut))

	m, err := b.Freeze()
	require.NoError(t, err)

	edges := m.AttackEdges()
	assert.Equal(t, []AttackEdge{{Src: "a", Dst: "c"}, {Src: "b", Dst: "c"}}, edges)
}
