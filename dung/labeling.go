package dung

// Label is the acceptance status of a single argument.
type Label string

const (
	// In marks arguments accepted by the extension.
	In Label = "in"

	// Out marks arguments attacked by an accepted argument.
	Out Label = "out"

	// Undec marks arguments that are neither accepted nor attacked.
	Undec Label = "undec"
)

// Labeling is a total mapping from argument id to label, dual to an
// extension.
type Labeling map[string]Label

// LabelingFromExtension derives the labeling dual to an extension: in for
// members, out for arguments attacked by a member, undec otherwise. This is
// the single place labelings are derived, keeping them consistent with
// extensions by construction.
func (af *AF) LabelingFromExtension(ext []string) Labeling {
	members := af.toSet(ext)
	labeling := make(Labeling, len(af.args))
	for _, a := range af.args {
		switch {
		case members[a]:
			labeling[a] = In
		case af.attackedBy(members, a):
			labeling[a] = Out
		default:
			labeling[a] = Undec
		}
	}
	return labeling
}

func (af *AF) attackedBy(members map[string]bool, arg string) bool {
	for _, attacker := range af.attackers[arg] {
		if members[attacker] {
			return true
		}
	}
	return false
}
