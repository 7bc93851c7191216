package arabic

// Form is the positional glyph variant an Arabic dual- or right-joining
// character takes.
type Form int

const (
	// FormNone marks a character that never takes a positional form
	// (transparent, join-causing, non-joining, or left-joining).
	FormNone Form = iota
	FormIsolated
	FormInitial
	FormMedial
	FormFinal
)

func (f Form) String() string {
	switch f {
	case FormIsolated:
		return "isol"
	case FormInitial:
		return "init"
	case FormMedial:
		return "medi"
	case FormFinal:
		return "fina"
	default:
		return "none"
	}
}

// Tag returns the GSUB feature tag for f, or the zero Tag for FormNone.
func (f Form) Tag() string {
	switch f {
	case FormIsolated:
		return "isol"
	case FormInitial:
		return "init"
	case FormMedial:
		return "medi"
	case FormFinal:
		return "fina"
	default:
		return ""
	}
}

// AssignForms computes the positional form of every dual- or right-joining
// character in types: for each such character, find the nearest preceding
// and following non-transparent neighbour *within types* (i.e. bounded by
// the range types was built from, not the whole text) and derive the form
// from their joining types. Transparent code points receive FormNone and
// are skipped when searching for neighbours on either side of any other
// character, so a run of transparent characters between two dual-joining
// letters never breaks their join.
func AssignForms(types []JoiningType) []Form {
	forms := make([]Form, len(types))
	for i, t := range types {
		if t != JoinD && t != JoinR {
			forms[i] = FormNone
			continue
		}
		prev, hasPrev := prevNonTransparent(types, i)
		next, hasNext := nextNonTransparent(types, i)

		canJoinLeft := hasPrev && (types[prev] == JoinD || types[prev] == JoinL || types[prev] == JoinC)
		canJoinRight := hasNext && t == JoinD && (types[next] == JoinD || types[next] == JoinC)

		switch {
		case canJoinLeft && canJoinRight:
			forms[i] = FormMedial
		case canJoinLeft:
			forms[i] = FormFinal
		case canJoinRight:
			forms[i] = FormInitial
		default:
			forms[i] = FormIsolated
		}
	}
	return forms
}

func prevNonTransparent(types []JoiningType, i int) (int, bool) {
	for j := i - 1; j >= 0; j-- {
		if types[j] != JoinT {
			return j, true
		}
	}
	return -1, false
}

func nextNonTransparent(types []JoiningType, i int) (int, bool) {
	for j := i + 1; j < len(types); j++ {
		if types[j] != JoinT {
			return j, true
		}
	}
	return -1, false
}
