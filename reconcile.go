package tripkit

// ReconcileSchema upgrades stale sections of a canonical trip to the
// current default schema. It is a generic fold over the shape
// descriptors from SectionShapes: for each known sub-collection, a
// stored list shorter than the current default's is replaced with the
// default's version in full; a list that matches or exceeds the default
// length is left untouched, as is every unrecognized top-level field.
//
// This is deliberately a length heuristic, not a deep diff: it cannot
// tell a stale schema snapshot from a list the user shortened on
// purpose, and it restores the latter too. Running it on its own output
// changes nothing (fixpoint), since replaced lists take the default
// length and are never shrunk back.
//
// Viewer overlays are never passed through here; this runs on the owner
// path only, when the canonical document is loaded.
func ReconcileSchema(t *Trip) (*Trip, bool, error) {
	changed := false
	for _, shape := range SectionShapes() {
		stored, err := SectionValue(t, shape.Section)
		if err != nil {
			return nil, false, err
		}
		def, err := SectionDefault(shape.Section)
		if err != nil {
			return nil, false, err
		}
		sectionChanged := false
		for key, minLen := range shape.Collections {
			storedList, ok := stored[key].([]any)
			if !ok {
				// Field missing or not a list: treat as empty, upgrade.
				storedList = nil
			}
			if len(storedList) >= minLen {
				continue
			}
			defList, ok := def[key].([]any)
			if !ok {
				continue
			}
			stored[key] = defList
			sectionChanged = true
		}
		if !sectionChanged {
			continue
		}
		if err := SetSectionValue(t, shape.Section, stored); err != nil {
			return nil, false, err
		}
		changed = true
	}
	return t, changed, nil
}
