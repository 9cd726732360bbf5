package tripkit

import (
	"errors"
	"fmt"
)

// ErrSectionReadOnly is returned when a viewer tries to update a
// section that has no overlay capability (members, tickets, info).
var ErrSectionReadOnly = errors.New("tripkit: section is read-only in viewer mode")

// Updater computes the next section value from the current one. It is
// always invoked with the active store's latest value, never a captured
// snapshot, so back-to-back updates compose instead of clobbering.
type Updater func(current map[string]any) map[string]any

// SectionStore is the dual-persistence abstraction: a uniform
// read/update contract over a section name, dispatched on share mode.
// Owner operations resolve to the canonical trip through the
// controller; viewer operations resolve to a private per-section
// overlay, lazily seeded from the canonical value on first touch and
// never merged back. Callers never branch on mode themselves.
type SectionStore struct {
	controller *Controller
	overlays   *OverlayStore
}

// NewSectionStore wires a SectionStore over the canonical controller
// and the overlay store.
func NewSectionStore(c *Controller, o *OverlayStore) *SectionStore {
	return &SectionStore{controller: c, overlays: o}
}

// Read returns the current value of section for the given mode.
func (s *SectionStore) Read(mode ShareMode, section string) (map[string]any, error) {
	if !KnownSection(section) {
		return nil, fmt.Errorf("tripkit: unknown section %q", section)
	}
	if mode == ModeViewer && IsViewerSection(section) {
		return s.viewerValue(section)
	}
	t, err := s.controller.Get()
	if err != nil {
		return nil, err
	}
	return SectionValue(t, section)
}

// Update applies fn to the latest value of section in the store the
// mode selects and persists the result atomically. The updated value is
// returned. In owner mode the whole trip is committed in a single
// assignment; in viewer mode only the overlay is written and the
// canonical trip is never consulted again once the overlay exists.
func (s *SectionStore) Update(mode ShareMode, section string, fn Updater) (map[string]any, error) {
	if !KnownSection(section) {
		return nil, fmt.Errorf("tripkit: unknown section %q", section)
	}
	if mode == ModeViewer {
		if !IsViewerSection(section) {
			return nil, ErrSectionReadOnly
		}
		current, err := s.viewerValue(section)
		if err != nil {
			return nil, err
		}
		next := fn(current)
		if err := s.overlays.Write(section, next); err != nil {
			return nil, err
		}
		return next, nil
	}

	var updated map[string]any
	_, err := s.controller.Update(func(t *Trip) error {
		current, err := SectionValue(t, section)
		if err != nil {
			return err
		}
		updated = fn(current)
		return SetSectionValue(t, section, updated)
	})
	if err != nil {
		return nil, err
	}
	return updated, nil
}

// Patch shallow-merges patch into the latest section value, mode
// dispatched the same way Update is. Keys present in patch replace the
// stored keys wholesale; absent keys are untouched.
func (s *SectionStore) Patch(mode ShareMode, section string, patch map[string]any) (map[string]any, error) {
	return s.Update(mode, section, func(current map[string]any) map[string]any {
		next := make(map[string]any, len(current)+len(patch))
		for k, v := range current {
			next[k] = v
		}
		for k, v := range patch {
			next[k] = v
		}
		return next
	})
}

// viewerValue returns the overlay value for section, seeding it on
// first touch from the canonical section's current value, or from the
// section default when no canonical trip exists. The seed is persisted
// immediately; after that the canonical document plays no further part
// in this section's viewer session.
func (s *SectionStore) viewerValue(section string) (map[string]any, error) {
	value, ok, err := s.overlays.Read(section)
	if err != nil {
		return nil, err
	}
	if ok {
		return value, nil
	}

	seed, err := s.canonicalSeed(section)
	if err != nil {
		return nil, err
	}
	if err := s.overlays.Write(section, seed); err != nil {
		return nil, err
	}
	return seed, nil
}

func (s *SectionStore) canonicalSeed(section string) (map[string]any, error) {
	t, err := s.controller.Get()
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return SectionDefault(section)
		}
		return nil, err
	}
	return SectionValue(t, section)
}
