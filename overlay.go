package tripkit

import (
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/peterbourgon/diskv/v3"
)

// OverlayStore persists viewer-mode section snapshots. Each section
// lives under its own well-known key ("overlay-expenses" and so on),
// entirely separate from the canonical trip document. Overlays are
// created lazily on first viewer touch and never merged back.
type OverlayStore struct {
	d *diskv.Diskv
}

// NewOverlayStore creates an overlay store rooted at basePath.
func NewOverlayStore(basePath string) *OverlayStore {
	return &OverlayStore{d: diskv.New(diskv.Options{
		BasePath:          basePath,
		AdvancedTransform: overlayKeyTransform,
		InverseTransform:  overlayPathTransform,
		CacheSizeMax:      1024 * 1024, // 1MB
	})}
}

func overlayKey(section string) string {
	return "overlay-" + section
}

func overlayKeyTransform(key string) *diskv.PathKey {
	parts := strings.SplitN(key, "-", 2)
	if len(parts) == 1 {
		return &diskv.PathKey{Path: []string{}, FileName: parts[0]}
	}
	return &diskv.PathKey{Path: []string{parts[0]}, FileName: parts[1]}
}

func overlayPathTransform(pk *diskv.PathKey) string {
	if len(pk.Path) == 0 {
		return pk.FileName
	}
	return fmt.Sprintf("%s-%s", strings.Join(pk.Path, "-"), pk.FileName)
}

// Read returns the stored overlay for section. ok is false when no
// overlay exists. A stored overlay that fails to parse is discarded and
// reported as absent so the caller reseeds; corruption is recovered
// silently, never surfaced as a failure.
func (o *OverlayStore) Read(section string) (value map[string]any, ok bool, err error) {
	key := overlayKey(section)
	if !o.d.Has(key) {
		return nil, false, nil
	}
	data, err := o.d.Read(key)
	if err != nil {
		return nil, false, err
	}
	var v map[string]any
	if err := json.Unmarshal(data, &v); err != nil {
		log.Printf("tripkit: overlay %s unparsable, reseeding: %v", section, err)
		if err := o.d.Erase(key); err != nil {
			return nil, false, err
		}
		return nil, false, nil
	}
	return v, true, nil
}

// Write persists the overlay value for section.
func (o *OverlayStore) Write(section string, value map[string]any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return o.d.Write(overlayKey(section), data)
}

// Has reports whether an overlay exists for section.
func (o *OverlayStore) Has(section string) bool {
	return o.d.Has(overlayKey(section))
}

// Clear removes the overlay for section. Clearing an absent overlay is
// not an error.
func (o *OverlayStore) Clear(section string) error {
	key := overlayKey(section)
	if !o.d.Has(key) {
		return nil
	}
	return o.d.Erase(key)
}

// ClearAll removes every viewer overlay.
func (o *OverlayStore) ClearAll() error {
	for _, section := range ViewerSections {
		if err := o.Clear(section); err != nil {
			return err
		}
	}
	return nil
}
