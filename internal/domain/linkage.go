package domain

// PlaceAmenity is one pair of the Place<->Amenity linkage set.
// The composite key keeps each pair unique.
type PlaceAmenity struct {
	PlaceID   string `gorm:"primaryKey;size:36" json:"place_id"`
	AmenityID string `gorm:"primaryKey;size:36;index" json:"amenity_id"`
}

func (PlaceAmenity) TableName() string { return "place_amenity" }

// DiffLinks compares the current linked ids with the desired set and returns
// the ids to link and to unlink. Duplicates in desired are ignored and the
// order of first appearance is kept.
func DiffLinks(current, desired []string) (add, remove []string) {
	have := make(map[string]struct{}, len(current))
	for _, id := range current {
		have[id] = struct{}{}
	}
	want := make(map[string]struct{}, len(desired))
	for _, id := range desired {
		if _, dup := want[id]; dup {
			continue
		}
		want[id] = struct{}{}
		if _, ok := have[id]; !ok {
			add = append(add, id)
		}
	}
	for _, id := range current {
		if _, ok := want[id]; !ok {
			remove = append(remove, id)
		}
	}
	return add, remove
}

// Dedupe returns ids with duplicates removed, preserving order
func Dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
