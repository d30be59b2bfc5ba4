package taxonomy

import (
	"fmt"
	"slices"
)

// index holds the catalog with precomputed lookups.
type index struct {
	skills     []Skill
	byID       map[string]*Skill
	byCategory map[Category][]Skill
	trapIDs    []string
}

var idx *index

func init() {
	idx = buildIndex(catalog)
}

// buildIndex constructs lookup tables over a skill slice.
func buildIndex(skills []Skill) *index {
	ix := &index{
		skills:     skills,
		byID:       make(map[string]*Skill, len(skills)),
		byCategory: make(map[Category][]Skill),
	}
	for i := range ix.skills {
		s := &ix.skills[i]
		ix.byID[s.ID] = s
		ix.byCategory[s.Category] = append(ix.byCategory[s.Category], *s)
		if s.IsTrap() {
			ix.trapIDs = append(ix.trapIDs, s.ID)
		}
	}
	return ix
}

// GetSkill returns a skill by ID, or an error if not found.
func GetSkill(id string) (Skill, error) {
	s, ok := idx.byID[id]
	if !ok {
		return Skill{}, fmt.Errorf("skill not found: %q", id)
	}
	return *s, nil
}

// AllSkills returns every skill in catalog order.
func AllSkills() []Skill {
	return slices.Clone(idx.skills)
}

// AllSkillIDs returns every skill ID in catalog order.
func AllSkillIDs() []string {
	ids := make([]string, len(idx.skills))
	for i, s := range idx.skills {
		ids[i] = s.ID
	}
	return ids
}

// ByCategory returns all skills in a category, in catalog order.
func ByCategory(c Category) []Skill {
	return slices.Clone(idx.byCategory[c])
}

// CategoryOf returns the category of the skill with the given ID.
// Returns false when the ID is not in the catalog.
func CategoryOf(id string) (Category, bool) {
	s, ok := idx.byID[id]
	if !ok {
		return "", false
	}
	return s.Category, true
}

// TrapSkillIDs returns the IDs of all trap-category skills.
func TrapSkillIDs() []string {
	return slices.Clone(idx.trapIDs)
}

// IsTrapID reports whether the ID names a trap-category skill. Unknown
// IDs are not traps.
func IsTrapID(id string) bool {
	s, ok := idx.byID[id]
	return ok && s.IsTrap()
}
