package models

import "strings"

// RoleTags is the closed vocabulary of collaborator role tags accepted at
// the boundary. Free-form roles go through the "custom:" escape hatch,
// e.g. "custom:Foley Artist".
var RoleTags = []string{
	"Editor",
	"Cinematographer",
	"Sound Designer",
	"Composer",
	"Colorist",
	"Animator",
	"Illustrator",
	"Writer",
	"Producer",
	"Director",
	"VFX Artist",
	"Motion Designer",
	"Photographer",
	"Voice Actor",
}

// CustomTagPrefix marks a free-text role tag.
const CustomTagPrefix = "custom:"

var roleTagSet = func() map[string]bool {
	set := make(map[string]bool, len(RoleTags))
	for _, t := range RoleTags {
		set[strings.ToLower(t)] = true
	}
	return set
}()

// ValidRoleTag reports whether the tag is in the vocabulary or a
// non-empty custom tag.
func ValidRoleTag(tag string) bool {
	if strings.HasPrefix(tag, CustomTagPrefix) {
		return strings.TrimSpace(strings.TrimPrefix(tag, CustomTagPrefix)) != ""
	}
	return roleTagSet[strings.ToLower(tag)]
}

// NormalizeTag lowercases a tag for comparison. Custom tags compare by
// their free-text payload.
func NormalizeTag(tag string) string {
	tag = strings.TrimSpace(strings.TrimPrefix(tag, CustomTagPrefix))
	return strings.ToLower(tag)
}
