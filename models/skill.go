package models

type SuggestionGroup struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
}

// SkillSuggestions is keyed by group: related_skills, trending_skills,
// similar_users.
type SkillSuggestions map[string]SuggestionGroup

type SkillCategory struct {
	Name           string   `json:"name"`
	Skills         []string `json:"skills"`
	RelatedDomains []string `json:"related_domains"`
}

type SkillMatch struct {
	Skill      string `json:"skill"`
	Category   string `json:"category"`
	Popularity int    `json:"popularity,omitempty"`
}

type PopularSkill struct {
	Skill    string `json:"skill"`
	Teachers int    `json:"teachers,omitempty"`
	Learners int    `json:"learners,omitempty"`
	Category string `json:"category"`
}

type PopularSkills struct {
	MostTaught []PopularSkill `json:"most_taught"`
	MostWanted []PopularSkill `json:"most_wanted"`
}
