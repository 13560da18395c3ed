package models

type ContactInfo struct {
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Address  string `json:"address"`
	LinkedIn string `json:"linkedin"`
}

type ExperienceItem struct {
	Title   string `json:"title"`
	Company string `json:"company"`
	Dates   string `json:"dates"`
	Details string `json:"details"`
}

type EducationItem struct {
	School  string `json:"school"`
	Degree  string `json:"degree"`
	Dates   string `json:"dates"`
	Details string `json:"details"`
}

type SkillCategory struct {
	Technical  []string `json:"technical"`
	Tools      []string `json:"tools"`
	SoftSkills []string `json:"soft_skills"`
}

type ProjectItem struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Link        string `json:"link"`
}

// RewrittenResume is the response of POST /api/rewrite. Every slice is
// non-nil so the JSON shape never carries nulls.
type RewrittenResume struct {
	ContactInfo ContactInfo      `json:"contact_info"`
	Summary     string           `json:"summary"`
	Experience  []ExperienceItem `json:"experience"`
	Education   []EducationItem  `json:"education"`
	Skills      SkillCategory    `json:"skills"`
	Projects    []ProjectItem    `json:"projects"`
	FullText    string           `json:"full_text"`
}
