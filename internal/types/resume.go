package types

// ContactInfo is the contact block of a generated resume.
type ContactInfo struct {
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone"`
	LinkedIn  string `json:"linkedin,omitempty"`
	Portfolio string `json:"portfolio,omitempty"`
	Address   string `json:"address,omitempty"`
}

// ExperienceEntry is one position in a generated resume.
type ExperienceEntry struct {
	JobTitle         string   `json:"jobTitle"`
	Company          string   `json:"company"`
	Location         string   `json:"location"`
	StartDate        string   `json:"startDate"`
	EndDate          string   `json:"endDate"`
	Responsibilities []string `json:"responsibilities"`
}

// EducationEntry is one education item in a generated resume.
type EducationEntry struct {
	Degree         string   `json:"degree"`
	Institution    string   `json:"institution"`
	Location       string   `json:"location,omitempty"`
	GraduationDate string   `json:"graduationDate"`
	Details        []string `json:"details"`
}

// ResumeDocument is the validated, normalized output of the content generator.
// Every list field is non-nil and holds trimmed, non-empty strings.
type ResumeDocument struct {
	Contact    ContactInfo       `json:"contact"`
	Summary    string            `json:"summary"`
	Experience []ExperienceEntry `json:"experience"`
	Education  []EducationEntry  `json:"education"`
	Skills     []string          `json:"skills"`
}
