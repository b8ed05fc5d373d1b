package models

// Entities are server-owned; the client only holds cache copies of the
// JSON the API returns. Field names follow the API responses.

type Education struct {
	ID           string  `json:"id"`
	Institution  string  `json:"institution"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"fieldOfStudy"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate"`
	UserID       string  `json:"userId"`
	CreatedAt    string  `json:"createdAt"`
	UpdatedAt    string  `json:"updatedAt"`
}

type Experience struct {
	ID          string  `json:"id"`
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
	UserID      string  `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type Skill struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Level     *string `json:"level"`
	UserID    string  `json:"userId"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

type Project struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         *string `json:"url"`
	UserID      string  `json:"userId"`
	CreatedAt   string  `json:"createdAt"`
	UpdatedAt   string  `json:"updatedAt"`
}

type Statement struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Text      string `json:"text"`
	UserID    string `json:"userId"`
	CreatedAt string `json:"createdAt"`
	UpdatedAt string `json:"updatedAt"`
}

// Curriculum is the full detail response. The list endpoint may omit the
// association arrays; they unmarshal as nil slices there.
type Curriculum struct {
	ID          string       `json:"id"`
	Title       string       `json:"title"`
	UserID      string       `json:"userId"`
	StatementID string       `json:"statementId"`
	CreatedAt   string       `json:"createdAt"`
	UpdatedAt   string       `json:"updatedAt"`
	Statement   *Statement   `json:"statement,omitempty"`
	Educations  []Education  `json:"educations,omitempty"`
	Experiences []Experience `json:"experiences,omitempty"`
	Skills      []Skill      `json:"skills,omitempty"`
	Projects    []Project    `json:"projects,omitempty"`
}

// AssociatedIDs returns the ids currently associated for one archive kind.
func (c *Curriculum) AssociatedIDs(kind Kind) []string {
	var ids []string
	switch kind {
	case KindEducations:
		for _, e := range c.Educations {
			ids = append(ids, e.ID)
		}
	case KindExperiences:
		for _, e := range c.Experiences {
			ids = append(ids, e.ID)
		}
	case KindSkills:
		for _, s := range c.Skills {
			ids = append(ids, s.ID)
		}
	case KindProjects:
		for _, p := range c.Projects {
			ids = append(ids, p.ID)
		}
	}
	return ids
}

type User struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
