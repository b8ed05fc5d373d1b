package models

// Create payloads. Optional fields are pointers so "explicitly null" can
// be sent (an open-ended education has endDate: null).

type CreateEducation struct {
	Institution  string  `json:"institution"`
	Degree       string  `json:"degree"`
	FieldOfStudy string  `json:"fieldOfStudy"`
	StartDate    string  `json:"startDate"`
	EndDate      *string `json:"endDate"`
}

type CreateExperience struct {
	Company     string  `json:"company"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	StartDate   string  `json:"startDate"`
	EndDate     *string `json:"endDate"`
}

type CreateSkill struct {
	Name  string  `json:"name"`
	Level *string `json:"level,omitempty"`
}

type CreateProject struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	URL         *string `json:"url,omitempty"`
}

type CreateStatement struct {
	Title string `json:"title"`
	Text  string `json:"text"`
}

type CreateCurriculum struct {
	StatementID string `json:"statementId"`
	Title       string `json:"title,omitempty"`
}

// Update payloads are partial: nil fields are omitted from the request body.

type UpdateEducation struct {
	Institution  *string `json:"institution,omitempty"`
	Degree       *string `json:"degree,omitempty"`
	FieldOfStudy *string `json:"fieldOfStudy,omitempty"`
	StartDate    *string `json:"startDate,omitempty"`
	EndDate      *string `json:"endDate,omitempty"`
}

type UpdateExperience struct {
	Company     *string `json:"company,omitempty"`
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	StartDate   *string `json:"startDate,omitempty"`
	EndDate     *string `json:"endDate,omitempty"`
}

type UpdateSkill struct {
	Name  *string `json:"name,omitempty"`
	Level *string `json:"level,omitempty"`
}

type UpdateProject struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	URL         *string `json:"url,omitempty"`
}

type UpdateStatement struct {
	Title *string `json:"title,omitempty"`
	Text  *string `json:"text,omitempty"`
}

type UpdateCurriculum struct {
	Title *string `json:"title,omitempty"`
}

// RegisterUser is the body of POST /auth/register.
type RegisterUser struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginUser is the body of POST /auth/login.
type LoginUser struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// GenerateStatement is the body of POST /ai/generate-statement.
type GenerateStatement struct {
	CurriculumID   string `json:"curriculumId"`
	Title          string `json:"title"`
	JobDescription string `json:"jobDescription"`
}
