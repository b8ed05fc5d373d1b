// Package models defines the API entity types of Currículo Xpress and the
// request payloads the client sends.
package models

// Kind identifies one server-side entity collection.
type Kind string

const (
	KindEducations  Kind = "educations"
	KindExperiences Kind = "experiences"
	KindSkills      Kind = "skills"
	KindProjects    Kind = "projects"
	KindStatements  Kind = "statements"
	KindCurriculums Kind = "curriculums"
)

// ArchiveKinds lists the kinds that can be associated with a curriculum,
// in the order the edit flow walks them.
func ArchiveKinds() []Kind {
	return []Kind{KindEducations, KindExperiences, KindSkills, KindProjects}
}

// Path returns the REST collection path for the kind, e.g. "/educations".
func (k Kind) Path() string {
	return "/" + string(k)
}

func (k Kind) Valid() bool {
	switch k {
	case KindEducations, KindExperiences, KindSkills, KindProjects,
		KindStatements, KindCurriculums:
		return true
	}
	return false
}
