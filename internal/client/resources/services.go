package resources

import (
	"context"
	"net/http"

	"github.com/curriculoxpress/cxpress/internal/client/api"
	"github.com/curriculoxpress/cxpress/internal/client/cache"
	"github.com/curriculoxpress/cxpress/internal/client/models"
)

// Services bundles every resource service of one app instance over a
// shared transport and cache.
type Services struct {
	Educations  *Collection[models.Education]
	Experiences *Collection[models.Experience]
	Skills      *Collection[models.Skill]
	Projects    *Collection[models.Project]
	Statements  *Collection[models.Statement]
	Curriculums *CurriculumService

	api   api.Doer
	cache *cache.Cache
}

func New(d api.Doer, c *cache.Cache) *Services {
	return &Services{
		Educations:  newCollection[models.Education](models.KindEducations, d, c),
		Experiences: newCollection[models.Experience](models.KindExperiences, d, c),
		Skills:      newCollection[models.Skill](models.KindSkills, d, c),
		Projects:    newCollection[models.Project](models.KindProjects, d, c),
		Statements:  newCollection[models.Statement](models.KindStatements, d, c),
		Curriculums: newCurriculumService(d, c),
		api:         d,
		cache:       c,
	}
}

// GenerateStatement asks the server's AI endpoint for a statement tuned
// to a job description, grounded on an existing curriculum. The server
// persists the statement; the statement list and curriculum list caches
// are invalidated so both reflect it.
func (s *Services) GenerateStatement(ctx context.Context, payload models.GenerateStatement) (*models.Statement, error) {
	var resp struct {
		Statement models.Statement `json:"statement"`
	}
	if err := s.api.Do(ctx, http.MethodPost, "/ai/generate-statement", payload, &resp); err != nil {
		return nil, err
	}

	s.cache.Invalidate(cache.ListKey(models.KindStatements), cache.ListKey(models.KindCurriculums))
	return &resp.Statement, nil
}

// The Add*To helpers implement the "create then associate" flow the
// curriculum screens use: the association is sequenced on the created
// item's id. A failed association leaves the created archive item in
// place (acervo semantics: it exists independently of any curriculum).

func (s *Services) AddEducationTo(ctx context.Context, curriculumID string, p models.CreateEducation) (*models.Education, error) {
	item, err := s.Educations.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.Curriculums.Attach(ctx, curriculumID, models.KindEducations, item.ID); err != nil {
		return item, err
	}
	return item, nil
}

func (s *Services) AddExperienceTo(ctx context.Context, curriculumID string, p models.CreateExperience) (*models.Experience, error) {
	item, err := s.Experiences.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.Curriculums.Attach(ctx, curriculumID, models.KindExperiences, item.ID); err != nil {
		return item, err
	}
	return item, nil
}

func (s *Services) AddSkillTo(ctx context.Context, curriculumID string, p models.CreateSkill) (*models.Skill, error) {
	item, err := s.Skills.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.Curriculums.Attach(ctx, curriculumID, models.KindSkills, item.ID); err != nil {
		return item, err
	}
	return item, nil
}

func (s *Services) AddProjectTo(ctx context.Context, curriculumID string, p models.CreateProject) (*models.Project, error) {
	item, err := s.Projects.Create(ctx, p)
	if err != nil {
		return nil, err
	}
	if err := s.Curriculums.Attach(ctx, curriculumID, models.KindProjects, item.ID); err != nil {
		return item, err
	}
	return item, nil
}
