package resources

import (
	"context"
	"fmt"
	"net/http"

	"github.com/curriculoxpress/cxpress/internal/client/api"
	"github.com/curriculoxpress/cxpress/internal/client/cache"
	"github.com/curriculoxpress/cxpress/internal/client/models"
)

// CurriculumService extends the uniform collection surface with the
// association operations a curriculum supports.
type CurriculumService struct {
	*Collection[models.Curriculum]
}

func newCurriculumService(d api.Doer, c *cache.Cache) *CurriculumService {
	return &CurriculumService{
		Collection: newCollection[models.Curriculum](models.KindCurriculums, d, c),
	}
}

func associationPath(curriculumID string, kind models.Kind, itemID string) string {
	return fmt.Sprintf("/curriculums/%s/%s/%s", curriculumID, kind, itemID)
}

func checkArchiveKind(kind models.Kind) error {
	for _, k := range models.ArchiveKinds() {
		if kind == k {
			return nil
		}
	}
	return fmt.Errorf("kind %q cannot be associated with a curriculum", kind)
}

// Attach associates an archive item with a curriculum. The server treats
// the association as set membership, so attaching an already-associated
// item changes nothing. Only the cached detail of this curriculum is
// invalidated; the curriculum list does not embed associations.
func (s *CurriculumService) Attach(ctx context.Context, curriculumID string, kind models.Kind, itemID string) error {
	if err := checkArchiveKind(kind); err != nil {
		return err
	}
	if err := s.api.Do(ctx, http.MethodPost, associationPath(curriculumID, kind, itemID), nil, nil); err != nil {
		return err
	}
	s.cache.Invalidate(cache.ItemKey(models.KindCurriculums, curriculumID))
	return nil
}

// Detach removes an association. Same set semantics and cache behavior
// as Attach.
func (s *CurriculumService) Detach(ctx context.Context, curriculumID string, kind models.Kind, itemID string) error {
	if err := checkArchiveKind(kind); err != nil {
		return err
	}
	if err := s.api.Do(ctx, http.MethodDelete, associationPath(curriculumID, kind, itemID), nil, nil); err != nil {
		return err
	}
	s.cache.Invalidate(cache.ItemKey(models.KindCurriculums, curriculumID))
	return nil
}
