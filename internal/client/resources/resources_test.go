package resources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/curriculoxpress/cxpress/internal/client/cache"
	"github.com/curriculoxpress/cxpress/internal/client/models"
)

// fakeDoer records every request and answers from canned JSON bodies.
type fakeDoer struct {
	calls     []string
	responses map[string]string
	errs      map[string]error
}

func newFakeDoer() *fakeDoer {
	return &fakeDoer{responses: map[string]string{}, errs: map[string]error{}}
}

func (f *fakeDoer) on(method, path, body string) {
	f.responses[method+" "+path] = body
}

func (f *fakeDoer) failOn(method, path string, err error) {
	f.errs[method+" "+path] = err
}

func (f *fakeDoer) Do(_ context.Context, method, path string, _ any, out any) error {
	key := method + " " + path
	f.calls = append(f.calls, key)
	if err := f.errs[key]; err != nil {
		return err
	}
	if body, ok := f.responses[key]; ok && out != nil {
		return json.Unmarshal([]byte(body), out)
	}
	return nil
}

func (f *fakeDoer) count(method, path string) int {
	n := 0
	for _, c := range f.calls {
		if c == method+" "+path {
			n++
		}
	}
	return n
}

func setup() (*fakeDoer, *cache.Cache, *Services) {
	d := newFakeDoer()
	c := cache.New()
	return d, c, New(d, c)
}

func TestList_CachesByKind(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("GET", "/skills", `[{"id":"s-1","name":"Go"}]`)

	first, err := svc.Skills.List(ctx)
	require.NoError(t, err)
	require.Len(t, first, 1)

	second, err := svc.Skills.List(ctx)
	require.NoError(t, err)
	require.Equal(t, first, second)
	require.Equal(t, 1, d.count("GET", "/skills"), "second read served from cache")
}

func TestGet_EmptyIDIsNoop(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()

	item, err := svc.Educations.Get(ctx, "")
	require.NoError(t, err)
	require.Nil(t, item)
	require.Empty(t, d.calls, "no request is executed without an id")
}

func TestGet_CachesByKindAndID(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("GET", "/projects/p-1", `{"id":"p-1","name":"CLI"}`)

	first, err := svc.Projects.Get(ctx, "p-1")
	require.NoError(t, err)
	require.Equal(t, "CLI", first.Name)

	_, err = svc.Projects.Get(ctx, "p-1")
	require.NoError(t, err)
	require.Equal(t, 1, d.count("GET", "/projects/p-1"))
}

func TestCreate_InvalidatesListOnly(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("GET", "/skills", `[]`)
	d.on("GET", "/skills/s-9", `{"id":"s-9"}`)
	d.on("POST", "/skills", `{"id":"s-new","name":"Docker"}`)

	_, err := svc.Skills.List(ctx)
	require.NoError(t, err)
	_, err = svc.Skills.Get(ctx, "s-9")
	require.NoError(t, err)

	created, err := svc.Skills.Create(ctx, models.CreateSkill{Name: "Docker"})
	require.NoError(t, err)
	require.Equal(t, "s-new", created.ID)

	_, err = svc.Skills.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, d.count("GET", "/skills"), "list refetched after create")

	_, err = svc.Skills.Get(ctx, "s-9")
	require.NoError(t, err)
	require.Equal(t, 1, d.count("GET", "/skills/s-9"), "unrelated item cache untouched")
}

func TestUpdate_InvalidatesListAndItem(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("GET", "/statements", `[]`)
	d.on("GET", "/statements/st-1", `{"id":"st-1","title":"Old"}`)
	d.on("PUT", "/statements/st-1", `{"id":"st-1","title":"New"}`)

	_, _ = svc.Statements.List(ctx)
	_, _ = svc.Statements.Get(ctx, "st-1")

	title := "New"
	updated, err := svc.Statements.Update(ctx, "st-1", models.UpdateStatement{Title: &title})
	require.NoError(t, err)
	require.Equal(t, "New", updated.Title)

	_, _ = svc.Statements.List(ctx)
	_, _ = svc.Statements.Get(ctx, "st-1")
	require.Equal(t, 2, d.count("GET", "/statements"))
	require.Equal(t, 2, d.count("GET", "/statements/st-1"))
}

func TestDelete_ArchiveKindInvalidatesCurriculumDetails(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("GET", "/curriculums/c-1", `{"id":"c-1","title":"CV"}`)
	d.on("GET", "/educations", `[{"id":"e-1"}]`)

	_, err := svc.Curriculums.Get(ctx, "c-1")
	require.NoError(t, err)
	_, err = svc.Educations.List(ctx)
	require.NoError(t, err)

	require.NoError(t, svc.Educations.Delete(ctx, "e-1"))

	_, err = svc.Curriculums.Get(ctx, "c-1")
	require.NoError(t, err)
	require.Equal(t, 2, d.count("GET", "/curriculums/c-1"),
		"deleting an archive item detaches it server-side, so cached detail is stale")
	_, err = svc.Educations.List(ctx)
	require.NoError(t, err)
	require.Equal(t, 2, d.count("GET", "/educations"))
}

func TestDelete_StatementLeavesCurriculumCacheAlone(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("GET", "/curriculums/c-1", `{"id":"c-1"}`)

	_, err := svc.Curriculums.Get(ctx, "c-1")
	require.NoError(t, err)

	require.NoError(t, svc.Statements.Delete(ctx, "st-1"))

	_, err = svc.Curriculums.Get(ctx, "c-1")
	require.NoError(t, err)
	require.Equal(t, 1, d.count("GET", "/curriculums/c-1"))
}

func TestAttach_InvalidatesOnlyThatCurriculumDetail(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("GET", "/curriculums", `[{"id":"c-1"},{"id":"c-2"}]`)
	d.on("GET", "/curriculums/c-1", `{"id":"c-1"}`)
	d.on("GET", "/curriculums/c-2", `{"id":"c-2"}`)

	_, _ = svc.Curriculums.List(ctx)
	_, _ = svc.Curriculums.Get(ctx, "c-1")
	_, _ = svc.Curriculums.Get(ctx, "c-2")

	require.NoError(t, svc.Curriculums.Attach(ctx, "c-1", models.KindSkills, "s-1"))
	require.Equal(t, 1, d.count("POST", "/curriculums/c-1/skills/s-1"))

	_, _ = svc.Curriculums.List(ctx)
	_, _ = svc.Curriculums.Get(ctx, "c-1")
	_, _ = svc.Curriculums.Get(ctx, "c-2")
	require.Equal(t, 1, d.count("GET", "/curriculums"), "list does not embed associations")
	require.Equal(t, 2, d.count("GET", "/curriculums/c-1"))
	require.Equal(t, 1, d.count("GET", "/curriculums/c-2"))
}

func TestAttachDetach_RejectNonArchiveKinds(t *testing.T) {
	ctx := context.Background()
	_, _, svc := setup()

	require.Error(t, svc.Curriculums.Attach(ctx, "c-1", models.KindStatements, "st-1"))
	require.Error(t, svc.Curriculums.Detach(ctx, "c-1", models.KindCurriculums, "c-2"))
}

func TestDetach_IssuesDelete(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()

	require.NoError(t, svc.Curriculums.Detach(ctx, "c-1", models.KindProjects, "p-1"))
	require.Equal(t, 1, d.count("DELETE", "/curriculums/c-1/projects/p-1"))
}

func TestGenerateStatement_DecodesWrapperAndInvalidates(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("GET", "/statements", `[]`)
	d.on("GET", "/curriculums", `[]`)
	d.on("POST", "/ai/generate-statement", `{"statement":{"id":"st-ai","title":"Backend Role","text":"..."}}`)

	_, _ = svc.Statements.List(ctx)
	_, _ = svc.Curriculums.List(ctx)

	st, err := svc.GenerateStatement(ctx, models.GenerateStatement{
		CurriculumID:   "c-1",
		Title:          "Backend Role",
		JobDescription: "Go developer...",
	})
	require.NoError(t, err)
	require.Equal(t, "st-ai", st.ID)

	_, _ = svc.Statements.List(ctx)
	_, _ = svc.Curriculums.List(ctx)
	require.Equal(t, 2, d.count("GET", "/statements"))
	require.Equal(t, 2, d.count("GET", "/curriculums"))
}

func TestAddSkillTo_SequencesCreateThenAttach(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("POST", "/skills", `{"id":"s-new"}`)

	item, err := svc.AddSkillTo(ctx, "c-1", models.CreateSkill{Name: "Go"})
	require.NoError(t, err)
	require.Equal(t, "s-new", item.ID)
	require.Equal(t, []string{"POST /skills", "POST /curriculums/c-1/skills/s-new"}, d.calls)
}

func TestAddEducationTo_AttachFailureStillReturnsItem(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	d.on("POST", "/educations", `{"id":"e-new"}`)
	d.failOn("POST", "/curriculums/c-1/educations/e-new", errors.New("boom"))

	item, err := svc.AddEducationTo(ctx, "c-1", models.CreateEducation{Institution: "UFRJ"})
	require.Error(t, err)
	require.NotNil(t, item, "the archive item exists independently of the association")
	require.Equal(t, "e-new", item.ID)
}

func TestListError_Propagates(t *testing.T) {
	ctx := context.Background()
	d, _, svc := setup()
	sentinel := fmt.Errorf("offline")
	d.failOn("GET", "/experiences", sentinel)

	_, err := svc.Experiences.List(ctx)
	require.ErrorIs(t, err, sentinel)

	// No retry and nothing cached: next call hits the transport again.
	_, _ = svc.Experiences.List(ctx)
	require.Equal(t, 2, d.count("GET", "/experiences"))
}
