package fakeapi_test

import (
	"context"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/curriculoxpress/cxpress/internal/client/api"
	"github.com/curriculoxpress/cxpress/internal/client/cache"
	"github.com/curriculoxpress/cxpress/internal/client/models"
	"github.com/curriculoxpress/cxpress/internal/client/reconcile"
	"github.com/curriculoxpress/cxpress/internal/client/resources"
	"github.com/curriculoxpress/cxpress/internal/client/session"
	"github.com/curriculoxpress/cxpress/internal/client/storage"
	"github.com/curriculoxpress/cxpress/internal/fakeapi"
)

// env wires the real client stack (session, gateway, resources,
// reconciler) against an in-memory server, the same graph the CLI builds.
type env struct {
	sess  *session.Store
	api   *api.HTTPClient
	svcs  *resources.Services
	rec   *reconcile.Reconciler
	cache *cache.Cache
}

func newEnv(t *testing.T) *env {
	t.Helper()

	srv := httptest.NewServer(fakeapi.New().Handler())
	t.Cleanup(srv.Close)

	st, err := storage.NewFileStore(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	e := &env{cache: cache.New()}
	e.sess = session.NewStore(st, nil)
	e.sess.Restore(context.Background())
	e.api = api.New(srv.URL, e.sess, 0, nil)
	e.svcs = resources.New(e.api, e.cache)
	e.rec = reconcile.New(e.svcs.Curriculums, e.cache, nil)
	return e
}

func (e *env) signup(t *testing.T, name, email, password string) *models.User {
	t.Helper()
	ctx := context.Background()

	user, err := e.api.Register(ctx, name, email, password)
	require.NoError(t, err)

	token, err := e.api.Login(ctx, email, password)
	require.NoError(t, err)
	require.NoError(t, e.sess.Login(ctx, token))
	return user
}

func (e *env) newStatement(t *testing.T, title, text string) *models.Statement {
	t.Helper()
	st, err := e.svcs.Statements.Create(context.Background(), models.CreateStatement{Title: title, Text: text})
	require.NoError(t, err)
	return st
}

func (e *env) newCurriculum(t *testing.T, title string) *models.Curriculum {
	t.Helper()
	st := e.newStatement(t, title+" statement", "summary")
	cur, err := e.svcs.Curriculums.Create(context.Background(),
		models.CreateCurriculum{StatementID: st.ID, Title: title})
	require.NoError(t, err)
	return cur
}

func TestRegisterAndLogin(t *testing.T) {
	e := newEnv(t)
	user := e.signup(t, "Ana", "ana@example.com", "s3cret")

	assert.True(t, e.sess.Authenticated())
	subject, _, ok := e.sess.Claims()
	require.True(t, ok)
	assert.Equal(t, user.ID, subject)
}

func TestDuplicateRegistrationRejected(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")

	_, err := e.api.Register(context.Background(), "Other", "ana@example.com", "x")
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 409, apiErr.Status)
	assert.Contains(t, apiErr.Message, "already registered")
}

func TestUnauthenticatedRequestTearsDownSession(t *testing.T) {
	e := newEnv(t)
	require.NoError(t, e.sess.Login(context.Background(), "not-a-real-token"))

	_, err := e.svcs.Educations.List(context.Background())
	assert.ErrorIs(t, err, api.ErrUnauthorized)
	assert.False(t, e.sess.Authenticated(), "401 must clear the session")
}

func TestArchiveCRUD(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")
	ctx := context.Background()

	level := "advanced"
	created, err := e.svcs.Skills.Create(ctx, models.CreateSkill{Name: "Go", Level: &level})
	require.NoError(t, err)
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Go", created.Name)

	list, err := e.svcs.Skills.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, created.ID, list[0].ID)

	name := "Golang"
	updated, err := e.svcs.Skills.Update(ctx, created.ID, models.UpdateSkill{Name: &name})
	require.NoError(t, err)
	assert.Equal(t, "Golang", updated.Name)

	got, err := e.svcs.Skills.Get(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Golang", got.Name)

	require.NoError(t, e.svcs.Skills.Delete(ctx, created.ID))
	list, err = e.svcs.Skills.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestCurriculumLifecycle(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")
	ctx := context.Background()

	st := e.newStatement(t, "Backend Role", "Experienced backend engineer.")
	cur, err := e.svcs.Curriculums.Create(ctx,
		models.CreateCurriculum{StatementID: st.ID, Title: "Backend Role"})
	require.NoError(t, err)
	assert.Equal(t, "Backend Role", cur.Title)
	assert.Equal(t, st.ID, cur.StatementID)

	detail, err := e.svcs.Curriculums.Get(ctx, cur.ID)
	require.NoError(t, err)
	assert.Equal(t, "Backend Role", detail.Title)
	require.NotNil(t, detail.Statement)
	assert.Equal(t, st.ID, detail.Statement.ID)
	assert.Equal(t, "Experienced backend engineer.", detail.Statement.Text)
	for _, kind := range models.ArchiveKinds() {
		assert.Empty(t, detail.AssociatedIDs(kind))
	}

	title := "Platform Role"
	updated, err := e.svcs.Curriculums.Update(ctx, cur.ID, models.UpdateCurriculum{Title: &title})
	require.NoError(t, err)
	assert.Equal(t, "Platform Role", updated.Title)

	require.NoError(t, e.svcs.Curriculums.Delete(ctx, cur.ID))
	list, err := e.svcs.Curriculums.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// Deleting the curriculum must not take the statement with it.
	stList, err := e.svcs.Statements.List(ctx)
	require.NoError(t, err)
	assert.Len(t, stList, 1)
}

func TestCurriculumRequiresExistingStatement(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")

	_, err := e.svcs.Curriculums.Create(context.Background(),
		models.CreateCurriculum{StatementID: "missing", Title: "x"})
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 400, apiErr.Status)
}

func TestReconcileBlocks(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")
	ctx := context.Background()

	var eduIDs []string
	for _, inst := range []string{"UFMG", "USP", "UFRJ"} {
		edu, err := e.svcs.Educations.Create(ctx, models.CreateEducation{
			Institution: inst, Degree: "BSc", FieldOfStudy: "CS", StartDate: "2018-01-01",
		})
		require.NoError(t, err)
		eduIDs = append(eduIDs, edu.ID)
	}
	skill, err := e.svcs.Skills.Create(ctx, models.CreateSkill{Name: "Go"})
	require.NoError(t, err)

	cur := e.newCurriculum(t, "Backend Role")

	detail, err := e.svcs.Curriculums.Get(ctx, cur.ID)
	require.NoError(t, err)
	require.NoError(t, e.rec.Reconcile(ctx, detail, map[models.Kind][]string{
		models.KindEducations: {eduIDs[0], eduIDs[1]},
		models.KindSkills:     {skill.ID},
	}))

	detail, err = e.svcs.Curriculums.Get(ctx, cur.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{eduIDs[0], eduIDs[1]}, detail.AssociatedIDs(models.KindEducations))
	assert.ElementsMatch(t, []string{skill.ID}, detail.AssociatedIDs(models.KindSkills))

	// Change the selection: one education leaves, another joins; the
	// skill selection is not mentioned and must stay untouched.
	require.NoError(t, e.rec.Reconcile(ctx, detail, map[models.Kind][]string{
		models.KindEducations: {eduIDs[1], eduIDs[2]},
	}))

	detail, err = e.svcs.Curriculums.Get(ctx, cur.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{eduIDs[1], eduIDs[2]}, detail.AssociatedIDs(models.KindEducations))
	assert.ElementsMatch(t, []string{skill.ID}, detail.AssociatedIDs(models.KindSkills))

	// Re-running the same selection converges without changing anything.
	require.NoError(t, e.rec.Reconcile(ctx, detail, map[models.Kind][]string{
		models.KindEducations: {eduIDs[1], eduIDs[2]},
		models.KindSkills:     {skill.ID},
	}))
	detail, err = e.svcs.Curriculums.Get(ctx, cur.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{eduIDs[1], eduIDs[2]}, detail.AssociatedIDs(models.KindEducations))
}

func TestDeleteArchiveItemDetachesFromAllCurriculums(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")
	ctx := context.Background()

	skill, err := e.svcs.Skills.Create(ctx, models.CreateSkill{Name: "Go"})
	require.NoError(t, err)

	first := e.newCurriculum(t, "Backend Role")
	second := e.newCurriculum(t, "Platform Role")
	for _, id := range []string{first.ID, second.ID} {
		require.NoError(t, e.svcs.Curriculums.Attach(ctx, id, models.KindSkills, skill.ID))
	}

	require.NoError(t, e.svcs.Skills.Delete(ctx, skill.ID))

	for _, id := range []string{first.ID, second.ID} {
		detail, err := e.svcs.Curriculums.Get(ctx, id)
		require.NoError(t, err)
		assert.Empty(t, detail.AssociatedIDs(models.KindSkills))
	}
}

func TestAddSkillToCurriculum(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")
	ctx := context.Background()

	cur := e.newCurriculum(t, "Backend Role")
	skill, err := e.svcs.AddSkillTo(ctx, cur.ID, models.CreateSkill{Name: "Postgres"})
	require.NoError(t, err)

	detail, err := e.svcs.Curriculums.Get(ctx, cur.ID)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{skill.ID}, detail.AssociatedIDs(models.KindSkills))
}

func TestGenerateStatement(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")
	ctx := context.Background()

	cur := e.newCurriculum(t, "Backend Role")
	st, err := e.svcs.GenerateStatement(ctx, models.GenerateStatement{
		CurriculumID:   cur.ID,
		Title:          "Backend summary",
		JobDescription: "Senior Go engineer, payments team.",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, st.ID)
	assert.Contains(t, st.Text, "Senior Go engineer")

	list, err := e.svcs.Statements.List(ctx)
	require.NoError(t, err)
	var ids []string
	for _, s := range list {
		ids = append(ids, s.ID)
	}
	assert.Contains(t, ids, st.ID)
}

func TestUsersAreIsolated(t *testing.T) {
	e := newEnv(t)
	e.signup(t, "Ana", "ana@example.com", "s3cret")
	ctx := context.Background()

	skill, err := e.svcs.Skills.Create(ctx, models.CreateSkill{Name: "Go"})
	require.NoError(t, err)

	// A second client against the same data dir of another user.
	require.NoError(t, e.sess.Logout(ctx))
	e.cache = cache.New()
	e.svcs = resources.New(e.api, e.cache)
	e.signup(t, "Bia", "bia@example.com", "hunter2")

	list, err := e.svcs.Skills.List(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	_, err = e.svcs.Skills.Get(ctx, skill.ID)
	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, 404, apiErr.Status)
}
