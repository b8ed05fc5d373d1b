package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/curriculoxpress/cxpress/internal/client/models"
	"github.com/curriculoxpress/cxpress/internal/client/resources"
)

// The archive commands are dispatched by kind name; each kind has its
// own prompt set and print format, but the transport work is the shared
// Collection surface.

func (a *App) listKind(ctx context.Context, kindArg string) {
	kind, ok := parseKind(kindArg)
	if !ok {
		fmt.Println("Unknown kind:", kindArg)
		return
	}

	switch kind {
	case models.KindEducations:
		listAndPrint(ctx, a, a.services.Educations, printEducation)
	case models.KindExperiences:
		listAndPrint(ctx, a, a.services.Experiences, printExperience)
	case models.KindSkills:
		listAndPrint(ctx, a, a.services.Skills, printSkill)
	case models.KindProjects:
		listAndPrint(ctx, a, a.services.Projects, printProject)
	case models.KindStatements:
		listAndPrint(ctx, a, a.services.Statements, printStatement)
	}
}

func listAndPrint[T any](ctx context.Context, a *App, col *resources.Collection[T], print func(T)) {
	items, err := col.List(ctx)
	if err != nil {
		a.reportError(err)
		return
	}
	if len(items) == 0 {
		fmt.Println("(empty)")
		return
	}
	for _, item := range items {
		print(item)
	}
}

func (a *App) showItem(ctx context.Context, kindArg, id string) {
	kind, ok := parseKind(kindArg)
	if !ok {
		fmt.Println("Unknown kind:", kindArg)
		return
	}

	switch kind {
	case models.KindEducations:
		getAndPrint(ctx, a, a.services.Educations, id, printEducation)
	case models.KindExperiences:
		getAndPrint(ctx, a, a.services.Experiences, id, printExperience)
	case models.KindSkills:
		getAndPrint(ctx, a, a.services.Skills, id, printSkill)
	case models.KindProjects:
		getAndPrint(ctx, a, a.services.Projects, id, printProject)
	case models.KindStatements:
		getAndPrint(ctx, a, a.services.Statements, id, printStatement)
	}
}

func getAndPrint[T any](ctx context.Context, a *App, col *resources.Collection[T], id string, print func(T)) {
	item, err := col.Get(ctx, id)
	if err != nil {
		a.reportError(err)
		return
	}
	if item == nil {
		fmt.Println("(not found)")
		return
	}
	print(*item)
}

func (a *App) addItem(ctx context.Context, kindArg string) {
	kind, ok := parseKind(kindArg)
	if !ok {
		fmt.Println("Unknown kind:", kindArg)
		return
	}

	var err error
	switch kind {
	case models.KindEducations:
		err = createFromPrompt(ctx, a, a.services.Educations, a.educationDetails)
	case models.KindExperiences:
		err = createFromPrompt(ctx, a, a.services.Experiences, a.experienceDetails)
	case models.KindSkills:
		err = createFromPrompt(ctx, a, a.services.Skills, a.skillDetails)
	case models.KindProjects:
		err = createFromPrompt(ctx, a, a.services.Projects, a.projectDetails)
	case models.KindStatements:
		err = createFromPrompt(ctx, a, a.services.Statements, a.statementDetails)
	}
	if err != nil {
		log.Printf("error: %v", err)
	}
}

func createFromPrompt[T any](ctx context.Context, a *App, col *resources.Collection[T], details func() (any, error)) error {
	payload, err := details()
	if err != nil {
		return err
	}

	item, err := col.Create(ctx, payload)
	if err != nil {
		a.reportError(err)
		return err
	}

	fmt.Printf("Created: %+v\n", *item)
	return nil
}

func (a *App) editItem(ctx context.Context, kindArg, id string) {
	kind, ok := parseKind(kindArg)
	if !ok {
		fmt.Println("Unknown kind:", kindArg)
		return
	}

	var err error
	switch kind {
	case models.KindEducations:
		err = updateFromPrompt(ctx, a, a.services.Educations, id, a.educationPatch)
	case models.KindExperiences:
		err = updateFromPrompt(ctx, a, a.services.Experiences, id, a.experiencePatch)
	case models.KindSkills:
		err = updateFromPrompt(ctx, a, a.services.Skills, id, a.skillPatch)
	case models.KindProjects:
		err = updateFromPrompt(ctx, a, a.services.Projects, id, a.projectPatch)
	case models.KindStatements:
		err = updateFromPrompt(ctx, a, a.services.Statements, id, a.statementPatch)
	}
	if err != nil {
		log.Printf("error: %v", err)
	}
}

func updateFromPrompt[T any](ctx context.Context, a *App, col *resources.Collection[T], id string, patch func() (any, error)) error {
	payload, err := patch()
	if err != nil {
		return err
	}

	item, err := col.Update(ctx, id, payload)
	if err != nil {
		a.reportError(err)
		return err
	}

	fmt.Printf("Updated: %+v\n", *item)
	return nil
}

func (a *App) deleteItem(ctx context.Context, kindArg, id string) {
	kind, ok := parseKind(kindArg)
	if !ok {
		fmt.Println("Unknown kind:", kindArg)
		return
	}

	var err error
	switch kind {
	case models.KindEducations:
		err = a.services.Educations.Delete(ctx, id)
	case models.KindExperiences:
		err = a.services.Experiences.Delete(ctx, id)
	case models.KindSkills:
		err = a.services.Skills.Delete(ctx, id)
	case models.KindProjects:
		err = a.services.Projects.Delete(ctx, id)
	case models.KindStatements:
		err = a.services.Statements.Delete(ctx, id)
	}
	if err != nil {
		a.reportError(err)
		return
	}
	fmt.Println("Deleted", id)
}

// ---- prompt sets ----

func (a *App) educationDetails() (any, error) {
	institution, err := getSimpleText(a.reader, "Enter institution", os.Stdout)
	if err != nil {
		return nil, err
	}
	degree, err := getSimpleText(a.reader, "Enter degree", os.Stdout)
	if err != nil {
		return nil, err
	}
	field, err := getSimpleText(a.reader, "Enter field of study", os.Stdout)
	if err != nil {
		return nil, err
	}
	start, err := getSimpleText(a.reader, "Enter start date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return nil, err
	}
	end, err := GetOptionalText(a.reader, "Enter end date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return nil, err
	}
	return models.CreateEducation{
		Institution: institution, Degree: degree, FieldOfStudy: field,
		StartDate: start, EndDate: end,
	}, nil
}

func (a *App) experienceDetails() (any, error) {
	company, err := getSimpleText(a.reader, "Enter company", os.Stdout)
	if err != nil {
		return nil, err
	}
	title, err := getSimpleText(a.reader, "Enter job title", os.Stdout)
	if err != nil {
		return nil, err
	}
	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return nil, err
	}
	start, err := getSimpleText(a.reader, "Enter start date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return nil, err
	}
	end, err := GetOptionalText(a.reader, "Enter end date (YYYY-MM-DD)", os.Stdout)
	if err != nil {
		return nil, err
	}
	return models.CreateExperience{
		Company: company, Title: title, Description: description,
		StartDate: start, EndDate: end,
	}, nil
}

func (a *App) skillDetails() (any, error) {
	name, err := getSimpleText(a.reader, "Enter skill name", os.Stdout)
	if err != nil {
		return nil, err
	}
	level, err := GetOptionalText(a.reader, "Enter level", os.Stdout)
	if err != nil {
		return nil, err
	}
	return models.CreateSkill{Name: name, Level: level}, nil
}

func (a *App) projectDetails() (any, error) {
	name, err := getSimpleText(a.reader, "Enter project name", os.Stdout)
	if err != nil {
		return nil, err
	}
	description, err := GetMultiline(a.reader, "Enter description", os.Stdout)
	if err != nil {
		return nil, err
	}
	url, err := GetOptionalText(a.reader, "Enter URL", os.Stdout)
	if err != nil {
		return nil, err
	}
	return models.CreateProject{Name: name, Description: description, URL: url}, nil
}

func (a *App) statementDetails() (any, error) {
	title, err := getSimpleText(a.reader, "Enter title", os.Stdout)
	if err != nil {
		return nil, err
	}
	text, err := GetMultiline(a.reader, "Enter statement text", os.Stdout)
	if err != nil {
		return nil, err
	}
	return models.CreateStatement{Title: title, Text: text}, nil
}

func (a *App) educationPatch() (any, error) {
	var p models.UpdateEducation
	var err error
	if p.Institution, err = GetOptionalText(a.reader, "Institution", os.Stdout); err != nil {
		return nil, err
	}
	if p.Degree, err = GetOptionalText(a.reader, "Degree", os.Stdout); err != nil {
		return nil, err
	}
	if p.FieldOfStudy, err = GetOptionalText(a.reader, "Field of study", os.Stdout); err != nil {
		return nil, err
	}
	if p.StartDate, err = GetOptionalText(a.reader, "Start date", os.Stdout); err != nil {
		return nil, err
	}
	if p.EndDate, err = GetOptionalText(a.reader, "End date", os.Stdout); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *App) experiencePatch() (any, error) {
	var p models.UpdateExperience
	var err error
	if p.Company, err = GetOptionalText(a.reader, "Company", os.Stdout); err != nil {
		return nil, err
	}
	if p.Title, err = GetOptionalText(a.reader, "Job title", os.Stdout); err != nil {
		return nil, err
	}
	if p.Description, err = GetOptionalText(a.reader, "Description", os.Stdout); err != nil {
		return nil, err
	}
	if p.StartDate, err = GetOptionalText(a.reader, "Start date", os.Stdout); err != nil {
		return nil, err
	}
	if p.EndDate, err = GetOptionalText(a.reader, "End date", os.Stdout); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *App) skillPatch() (any, error) {
	var p models.UpdateSkill
	var err error
	if p.Name, err = GetOptionalText(a.reader, "Name", os.Stdout); err != nil {
		return nil, err
	}
	if p.Level, err = GetOptionalText(a.reader, "Level", os.Stdout); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *App) projectPatch() (any, error) {
	var p models.UpdateProject
	var err error
	if p.Name, err = GetOptionalText(a.reader, "Name", os.Stdout); err != nil {
		return nil, err
	}
	if p.Description, err = GetOptionalText(a.reader, "Description", os.Stdout); err != nil {
		return nil, err
	}
	if p.URL, err = GetOptionalText(a.reader, "URL", os.Stdout); err != nil {
		return nil, err
	}
	return p, nil
}

func (a *App) statementPatch() (any, error) {
	var p models.UpdateStatement
	var err error
	if p.Title, err = GetOptionalText(a.reader, "Title", os.Stdout); err != nil {
		return nil, err
	}
	if p.Text, err = GetOptionalText(a.reader, "Text", os.Stdout); err != nil {
		return nil, err
	}
	return p, nil
}

// ---- print formats ----

func deref(s *string) string {
	if s == nil {
		return "present"
	}
	return *s
}

func printEducation(e models.Education) {
	fmt.Printf("%s  %s, %s (%s, %s - %s)\n",
		e.ID, e.Degree, e.FieldOfStudy, e.Institution, e.StartDate, deref(e.EndDate))
}

func printExperience(e models.Experience) {
	fmt.Printf("%s  %s at %s (%s - %s)\n",
		e.ID, e.Title, e.Company, e.StartDate, deref(e.EndDate))
}

func printSkill(s models.Skill) {
	if s.Level != nil {
		fmt.Printf("%s  %s (%s)\n", s.ID, s.Name, *s.Level)
		return
	}
	fmt.Printf("%s  %s\n", s.ID, s.Name)
}

func printProject(p models.Project) {
	if p.URL != nil {
		fmt.Printf("%s  %s - %s\n", p.ID, p.Name, *p.URL)
		return
	}
	fmt.Printf("%s  %s\n", p.ID, p.Name)
}

func printStatement(s models.Statement) {
	fmt.Printf("%s  %s: %s\n", s.ID, s.Title, s.Text)
}
