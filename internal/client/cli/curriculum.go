package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/curriculoxpress/cxpress/internal/client/models"
)

func (a *App) listCurriculums(ctx context.Context) {
	items, err := a.services.Curriculums.List(ctx)
	if err != nil {
		a.reportError(err)
		return
	}
	if len(items) == 0 {
		fmt.Println("(empty)")
		return
	}
	for _, c := range items {
		title := c.Title
		if title == "" {
			title = "(untitled)"
		}
		fmt.Printf("%s  %s\n", c.ID, title)
	}
}

func (a *App) showCurriculum(ctx context.Context, id string) {
	c, err := a.services.Curriculums.Get(ctx, id)
	if err != nil {
		a.reportError(err)
		return
	}
	if c == nil {
		fmt.Println("(not found)")
		return
	}

	fmt.Printf("Curriculum %s  %s\n", c.ID, c.Title)
	if c.Statement != nil {
		fmt.Printf("Statement: %s\n%s\n", c.Statement.Title, c.Statement.Text)
	}

	fmt.Println("Educations:")
	for _, e := range c.Educations {
		fmt.Print("  ")
		printEducation(e)
	}
	fmt.Println("Experiences:")
	for _, e := range c.Experiences {
		fmt.Print("  ")
		printExperience(e)
	}
	fmt.Println("Skills:")
	for _, s := range c.Skills {
		fmt.Print("  ")
		printSkill(s)
	}
	fmt.Println("Projects:")
	for _, p := range c.Projects {
		fmt.Print("  ")
		printProject(p)
	}
}

// newCurriculum creates a curriculum from an existing statement. The
// available statements are listed first so the user can pick an id.
func (a *App) newCurriculum(ctx context.Context) {
	statements, err := a.services.Statements.List(ctx)
	if err != nil {
		a.reportError(err)
		return
	}
	if len(statements) == 0 {
		fmt.Println("No statements yet; create one with 'add statement' first")
		return
	}
	for _, s := range statements {
		printStatement(s)
	}

	statementID, err := getSimpleText(a.reader, "Enter statement id", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if statementID == "" {
		log.Println("Statement id is required")
		return
	}

	title, err := getSimpleText(a.reader, "Enter curriculum title", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	c, err := a.services.Curriculums.Create(ctx,
		models.CreateCurriculum{StatementID: statementID, Title: title})
	if err != nil {
		a.reportError(err)
		return
	}

	fmt.Printf("Created curriculum %s\n", c.ID)
}

func (a *App) deleteCurriculum(ctx context.Context, id string) {
	if err := a.services.Curriculums.Delete(ctx, id); err != nil {
		a.reportError(err)
		return
	}
	fmt.Println("Deleted", id)
}
