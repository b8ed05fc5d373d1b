package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/curriculoxpress/cxpress/internal/client/models"
)

// generateStatement asks the server's AI endpoint for a statement
// grounded on an existing curriculum and tuned to a job description.
func (a *App) generateStatement(ctx context.Context) {
	curriculumID, err := getSimpleText(a.reader, "Enter curriculum id to base the statement on", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if curriculumID == "" {
		log.Println("Curriculum id is required")
		return
	}

	title, err := getSimpleText(a.reader, "Enter a title for the new statement", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}

	jobDescription, err := GetMultiline(a.reader, "Paste the job description", os.Stdout)
	if err != nil {
		log.Printf("error: %v", err)
		return
	}
	if jobDescription == "" {
		log.Println("A job description is required")
		return
	}

	statement, err := a.services.GenerateStatement(ctx, models.GenerateStatement{
		CurriculumID:   curriculumID,
		Title:          title,
		JobDescription: jobDescription,
	})
	if err != nil {
		a.reportError(err)
		return
	}

	fmt.Printf("Generated statement %s\n%s\n", statement.ID, statement.Text)
}
