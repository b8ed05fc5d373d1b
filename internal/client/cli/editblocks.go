package cli

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/curriculoxpress/cxpress/internal/client/models"
)

// editBlocks is the interactive block selection flow. For each archive
// kind the user's full archive is listed with the currently associated
// items marked; the user answers with the ids the curriculum should end
// up with. Only the kinds the user answered for are touched, and only
// the difference against the server state generates calls.
func (a *App) editBlocks(ctx context.Context, id string) {
	curriculum, err := a.services.Curriculums.Get(ctx, id)
	if err != nil {
		a.reportError(err)
		return
	}
	if curriculum == nil {
		fmt.Println("(not found)")
		return
	}

	selections := map[models.Kind][]string{}
	for _, kind := range models.ArchiveKinds() {
		target, picked, err := a.selectBlocks(ctx, curriculum, kind)
		if err != nil {
			log.Printf("error: %v", err)
			return
		}
		if picked {
			selections[kind] = target
		}
	}

	if len(selections) == 0 {
		fmt.Println("Nothing changed")
		return
	}

	if err := a.reconciler.Reconcile(ctx, curriculum, selections); err != nil {
		a.reportError(err)
		fmt.Println("Sync stopped early; run 'blocks' again to finish the remaining changes")
		return
	}
	fmt.Println("Blocks updated")
}

// selectBlocks lists one kind's archive with the current associations
// marked and reads the target id list. picked is false when the user
// pressed Enter, which keeps the current selection untouched.
func (a *App) selectBlocks(ctx context.Context, curriculum *models.Curriculum, kind models.Kind) (target []string, picked bool, err error) {
	associated := map[string]bool{}
	for _, id := range curriculum.AssociatedIDs(kind) {
		associated[id] = true
	}

	fmt.Printf("\n%s:\n", kind)
	if err := a.printArchive(ctx, kind, associated); err != nil {
		return nil, false, err
	}

	prompt := "Ids to include, comma separated ('-' for none, Enter keeps current)"
	return GetIDList(a.reader, prompt, os.Stdout)
}

func (a *App) printArchive(ctx context.Context, kind models.Kind, associated map[string]bool) error {
	mark := func(id string) string {
		if associated[id] {
			return "[x]"
		}
		return "[ ]"
	}

	switch kind {
	case models.KindEducations:
		items, err := a.services.Educations.List(ctx)
		if err != nil {
			return err
		}
		for _, e := range items {
			fmt.Printf("%s ", mark(e.ID))
			printEducation(e)
		}
	case models.KindExperiences:
		items, err := a.services.Experiences.List(ctx)
		if err != nil {
			return err
		}
		for _, e := range items {
			fmt.Printf("%s ", mark(e.ID))
			printExperience(e)
		}
	case models.KindSkills:
		items, err := a.services.Skills.List(ctx)
		if err != nil {
			return err
		}
		for _, s := range items {
			fmt.Printf("%s ", mark(s.ID))
			printSkill(s)
		}
	case models.KindProjects:
		items, err := a.services.Projects.List(ctx)
		if err != nil {
			return err
		}
		for _, p := range items {
			fmt.Printf("%s ", mark(p.ID))
			printProject(p)
		}
	}
	return nil
}
