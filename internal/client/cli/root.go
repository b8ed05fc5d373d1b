package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/curriculoxpress/cxpress/internal/client/api"
	"github.com/curriculoxpress/cxpress/internal/client/models"
)

func (a *App) getStatus() string {
	if !a.isLoggedIn() {
		return ""
	}
	if subject, _, ok := a.session.Claims(); ok && subject != "" {
		return fmt.Sprintf("(%s)", subject)
	}
	return "(logged in)"
}

// reportError translates gateway errors into operator-friendly lines.
func (a *App) reportError(err error) {
	switch {
	case errors.Is(err, api.ErrUnavailable):
		log.Println("Server unavailable, check your connection and try again")
	case errors.Is(err, api.ErrUnauthorized):
		log.Println("Session expired, please login again")
	default:
		var apiErr *api.Error
		if errors.As(err, &apiErr) && apiErr.Message != "" {
			log.Println(apiErr.Message)
			return
		}
		log.Println(err.Error())
	}
}

// parseKind accepts the archive and statement collection names, with a
// few singular aliases for convenience.
func parseKind(s string) (models.Kind, bool) {
	switch s {
	case "education":
		s = "educations"
	case "experience":
		s = "experiences"
	case "skill":
		s = "skills"
	case "project":
		s = "projects"
	case "statement":
		s = "statements"
	}
	k := models.Kind(s)
	if !k.Valid() || k == models.KindCurriculums {
		return "", false
	}
	return k, true
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to Currículo Xpress CLI (type 'help' for commands)")
	if subject, _, ok := a.session.Claims(); ok {
		log.Printf("Session restored for %s", subject)
	}
	scanner := bufio.NewScanner(os.Stdin)

	for {
		fmt.Printf("cxpress %s> ", a.getStatus())
		if !scanner.Scan() {
			break
		}
		parts := strings.Fields(scanner.Text())
		if len(parts) == 0 {
			continue
		}

		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				fmt.Println("Available commands: list <kind>, show <kind> <id>, add <kind>, edit <kind> <id>, delete <kind> <id>")
				fmt.Println("                    curriculums, curriculum <id>, newcv, delcv <id>, blocks <id>, genai")
				fmt.Println("                    whoami, logout, exit")
				fmt.Println("Kinds: educations, experiences, skills, projects, statements")
			} else {
				fmt.Println("Available commands: register, login, exit")
			}

		case "register":
			a.Register(ctx)
		case "login":
			a.Login(ctx)
		case "logout":
			a.Logout(ctx)
		case "whoami":
			a.Whoami(ctx)

		case "list":
			if len(args) != 1 {
				fmt.Println("Usage: list <kind>")
				continue
			}
			a.listKind(ctx, args[0])
		case "show":
			if len(args) != 2 {
				fmt.Println("Usage: show <kind> <id>")
				continue
			}
			a.showItem(ctx, args[0], args[1])
		case "add":
			if len(args) != 1 {
				fmt.Println("Usage: add <kind>")
				continue
			}
			a.addItem(ctx, args[0])
		case "edit":
			if len(args) != 2 {
				fmt.Println("Usage: edit <kind> <id>")
				continue
			}
			a.editItem(ctx, args[0], args[1])
		case "delete":
			if len(args) != 2 {
				fmt.Println("Usage: delete <kind> <id>")
				continue
			}
			a.deleteItem(ctx, args[0], args[1])

		case "statements":
			a.listKind(ctx, "statements")
		case "curriculums":
			a.listCurriculums(ctx)
		case "curriculum":
			if len(args) != 1 {
				fmt.Println("Usage: curriculum <id>")
				continue
			}
			a.showCurriculum(ctx, args[0])
		case "newcv":
			a.newCurriculum(ctx)
		case "delcv":
			if len(args) != 1 {
				fmt.Println("Usage: delcv <id>")
				continue
			}
			a.deleteCurriculum(ctx, args[0])
		case "blocks":
			if len(args) != 1 {
				fmt.Println("Usage: blocks <id>")
				continue
			}
			a.editBlocks(ctx, args[0])

		case "genai":
			a.generateStatement(ctx)

		case "exit", "quit":
			fmt.Println("Bye!")
			return
		default:
			fmt.Println("Unknown command:", cmd)
		}
	}
}
