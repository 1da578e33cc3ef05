package system

import (
	"encoding/json"
	"fmt"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
)

type DebugCmd struct {
	DBPath DebugDBPathCmd `cmd:"" name:"db-path" help:"Show the storage location."`
	Dump   DebugDumpCmd   `cmd:"" help:"Dump stored data as JSON."`
}

type DebugDBPathCmd struct{}

func (cmd *DebugDBPathCmd) Run(ctx *cli.Context) error {
	return printJSON(ctx, map[string]string{
		"path":   maskPassword(ctx.Store.GetConfigPath()),
		"config": ctx.Loader.Path(),
	})
}

type DebugDumpCmd struct {
	What string `arg:"" optional:"" default:"all" enum:"all,profile,stats,courses,articles,projects,folders,plans,habits,tasks" help:"Collection to dump (${enum})."`
}

func (cmd *DebugDumpCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	app := ctx.App
	data := app.Snapshot()

	var v any
	switch cmd.What {
	case "profile":
		v = app.Profile()
	case "stats":
		v = app.Stats()
	case "courses":
		v = data.Courses
	case "articles":
		v = data.Articles
	case "projects":
		v = data.Projects
	case "folders":
		v = data.Folders
	case "plans":
		v = data.LearningPlans
	case "habits":
		v = data.Habits
	case "tasks":
		v = app.BackgroundTasks()
	default:
		v = data
	}
	return printJSON(ctx, v)
}

func printJSON(ctx *cli.Context, v any) error {
	jsonBytes, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	ctx.Println(string(jsonBytes))
	return nil
}
