package library

import (
	"fmt"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/courses"
)

type FolderCmd struct {
	List   FolderListCmd   `cmd:"" help:"List folders and their contents." default:"1"`
	New    FolderNewCmd    `cmd:"" help:"Create a folder."`
	Rename FolderRenameCmd `cmd:"" help:"Rename a folder."`
	Delete FolderDeleteCmd `cmd:"" help:"Delete a folder. Its courses and articles are kept."`
}

type FolderListCmd struct{}

func (c *FolderListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	folders := ctx.App.Folders()
	if len(folders) == 0 {
		ctx.Println("No folders found.")
		return nil
	}

	for _, f := range folders {
		ctx.Printf("%s  %s %s\n", cli.ShortID(f.ID), cli.Heading(f.Name),
			cli.Faint(fmt.Sprintf("(%d courses, %d articles)", len(f.CourseIDs), len(f.ArticleIDs))))
		for _, id := range f.CourseIDs {
			if course, err := ctx.App.Course(id); err == nil {
				ctx.Printf("    course   %s  %s\n", cli.ShortID(id), course.Title)
			}
		}
		for _, id := range f.ArticleIDs {
			if article, err := ctx.App.Article(id); err == nil {
				ctx.Printf("    article  %s  %s\n", cli.ShortID(id), article.Title)
			}
		}
	}
	return nil
}

type FolderNewCmd struct {
	Name string `arg:"" help:"Folder name."`
}

func (c *FolderNewCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	folder, err := ctx.App.CreateFolder(c.Name)
	if err != nil {
		return err
	}
	ctx.Success("Created folder %s (%s)", folder.Name, cli.ShortID(folder.ID))
	return nil
}

type FolderRenameCmd struct {
	ID   string `arg:"" help:"Folder id or prefix."`
	Name string `arg:"" help:"New name."`
}

func (c *FolderRenameCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := courses.FolderID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.App.RenameFolder(id, c.Name); err != nil {
		return err
	}
	ctx.Success("Renamed folder to %s", c.Name)
	return nil
}

type FolderDeleteCmd struct {
	ID  string `arg:"" help:"Folder id or prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *FolderDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := courses.FolderID(ctx, c.ID)
	if err != nil {
		return err
	}
	folder, err := ctx.App.Folder(id)
	if err != nil {
		return err
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete folder %q?", folder.Name), c.Yes); err != nil {
		return err
	}
	if err := ctx.App.DeleteFolder(id); err != nil {
		return err
	}
	ctx.Success("Deleted folder %s", folder.Name)
	return nil
}
