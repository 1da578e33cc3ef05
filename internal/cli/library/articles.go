package library

import (
	"fmt"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/cli/courses"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

type ArticleCmd struct {
	List   ArticleListCmd   `cmd:"" help:"List articles." default:"1"`
	New    ArticleNewCmd    `cmd:"" help:"Generate an article."`
	Show   ArticleShowCmd   `cmd:"" help:"Print an article."`
	Move   ArticleMoveCmd   `cmd:"" help:"Move an article into a folder."`
	Delete ArticleDeleteCmd `cmd:"" help:"Delete an article."`
}

func articleID(ctx *cli.Context, prefix string) (string, error) {
	ids := cli.IDsOf(ctx.App.Articles(), func(a models.Article) string { return a.ID })
	return cli.ResolveID("article", prefix, ids)
}

func optionalCourseID(ctx *cli.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	ids := cli.IDsOf(ctx.App.Courses(), func(c models.Course) string { return c.ID })
	return cli.ResolveID("course", prefix, ids)
}

type ArticleListCmd struct{}

func (c *ArticleListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	articles := ctx.App.Articles()
	if len(articles) == 0 {
		ctx.Println("No articles found.")
		return nil
	}
	for _, a := range articles {
		course := ""
		if a.Course != nil {
			course = cli.Faint(" [" + a.Course.Title + "]")
		}
		ctx.Printf("%s  %s%s\n", cli.ShortID(a.ID), a.Title, course)
	}
	return nil
}

type ArticleNewCmd struct {
	Topic  string `arg:"" help:"Article topic."`
	Course string `help:"Related course id."`
	Folder string `help:"Folder id to place the article in."`
}

func (c *ArticleNewCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	courseID, err := optionalCourseID(ctx, c.Course)
	if err != nil {
		return err
	}
	folderID, err := courses.FolderID(ctx, c.Folder)
	if err != nil {
		return err
	}

	ctx.Println(cli.Faint("Writing article..."))
	article, err := ctx.App.GenerateArticle(ctx.Context(), c.Topic, courseID, folderID)
	if err != nil {
		return err
	}
	ctx.Success("Created article %s (%s)", article.Title, cli.ShortID(article.ID))
	return nil
}

type ArticleShowCmd struct {
	ID string `arg:"" help:"Article id or prefix."`
}

func (c *ArticleShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := articleID(ctx, c.ID)
	if err != nil {
		return err
	}
	article, err := ctx.App.Article(id)
	if err != nil {
		return err
	}
	ctx.Println(cli.Heading(article.Title))
	if article.Subtitle != "" {
		ctx.Println(cli.Faint(article.Subtitle))
	}
	ctx.Println()
	ctx.Println(article.BlogPost)
	return nil
}

type ArticleMoveCmd struct {
	ID     string `arg:"" help:"Article id or prefix."`
	Folder string `arg:"" optional:"" help:"Folder id or prefix. Omit to remove from all folders."`
}

func (c *ArticleMoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := articleID(ctx, c.ID)
	if err != nil {
		return err
	}
	folderID, err := courses.FolderID(ctx, c.Folder)
	if err != nil {
		return err
	}
	if err := ctx.App.MoveArticle(id, folderID); err != nil {
		return err
	}
	ctx.Success("Moved article %s", cli.ShortID(id))
	return nil
}

type ArticleDeleteCmd struct {
	ID  string `arg:"" help:"Article id or prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *ArticleDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := articleID(ctx, c.ID)
	if err != nil {
		return err
	}
	article, err := ctx.App.Article(id)
	if err != nil {
		return err
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete article %q?", article.Title), c.Yes); err != nil {
		return err
	}
	if err := ctx.App.DeleteArticle(id); err != nil {
		return err
	}
	ctx.Success("Deleted article %s", article.Title)
	return nil
}
