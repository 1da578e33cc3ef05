package courses

import (
	"fmt"
	"strings"

	"github.com/Sai2211201144/learn-ai-2/internal/cli"
	"github.com/Sai2211201144/learn-ai-2/internal/generator"
	"github.com/Sai2211201144/learn-ai-2/internal/models"
)

type CourseCmd struct {
	List   CourseListCmd   `cmd:"" help:"List courses with progress." default:"1"`
	New    CourseNewCmd    `cmd:"" help:"Generate a new course."`
	Show   CourseShowCmd   `cmd:"" help:"Show a course outline."`
	Select CourseSelectCmd `cmd:"" help:"Mark a course as the active one."`
	Toggle CourseToggleCmd `cmd:"" help:"Toggle completion of a lesson."`
	Note   CourseNoteCmd   `cmd:"" help:"Save a note on a lesson."`
	Move   CourseMoveCmd   `cmd:"" help:"Move a course into a folder."`
	Delete CourseDeleteCmd `cmd:"" help:"Delete a course."`
}

func courseID(ctx *cli.Context, prefix string) (string, error) {
	ids := cli.IDsOf(ctx.App.Courses(), func(c models.Course) string { return c.ID })
	return cli.ResolveID("course", prefix, ids)
}

func lessonID(course models.Course, prefix string) (string, error) {
	var ids []string
	for _, t := range course.Topics {
		for _, s := range t.Subtopics {
			ids = append(ids, s.ID)
		}
	}
	return cli.ResolveID("lesson", prefix, ids)
}

// FolderID resolves an optional folder prefix. Empty stays empty.
func FolderID(ctx *cli.Context, prefix string) (string, error) {
	if prefix == "" {
		return "", nil
	}
	ids := cli.IDsOf(ctx.App.Folders(), func(f models.Folder) string { return f.ID })
	return cli.ResolveID("folder", prefix, ids)
}

type CourseListCmd struct{}

func (c *CourseListCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	courses := ctx.App.Courses()
	if len(courses) == 0 {
		ctx.Println("No courses yet. Create one with 'learnai course new <topic>'.")
		return nil
	}

	active := ctx.App.LastActiveCourseID()
	for _, course := range courses {
		pct, _ := ctx.App.CoursePercent(course.ID)
		marker := " "
		if course.ID == active {
			marker = "*"
		}
		ctx.Printf("%s %s  %s %5.1f%%  %s %s\n",
			marker,
			cli.ShortID(course.ID),
			cli.ProgressBar(pct, 20),
			pct,
			course.Title,
			cli.Faint("("+string(course.KnowledgeLevel)+")"),
		)
	}
	return nil
}

type CourseNewCmd struct {
	Topic      string `arg:"" help:"What you want to learn."`
	Level      string `help:"Knowledge level." enum:"beginner,intermediate,advanced" default:"beginner"`
	Goal       string `help:"Learning goal." enum:"project,interview,theory,curiosity" default:"curiosity"`
	Style      string `help:"Learning style." enum:"visual,code,balanced,interactive" default:"balanced"`
	Technology string `help:"Technology or language to focus on." name:"tech"`
	Theory     bool   `help:"Include theory-heavy lessons."`
	Folder     string `help:"Folder id to place the course in."`
}

func (c *CourseNewCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	folderID, err := FolderID(ctx, c.Folder)
	if err != nil {
		return err
	}

	ctx.Println(cli.Faint("Generating learning path..."))
	course, err := ctx.App.GenerateCourse(ctx.Context(), generator.CourseRequest{
		Topic:         c.Topic,
		Level:         models.KnowledgeLevel(c.Level),
		Goal:          models.LearningGoal(c.Goal),
		Style:         models.LearningStyle(c.Style),
		Technology:    c.Technology,
		IncludeTheory: c.Theory,
	}, folderID)
	if err != nil {
		return err
	}

	ctx.Success("Created course %s (%s) with %d lessons", course.Title, cli.ShortID(course.ID), course.ItemCount())
	announce(ctx)
	return nil
}

type CourseShowCmd struct {
	ID string `arg:"" help:"Course id or prefix."`
}

func (c *CourseShowCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := courseID(ctx, c.ID)
	if err != nil {
		return err
	}
	course, err := ctx.App.Course(id)
	if err != nil {
		return err
	}
	pct, _ := ctx.App.CoursePercent(id)

	ctx.Println(cli.Heading(course.Title))
	if course.Description != "" {
		ctx.Println(course.Description)
	}
	ctx.Printf("Level: %s  Progress: %s %.1f%%\n\n", course.KnowledgeLevel, cli.ProgressBar(pct, 20), pct)

	for _, topic := range course.Topics {
		ctx.Println(cli.Heading(topic.Title))
		for _, s := range topic.Subtopics {
			_, done := course.Progress[s.ID]
			ctx.Printf("  %s %s  %s %s\n", cli.Checkbox(done), cli.ShortID(s.ID), s.Title, cli.Faint(string(s.Type)))
			if s.Notes != "" {
				ctx.Printf("      %s\n", cli.Faint("note: "+strings.ReplaceAll(s.Notes, "\n", " ")))
			}
		}
	}
	return nil
}

type CourseSelectCmd struct {
	ID string `arg:"" help:"Course id or prefix."`
}

func (c *CourseSelectCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := courseID(ctx, c.ID)
	if err != nil {
		return err
	}
	if err := ctx.App.SelectCourse(id); err != nil {
		return err
	}
	ctx.Success("Active course set to %s", cli.ShortID(id))
	return nil
}

type CourseToggleCmd struct {
	ID     string `arg:"" help:"Course id or prefix."`
	Lesson string `arg:"" help:"Lesson id or prefix."`
}

func (c *CourseToggleCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := courseID(ctx, c.ID)
	if err != nil {
		return err
	}
	course, err := ctx.App.Course(id)
	if err != nil {
		return err
	}
	lesson, err := lessonID(course, c.Lesson)
	if err != nil {
		return err
	}

	completed, err := ctx.App.ToggleItemComplete(id, lesson)
	if err != nil {
		return err
	}
	pct, _ := ctx.App.CoursePercent(id)
	state := "incomplete"
	if completed {
		state = "complete"
	}
	ctx.Success("Marked lesson %s %s (%.1f%% done)", cli.ShortID(lesson), state, pct)
	announce(ctx)
	return nil
}

type CourseNoteCmd struct {
	ID     string `arg:"" help:"Course id or prefix."`
	Lesson string `arg:"" help:"Lesson id or prefix."`
	Note   string `arg:"" help:"Note text. Empty clears the note."`
}

func (c *CourseNoteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := courseID(ctx, c.ID)
	if err != nil {
		return err
	}
	course, err := ctx.App.Course(id)
	if err != nil {
		return err
	}
	lesson, err := lessonID(course, c.Lesson)
	if err != nil {
		return err
	}
	if err := ctx.App.SaveItemNote(id, lesson, c.Note); err != nil {
		return err
	}
	ctx.Success("Saved note on lesson %s", cli.ShortID(lesson))
	return nil
}

type CourseMoveCmd struct {
	ID     string `arg:"" help:"Course id or prefix."`
	Folder string `arg:"" optional:"" help:"Folder id or prefix. Omit to remove from all folders."`
}

func (c *CourseMoveCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := courseID(ctx, c.ID)
	if err != nil {
		return err
	}
	folderID, err := FolderID(ctx, c.Folder)
	if err != nil {
		return err
	}
	if err := ctx.App.MoveCourse(id, folderID); err != nil {
		return err
	}
	if folderID == "" {
		ctx.Success("Removed course %s from its folder", cli.ShortID(id))
	} else {
		ctx.Success("Moved course %s to folder %s", cli.ShortID(id), cli.ShortID(folderID))
	}
	return nil
}

type CourseDeleteCmd struct {
	ID  string `arg:"" help:"Course id or prefix."`
	Yes bool   `short:"y" help:"Skip the confirmation prompt."`
}

func (c *CourseDeleteCmd) Run(ctx *cli.Context) error {
	if err := ctx.RequireApp(); err != nil {
		return err
	}
	id, err := courseID(ctx, c.ID)
	if err != nil {
		return err
	}
	course, err := ctx.App.Course(id)
	if err != nil {
		return err
	}
	if err := ctx.Confirm(fmt.Sprintf("Delete course %q and its progress?", course.Title), c.Yes); err != nil {
		return err
	}
	if err := ctx.App.DeleteCourse(id); err != nil {
		return err
	}
	ctx.Success("Deleted course %s", course.Title)
	return nil
}

// announce prints achievements unlocked by the last mutation.
func announce(ctx *cli.Context) {
	for _, a := range ctx.App.DrainUnlocked() {
		ctx.Println(cli.Heading("🏆 Achievement unlocked: "+a.Title) + " " + cli.Faint(a.Description))
	}
}
