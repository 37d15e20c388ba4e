package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/noah-isme/student-roster/internal/models"
	"github.com/noah-isme/student-roster/internal/roster"
)

var errHelp = errors.New("help provided")

type commandLine struct {
	model  *roster.Model
	in     *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

// courseList collects repeated -course flags.
type courseList []string

func (c *courseList) String() string {
	return strings.Join(*c, ", ")
}

func (c *courseList) Set(value string) error {
	*c = append(*c, value)
	return nil
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.errOut, "Usage:")
	fmt.Fprintln(cli.errOut, "  list [-cohort COHORT] [-course COURSE] [-retry] - show the roster")
	fmt.Fprintln(cli.errOut, "  add -name NAME -cohort COHORT -course COURSE [-course COURSE...] - enroll a student")
	fmt.Fprintln(cli.errOut, "  catalog - show cohorts and course labels")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}

	listCmd := flag.NewFlagSet("list", flag.ContinueOnError)
	listCmd.SetOutput(cli.errOut)
	listCohort := listCmd.String("cohort", "", "Only students enrolled in this cohort, e.g. \"AY 2024-25\".")
	listCourse := listCmd.String("course", "", "Only students taking this course, e.g. \"CBSE 9 Mathematics\".")
	listRetry := listCmd.Bool("retry", false, "Offer to retry when loading fails.")

	addCmd := flag.NewFlagSet("add", flag.ContinueOnError)
	addCmd.SetOutput(cli.errOut)
	addName := addCmd.String("name", "", "The student's name.")
	addCohort := addCmd.String("cohort", "", "The student's cohort.")
	var addCourses courseList
	addCmd.Var(&addCourses, "course", "A course label. Repeat for several courses.")

	switch args[1] {
	case "list":
		if err := listCmd.Parse(args[2:]); err != nil {
			return helpOr(err)
		}
		return cli.list(ctx, roster.Filter{Cohort: *listCohort, Course: *listCourse}, *listRetry)
	case "add":
		if err := addCmd.Parse(args[2:]); err != nil {
			return helpOr(err)
		}
		return cli.add(ctx, models.CreateStudentRequest{Name: *addName, Cohort: *addCohort, Courses: addCourses})
	case "catalog":
		return cli.catalog()
	default:
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) list(ctx context.Context, filter roster.Filter, offerRetry bool) error {
	cli.model.Subscribe(func(s roster.State) {
		if s.Loading {
			fmt.Fprintln(cli.errOut, "Loading students...")
		}
	})

	err := cli.model.Load(ctx, filter)
	for err != nil && offerRetry && cli.confirm(cli.model.State().Err+" Retry? [y/N] ") {
		err = cli.model.Retry(ctx)
	}
	if err != nil {
		fmt.Fprintf(cli.errOut, "%s\n", cli.model.State().Err)
		return err
	}

	return cli.render(cli.model.State().Visible)
}

func (cli *commandLine) add(ctx context.Context, candidate models.CreateStudentRequest) error {
	student, err := cli.model.Create(ctx, candidate)
	if err != nil {
		var verr *roster.ValidationError
		if errors.As(err, &verr) {
			return fmt.Errorf("invalid %s: %s", verr.Field, verr.Message)
		}
		fmt.Fprintf(cli.errOut, "%s\n", cli.model.State().CreateErr)
		return err
	}
	fmt.Fprintf(cli.out, "Enrolled %s (%s)\n", student.Name, student.ID)
	return cli.render([]models.Student{*student})
}

func (cli *commandLine) catalog() error {
	catalog := models.DefaultCatalog()
	fmt.Fprintln(cli.out, "Cohorts:")
	for _, cohort := range catalog.Cohorts {
		fmt.Fprintf(cli.out, "  %s\n", cohort)
	}
	fmt.Fprintln(cli.out, "Courses:")
	for _, course := range catalog.Courses() {
		fmt.Fprintf(cli.out, "  %s\n", course)
	}
	return nil
}

func (cli *commandLine) render(students []models.Student) error {
	if len(students) == 0 {
		fmt.Fprintln(cli.out, "No students found.")
		return nil
	}
	w := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, strings.Join(models.RosterHeaders, "\t"))
	for _, s := range students {
		fmt.Fprintln(w, strings.Join(s.RosterRow(), "\t"))
	}
	return w.Flush()
}

func (cli *commandLine) confirm(prompt string) bool {
	fmt.Fprintf(cli.errOut, "%s", prompt)
	answer, err := cli.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}

func helpOr(err error) error {
	if errors.Is(err, flag.ErrHelp) {
		return errHelp
	}
	return err
}
