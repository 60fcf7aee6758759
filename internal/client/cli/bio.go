package cli

import (
	"errors"
	"flag"
	"io"
	"strings"

	"github.com/bioqr/bioqr-go/internal/model"
)

const defaultQROutput = "bio-qr.png"

var errNameRequired = errors.New("-name is required")

// listFlag collects a repeatable string flag.
type listFlag []string

func (l *listFlag) String() string { return strings.Join(*l, ",") }

func (l *listFlag) Set(v string) error {
	*l = append(*l, v)
	return nil
}

type bioForm struct {
	bio    model.BioRequest
	output string
}

func parseBioFlags(args []string, out io.Writer) (bioForm, error) {
	var (
		form                            bioForm
		skills, tools, other            listFlag
		projects, experience, education listFlag
		age                             string
	)

	fs := flag.NewFlagSet("bio", flag.ContinueOnError)
	fs.SetOutput(out)
	fs.StringVar(&form.bio.Name, "name", "", "full name (required)")
	fs.StringVar(&form.bio.Email, "email", "", "contact email")
	fs.StringVar(&form.bio.Phone, "phone", "", "phone number")
	fs.StringVar(&age, "age", "", "age")
	fs.StringVar(&form.bio.Role, "role", "", "current role")
	fs.StringVar(&form.bio.Qualification, "qualification", "", "highest qualification")
	fs.StringVar(&form.bio.Address, "address", "", "postal address")
	fs.StringVar(&form.bio.Description, "description", "", "short description")
	fs.Var(&skills, "skill", "a skill (repeatable)")
	fs.Var(&tools, "tool", "a tool (repeatable)")
	fs.Var(&other, "other", "any other entry (repeatable)")
	fs.Var(&projects, "project", "a project (repeatable)")
	fs.Var(&experience, "experience", "a position held (repeatable)")
	fs.Var(&education, "education", "a degree or course (repeatable)")
	fs.StringVar(&form.output, "o", defaultQROutput, "output PNG file")

	if err := fs.Parse(args); err != nil {
		return bioForm{}, err
	}
	if strings.TrimSpace(form.bio.Name) == "" {
		return bioForm{}, errNameRequired
	}

	form.bio.Age = model.Text(age)
	form.bio.Skills = model.JoinText(skills)
	form.bio.Tools = model.JoinText(tools)
	form.bio.Others = model.JoinText(other)
	form.bio.Projects = projects
	form.bio.Experience = experience
	form.bio.Education = education
	return form, nil
}
