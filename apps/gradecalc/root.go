package main

import (
	"encoding/json"
	"fmt"
	"io"
	"io/ioutil"
	"path/filepath"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/trezcool/gradebook/core"
	"github.com/trezcool/gradebook/core/grading"
)

const version = "0.1.0"

type options struct {
	scaleName string
	stepsPath string
	jsonOut   bool
	validate  *validator.Validate
}

func newRootCmd() *cobra.Command {
	opts := &options{validate: validator.New()}
	core.InitValidators(opts.validate, core.NewTranslator())

	cmd := &cobra.Command{
		Use:           "gradecalc",
		Short:         "Offline grade & GPA calculator",
		Long:          "gradecalc resolves course grades, period GPAs and what-if simulations from YAML or JSON files.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	cmd.SetVersionTemplate("{{.Name}} v{{.Version}}\n")

	flags := cmd.PersistentFlags()
	flags.StringVarP(&opts.scaleName, "scale", "s", grading.ScaleStandard40, "GPA scale ("+strings.Join(grading.ScaleNames, ", ")+")")
	flags.StringVar(&opts.stepsPath, "steps", "", "file holding the steps of the CUSTOM scale")
	flags.BoolVar(&opts.jsonOut, "json", false, "print JSON instead of tables")

	cmd.AddCommand(
		newCourseCmd(opts),
		newPeriodCmd(opts),
		newSummaryCmd(opts),
		newWhatIfCmd(opts),
		newScalesCmd(opts),
	)
	return cmd
}

func (o *options) scale() (grading.Scale, error) {
	if !grading.IsKnownScale(o.scaleName) {
		return grading.Scale{}, errors.Errorf("unknown scale %q (one of %s)", o.scaleName, strings.Join(grading.ScaleNames, ", "))
	}

	var steps []grading.Step
	if o.stepsPath != "" {
		if err := readFile(o.stepsPath, &steps); err != nil {
			return grading.Scale{}, err
		}
	}
	if o.scaleName == grading.ScaleCustom && len(steps) == 0 {
		return grading.Scale{}, errors.New("the CUSTOM scale needs --steps")
	}
	return grading.ScaleByName(o.scaleName, steps), nil
}

// readCourse reads and validates a course file.
func (o *options) readCourse(path string) (grading.Course, error) {
	var c grading.Course
	if err := readFile(path, &c); err != nil {
		return c, err
	}
	if err := grading.ValidateCourse(o.validate, &c); err != nil {
		return c, errors.Wrapf(err, "invalid course in %s", path)
	}
	return c, nil
}

type periodFile struct {
	Name        string           `json:"name" yaml:"name"`
	IsCompleted bool             `json:"is_completed" yaml:"is_completed"`
	Courses     []grading.Course `json:"courses" yaml:"courses"`
}

// readPeriod reads and validates a grading period file; the file name is the default period name.
func (o *options) readPeriod(path string) (grading.GradingPeriod, error) {
	var pf periodFile
	if err := readFile(path, &pf); err != nil {
		return grading.GradingPeriod{}, err
	}
	if pf.Name == "" {
		pf.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}

	ngp := grading.NewGradingPeriod{Name: pf.Name, IsCompleted: pf.IsCompleted, Courses: pf.Courses}
	if err := ngp.Validate(o.validate); err != nil {
		return grading.GradingPeriod{}, errors.Wrapf(err, "invalid grading period in %s", path)
	}
	return grading.GradingPeriod{Name: ngp.Name, IsCompleted: ngp.IsCompleted, Courses: ngp.Courses}, nil
}

// readFile decodes a YAML (.yaml, .yml) or JSON file into v.
func readFile(path string, v interface{}) error {
	data, err := ioutil.ReadFile(path)
	if err != nil {
		return errors.Wrap(err, "reading file")
	}

	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.UnmarshalStrict(data, v)
	default:
		err = json.Unmarshal(data, v)
	}
	return errors.Wrapf(err, "decoding %s", path)
}

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatPtr formats an optional value; nil means there is no data.
func formatPtr(f *float64, format string) string {
	if f == nil {
		return "N/A"
	}
	return fmt.Sprintf(format, *f)
}

func formatGPA(scale grading.Scale, gpa *float64) string {
	if scale.IsPercentage() {
		return formatPtr(gpa, "%.2f%%")
	}
	return formatPtr(gpa, "%.2f")
}
