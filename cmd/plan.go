package cmd

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quantumrishi/rishi/internal/persona"
	"github.com/quantumrishi/rishi/internal/plan"
	"github.com/quantumrishi/rishi/internal/profile"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Generate a study plan from a profile given as flags",
	Example: `  rishi plan --name Aarav --exam neet --level beginner --context anxiety \
    --topic Genetics --topic "Organic Chemistry" --hours 20`,
	RunE: func(cmd *cobra.Command, args []string) error {
		p, err := profileFromFlags(cmd)
		if err != nil {
			return err
		}

		rt, err := newRuntime(cmd, logQuiet)
		if err != nil {
			return err
		}
		defer rt.Close()

		svc := plan.NewService(rt.provider, plan.DefaultConfig())
		pl, err := svc.Generate(cmd.Context(), p)
		if err != nil {
			rt.log.Error("plan generation failed", "err", err)
			return errors.New(persona.PlanFailure)
		}

		if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(pl)
		}
		printPlan(cmd.OutOrStdout(), pl)
		return nil
	},
}

func profileFromFlags(cmd *cobra.Command) (profile.Profile, error) {
	name, _ := cmd.Flags().GetString("name")
	examFlag, _ := cmd.Flags().GetString("exam")
	levelFlag, _ := cmd.Flags().GetString("level")
	contextFlag, _ := cmd.Flags().GetString("context")
	topics, _ := cmd.Flags().GetStringArray("topic")
	hours, _ := cmd.Flags().GetInt("hours")

	exam, err := profile.ParseExamType(examFlag)
	if err != nil {
		return profile.Profile{}, err
	}
	level, err := profile.ParsePrepLevel(levelFlag)
	if err != nil {
		return profile.Profile{}, err
	}
	consult, err := profile.ParseConsultationContext(contextFlag)
	if err != nil {
		return profile.Profile{}, err
	}

	p, err := profile.New(name, exam, level, topics, hours, consult)
	switch {
	case errors.Is(err, profile.ErrNameRequired):
		return p, errors.New(persona.NameRequired)
	case errors.Is(err, profile.ErrTopicsRequired):
		return p, errors.New(persona.TopicsRequired)
	}
	return p, err
}

func printPlan(w io.Writer, pl *plan.Plan) {
	sep := strings.Repeat("─", 60)

	fmt.Fprintln(w, pl.Title)
	fmt.Fprintln(w, sep)
	fmt.Fprintln(w, pl.Overview)
	fmt.Fprintln(w)

	for i, m := range pl.Modules {
		fmt.Fprintf(w, "%d. %s  [%s]  %s\n", i+1, m.Title, m.Priority, m.EstimatedTime)
		if m.Description != "" {
			fmt.Fprintf(w, "   %s\n", m.Description)
		}
		for _, st := range m.Subtopics {
			fmt.Fprintf(w, "   - %s\n", st)
		}
	}

	if len(pl.Tips) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, persona.AdviceTitle)
		fmt.Fprintln(w, sep)
		for _, tip := range pl.Tips {
			fmt.Fprintf(w, "* %s\n", tip)
		}
	}
}

func bindPlanFlags(c *cobra.Command) {
	c.Flags().String("name", "", "Student name")
	c.Flags().String("exam", "jee", "Exam: jee, neet, boards")
	c.Flags().String("level", "beginner", "Preparation level: beginner, intermediate, advanced")
	c.Flags().String("context", "subject", "Consultation context: anxiety, poor-marks, concentration, subject, others")
	c.Flags().StringArray("topic", nil, "Focus topic (repeatable)")
	c.Flags().Int("hours", profile.DefaultHours, "Available hours per week")
	c.Flags().Bool("json", false, "Print the plan as JSON")
}

func init() {
	bindPlanFlags(planCmd)
}
