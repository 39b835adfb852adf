package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"github.com/opal-lang/logix/core/logic"
	"github.com/opal-lang/logix/core/tagname"
	"github.com/opal-lang/logix/runtime/lint"
	"github.com/opal-lang/logix/runtime/xref"
)

func (a *app) checkCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check [rung...]",
		Short: "Check that parentheses and brackets are balanced",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.rungs(cmd, args)
			if err != nil {
				return err
			}

			failed := 0
			var rows []table.Row
			for _, r := range rs {
				status := Colorize("ok", ColorGreen, a.useColor)
				if !r.text.IsBalanced() {
					status = Colorize("unbalanced", ColorRed, a.useColor)
					failed++
				}
				rows = append(rows, table.Row{r.loc.String(), status, r.text.String()})
			}
			renderTable(cmd.OutOrStdout(), a.output, table.Row{"Location", "Status", "Rung"}, rows)

			if failed > 0 {
				return &exitError{code: 1}
			}
			return nil
		},
	}
}

func (a *app) instructionsCmd() *cobra.Command {
	var key, like string
	cmd := &cobra.Command{
		Use:   "instructions [rung...]",
		Short: "List call units in discovery order",
		RunE: func(cmd *cobra.Command, args []string) error {
			var likeInst logic.Instruction
			if like != "" {
				inst, err := logic.ParseInstruction(like)
				if err != nil {
					return err
				}
				likeInst = inst
			}

			rs, err := a.rungs(cmd, args)
			if err != nil {
				return err
			}

			var rows []table.Row
			for _, r := range rs {
				units := r.text.Instructions()
				switch {
				case like != "":
					units = r.text.InstructionsLike(likeInst)
				case key != "":
					units = r.text.InstructionsOf(key)
				}
				for unit := range units {
					known := ""
					if _, ok := a.registry.Lookup(unit.Key()); !ok {
						known = Colorize("unknown", ColorYellow, a.useColor)
					}
					rows = append(rows, table.Row{r.loc.String(), unit.String(), known})
				}
			}
			renderTable(cmd.OutOrStdout(), a.output, table.Row{"Location", "Instruction", "Note"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&key, "key", "", "Only units with this instruction key")
	cmd.Flags().StringVar(&like, "like", "", "Only units equivalent to this instruction, e.g. XIC(Start)")
	cmd.MarkFlagsMutuallyExclusive("key", "like")
	return cmd
}

func (a *app) tagsCmd() *cobra.Command {
	var in string
	cmd := &cobra.Command{
		Use:   "tags [rung...]",
		Short: "List tag references in discovery order",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.rungs(cmd, args)
			if err != nil {
				return err
			}

			var rows []table.Row
			for _, r := range rs {
				tags := r.text.Tags()
				if in != "" {
					tags = r.text.TagsIn(in)
				}
				for tag := range tags {
					rows = append(rows, table.Row{r.loc.String(), tag.String(), tag.Root(), tag.Member()})
				}
			}
			renderTable(cmd.OutOrStdout(), a.output, table.Row{"Location", "Tag", "Root", "Member"}, rows)
			return nil
		},
	}
	cmd.Flags().StringVar(&in, "in", "", "Only tags in arguments of this instruction key")
	return cmd
}

func (a *app) keywordsCmd() *cobra.Command {
	var all bool
	cmd := &cobra.Command{
		Use:   "keywords [statement...]",
		Short: "List structured-text keywords",
		RunE: func(cmd *cobra.Command, args []string) error {
			if all {
				var rows []table.Row
				for _, word := range logic.Keywords() {
					rows = append(rows, table.Row{word})
				}
				renderTable(cmd.OutOrStdout(), a.output, table.Row{"Keyword"}, rows)
				return nil
			}

			rs, err := a.rungs(cmd, args)
			if err != nil {
				return err
			}
			var rows []table.Row
			for _, r := range rs {
				for word := range r.text.Keywords() {
					rows = append(rows, table.Row{r.loc.String(), word})
				}
			}
			renderTable(cmd.OutOrStdout(), a.output, table.Row{"Location", "Keyword"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&all, "all", false, "List every reserved word instead of reading input")
	return cmd
}

func (a *app) parseCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "parse [rung...]",
		Short: "Parse every call unit into a key and typed arguments",
		RunE: func(cmd *cobra.Command, args []string) error {
			rs, err := a.rungs(cmd, args)
			if err != nil {
				return err
			}

			var rows []table.Row
			for _, r := range rs {
				insts, err := r.text.ParseInstructions()
				if err != nil {
					return &CLIError{
						Type:    "input",
						Message: fmt.Sprintf("cannot parse rung %s", r.loc),
						Details: err.Error(),
					}
				}
				for _, inst := range insts {
					parts := make([]string, 0, len(inst.Arguments()))
					for _, arg := range inst.Arguments() {
						parts = append(parts, describeArgument(arg))
					}
					rows = append(rows, table.Row{r.loc.String(), inst.Key(), joinArgs(parts)})
				}
			}
			renderTable(cmd.OutOrStdout(), a.output, table.Row{"Location", "Key", "Arguments"}, rows)
			return nil
		},
	}
}

func describeArgument(arg logic.Argument) string {
	if value, err := arg.AsImmediate(); err == nil {
		return fmt.Sprintf("%s %s:%s", arg.Kind(), value.Type(), arg)
	}
	return fmt.Sprintf("%s:%s", arg.Kind(), arg)
}

func (a *app) keysCmd() *cobra.Command {
	var conditional, routine, task bool
	cmd := &cobra.Command{
		Use:   "keys",
		Short: "List known instruction keys",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			defs := a.registry.Filter(func(d logic.Definition) bool {
				switch {
				case conditional:
					return d.Conditional
				case routine:
					return d.CallsRoutine
				case task:
					return d.CallsTask
				}
				return true
			})

			var rows []table.Row
			for _, d := range defs {
				rows = append(rows, table.Row{d.Key, mark(d.Conditional), mark(d.CallsRoutine), mark(d.CallsTask), d.Description})
			}
			renderTable(cmd.OutOrStdout(), a.output, table.Row{"Key", "Conditional", "Routine", "Task", "Description"}, rows)
			return nil
		},
	}
	cmd.Flags().BoolVar(&conditional, "conditional", false, "Only conditional instructions")
	cmd.Flags().BoolVar(&routine, "routine", false, "Only instructions that call a routine")
	cmd.Flags().BoolVar(&task, "task", false, "Only instructions that trigger a task")
	cmd.MarkFlagsMutuallyExclusive("conditional", "routine", "task")
	return cmd
}

func (a *app) lookupCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lookup KEY",
		Short: "Show the canonical instruction for a key",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inst, err := a.registry.Get(args[0])
			if err != nil {
				return err
			}
			def, _ := a.registry.Definition(inst.Key())
			renderTable(cmd.OutOrStdout(), a.output,
				table.Row{"Key", "Conditional", "Routine", "Task", "Description"},
				[]table.Row{{inst.Key(), mark(def.Conditional), mark(def.CallsRoutine), mark(def.CallsTask), def.Description}})
			return nil
		},
	}
}

func (a *app) index(rs []rung) (*xref.Index, error) {
	x := xref.New(xref.WithLogger(a.logger))
	for _, r := range rs {
		if err := x.Add(r.loc, r.text); err != nil {
			return nil, err
		}
	}
	return x, nil
}

func (a *app) xrefCmd() *cobra.Command {
	var tag, match, key string
	var digest bool
	cmd := &cobra.Command{
		Use:   "xref [rung...]",
		Short: "Cross-reference tags and instructions across rungs",
		RunE: func(cmd *cobra.Command, args []string) error {
			comparer, ok := tagname.ComparerByName(match)
			if !ok {
				return &CLIError{
					Type:    "usage",
					Message: fmt.Sprintf("unknown match mode %q", match),
					Hint:    "use one of: " + strings.Join(tagname.ComparerNames(), ", "),
				}
			}
			var name tagname.TagName
			if tag != "" {
				parsed, err := tagname.Parse(tag)
				if err != nil {
					return err
				}
				name = parsed
			}

			rs, err := a.rungs(cmd, args)
			if err != nil {
				return err
			}
			x, err := a.index(rs)
			if err != nil {
				return err
			}
			w := cmd.OutOrStdout()

			if digest {
				sum, err := x.Digest()
				if err != nil {
					return err
				}
				_, _ = fmt.Fprintln(w, sum)
				return nil
			}

			switch {
			case tag != "":
				var rows []table.Row
				for _, ref := range x.TagReferences(name, comparer) {
					rows = append(rows, table.Row{ref.Location.String(), ref.Tag.String()})
				}
				renderTable(w, a.output, table.Row{"Location", "Tag"}, rows)
			case key != "":
				var rows []table.Row
				for _, ref := range x.InstructionReferences(key) {
					rows = append(rows, table.Row{ref.Location.String(), ref.Unit.String()})
				}
				renderTable(w, a.output, table.Row{"Location", "Instruction"}, rows)
			default:
				renderCounts(w, a.output, "Tag", x.Tags())
				renderCounts(w, a.output, "Key", x.Keys())
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&tag, "tag", "", "Show references to this tag")
	cmd.Flags().StringVar(&match, "match", "exact", "Tag match mode: "+strings.Join(tagname.ComparerNames(), ", "))
	cmd.Flags().StringVar(&key, "key", "", "Show calls of this instruction key")
	cmd.Flags().BoolVar(&digest, "digest", false, "Print the content digest of the rung set")
	cmd.MarkFlagsMutuallyExclusive("tag", "key", "digest")
	return cmd
}

func renderCounts(w io.Writer, format, label string, counts []xref.Count) {
	rows := make([]table.Row, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, table.Row{c.Name, c.Count})
	}
	renderTable(w, format, table.Row{label, "Count"}, rows)
}

func (a *app) lintCmd() *cobra.Command {
	var policy string
	cmd := &cobra.Command{
		Use:   "lint [rung...]",
		Short: "Report unbalanced rungs, malformed calls and unknown keys",
		RunE: func(cmd *cobra.Command, args []string) error {
			p := a.cfg.UnknownKeys()
			if policy != "" {
				parsed, err := lint.ParsePolicy(policy)
				if err != nil {
					return err
				}
				p = parsed
			}

			rs, err := a.rungs(cmd, args)
			if err != nil {
				return err
			}
			x, err := a.index(rs)
			if err != nil {
				return err
			}

			linter := lint.New(a.registry, lint.WithUnknownKeys(p), lint.WithLogger(a.logger))
			diags := linter.Index(x)

			var rows []table.Row
			for _, d := range diags {
				rows = append(rows, table.Row{
					d.Location.String(),
					a.severity(d.Severity),
					string(d.Code),
					d.Message,
					a.suggestion(d.Suggestion),
				})
			}
			renderTable(cmd.OutOrStdout(), a.output, table.Row{"Location", "Severity", "Code", "Message", "Suggestion"}, rows)

			if lint.HasErrors(diags) {
				return &exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&policy, "unknown-keys", "", "Override the config policy: error, warn or ignore")
	return cmd
}

func (a *app) suggestion(s string) string {
	if s == "" {
		return ""
	}
	return Colorize(s, ColorCyan, a.useColor)
}

func (a *app) severity(s lint.Severity) string {
	color := ColorYellow
	if s == lint.SeverityError {
		color = ColorRed
	}
	return Colorize(s.String(), color, a.useColor)
}
