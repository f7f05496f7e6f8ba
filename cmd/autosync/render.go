package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/tidwall/pretty"

	"github.com/conn-castle/dep-autosync/internal/autosync"
	"github.com/conn-castle/dep-autosync/internal/messages"
	"github.com/conn-castle/dep-autosync/internal/risk"
	"github.com/conn-castle/dep-autosync/internal/terminal"
	"github.com/conn-castle/dep-autosync/internal/warnings"
)

// renderResult writes result as indented JSON or as a human summary.
func renderResult(w io.Writer, result autosync.Result, asJSON bool) error {
	if asJSON {
		payload, err := json.Marshal(result)
		if err != nil {
			return err
		}
		_, err = w.Write(pretty.Pretty(payload))
		return err
	}
	return renderText(w, result)
}

func renderText(w io.Writer, result autosync.Result) error {
	red := newColor(w, color.FgRed)
	green := newColor(w, color.FgGreen)
	yellow := newColor(w, color.FgYellow)

	var b strings.Builder
	if result.RunID != "" {
		fmt.Fprintf(&b, messages.RenderHeaderFmt, result.RunID)
	} else {
		fmt.Fprintln(&b, messages.RenderAssessHeader)
	}
	assessment := result.Assessment
	counts := assessment.Counts
	fmt.Fprintf(&b, messages.RenderCountsFmt, counts.Major, counts.Minor, counts.Patch, len(assessment.Unclassified))
	for _, tier := range risk.Levels {
		fmt.Fprintf(&b, messages.RenderTierLineFmt, tier, joinNames(assessment.Packages(tier)))
	}
	if len(assessment.Unclassified) > 0 {
		fmt.Fprintf(&b, messages.RenderUnclassifiedFmt, joinNames(assessment.Unclassified))
	}
	if _, err := io.WriteString(w, b.String()); err != nil {
		return err
	}

	decision := result.AutoApply
	var err error
	switch {
	case !decision.Allowed:
		tiers := make([]string, 0, len(decision.Exceedances))
		for _, tier := range decision.Exceedances {
			tiers = append(tiers, tier.String())
		}
		_, err = red.Fprintf(w, messages.RenderBlockedFmt, strings.Join(tiers, ", "))
	case decision.Applied && decision.Succeeded != nil && !*decision.Succeeded:
		selected := decision.Flatten()
		_, err = red.Fprintf(w, messages.RenderApplyFailedFmt, len(selected), joinNames(selected))
	case decision.Applied:
		selected := decision.Flatten()
		_, err = green.Fprintf(w, messages.RenderAppliedFmt, len(selected), joinNames(selected))
	case counts == (risk.Counts{}):
		_, err = fmt.Fprintln(w, messages.RenderNothingMsg)
	default:
		var eligible []string
		for _, tier := range risk.Levels {
			eligible = append(eligible, assessment.Packages(tier)...)
		}
		_, err = yellow.Fprintf(w, messages.RenderDisabledFmt, len(eligible), joinNames(eligible))
	}
	if err != nil {
		return err
	}

	if len(decision.Plan) > 0 {
		if _, err := fmt.Fprintln(w, messages.RenderPlanHeader); err != nil {
			return err
		}
		if _, err := w.Write(pretty.Pretty(decision.Plan)); err != nil {
			return err
		}
	}
	return nil
}

// renderWarnings writes operator warnings for result, one block per warning.
func renderWarnings(w io.Writer, result autosync.Result) error {
	for _, warning := range warnings.FromResult(result) {
		c := newColor(w, color.FgYellow)
		if warning.Severity == warnings.SeverityCritical {
			c = newColor(w, color.FgRed)
		}
		if _, err := c.Fprintln(w, warning.String()); err != nil {
			return err
		}
	}
	return nil
}

// newColor returns a color that only emits escape codes when w is a terminal.
func newColor(w io.Writer, attr color.Attribute) *color.Color {
	c := color.New(attr)
	if !terminal.IsTerminal(w) {
		c.DisableColor()
	}
	return c
}

func joinNames(names []string) string {
	if len(names) == 0 {
		return messages.RenderNone
	}
	return strings.Join(names, ", ")
}
