package t12

import (
	"t12fmt/internal/excel"
	"t12fmt/internal/logger"
)

// Result describes one completed formatting run.
type Result struct {
	Input    string `json:"input,omitempty"`
	Output   string `json:"output,omitempty"`
	Kind     string `json:"kind"`
	Variant  string `json:"variant"`
	Property string `json:"property"`
	Period   string `json:"period"`
	Name     string `json:"output_name"`
	Deleted  []int  `json:"deleted_rows"`
	Bold     []int  `json:"bold_rows"`
}

// Format normalizes one sheet in place and derives the output file name.
// The plan is computed in full before the first change to the sheet.
func Format(e *excel.Editor, sheet string, p Profile, s Settings) (*Result, error) {
	grid, err := e.Grid(sheet)
	if err != nil {
		return nil, containerError("load", "", err)
	}

	analysis := Analyze(grid, p)
	plan := NewPlan(analysis, p, s)

	logger.Info("Planned normalization",
		"kind", p.Kind.String(),
		"variant", analysis.Layout.Variant.String(),
		"rows", grid.MaxRow(),
		"deleted", plan.Deletions.Len(),
		"bold", len(plan.Bold))

	if err := applyStyles(e, sheet, plan, p, s); err != nil {
		return nil, containerError("style", "", err)
	}

	property, err := e.CellText(sheet, propertyCell.Row, propertyCell.Col)
	if err != nil {
		return nil, containerError("load", "", err)
	}
	dateText, err := e.CellText(sheet, dateCell.Row, dateCell.Col)
	if err != nil {
		return nil, containerError("load", "", err)
	}
	dateRaw, err := e.CellRaw(sheet, dateCell.Row, dateCell.Col)
	if err != nil {
		return nil, containerError("load", "", err)
	}

	period, ok := ParsePeriod(dateText, dateRaw, s.Resolver)
	if !ok {
		logger.Warn("Could not parse report date", "text", dateText)
	}

	return &Result{
		Kind:     p.Kind.String(),
		Variant:  analysis.Layout.Variant.String(),
		Property: property,
		Period:   period,
		Name:     OutputName(property, p.Suffix, period),
		Deleted:  plan.Deletions.Ascending(),
		Bold:     plan.Bold,
	}, nil
}
