package t12

import (
	"fmt"
	"strings"
)

// ReportKind is a T12 report sub-type.
type ReportKind int

const (
	Summary ReportKind = iota
	Detail
)

func (k ReportKind) String() string {
	switch k {
	case Summary:
		return "summary"
	case Detail:
		return "detail"
	}
	return "unknown"
}

// ReportKinds lists every supported kind in display order.
func ReportKinds() []ReportKind {
	return []ReportKind{Summary, Detail}
}

// ParseReportKind accepts "summary" or "detail", ignoring case and
// surrounding spaces.
func ParseReportKind(s string) (ReportKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "summary":
		return Summary, nil
	case "detail":
		return Detail, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnsupportedReportKind, s)
}

// UnmergeScope selects which merged regions are split before styling.
type UnmergeScope int

const (
	// UnmergeHeaderArea splits only regions inside the first 60 rows and 14 columns.
	UnmergeHeaderArea UnmergeScope = iota
	// UnmergeAll splits every region; detail bodies contain merges too.
	UnmergeAll
)

const (
	headerAreaRows = 60
	headerAreaCols = 14
)

// TotalLocator finds the destination rows that must be bolded.
type TotalLocator interface {
	LocateTotals(a *Analysis, m IndexMap) []int
}

// literalTotals uses the layout's fixed Summary rows.
type literalTotals struct{}

func (literalTotals) LocateTotals(a *Analysis, m IndexMap) []int {
	return m.DestRows(a.Layout.SummaryTotals)
}

// classifiedTotals uses rows the classifier tagged Total.
type classifiedTotals struct{}

func (classifiedTotals) LocateTotals(a *Analysis, m IndexMap) []int {
	return m.DestRows(a.Tags.Rows(Total))
}

// Profile is the per-kind configuration consumed by the single pipeline.
type Profile struct {
	Kind   ReportKind
	Suffix string

	Unmerge UnmergeScope
	Totals  TotalLocator

	Classify          bool
	DeleteBlankLabels bool
	TrimTrailer       bool
}

// Profile returns the pipeline configuration of the kind.
func (k ReportKind) Profile() Profile {
	switch k {
	case Summary:
		return Profile{
			Kind:        Summary,
			Suffix:      "T12 Summary",
			Unmerge:     UnmergeHeaderArea,
			Totals:      literalTotals{},
			TrimTrailer: true,
		}
	case Detail:
		return Profile{
			Kind:              Detail,
			Suffix:            "T12 Income Statement",
			Unmerge:           UnmergeAll,
			Totals:            classifiedTotals{},
			Classify:          true,
			DeleteBlankLabels: true,
		}
	}
	panic("t12: unknown report kind " + k.String())
}

// Settings are the tunable parts of a run.
type Settings struct {
	FooterMarker string
	FooterWindow int
	ColumnWidth  float64

	// Resolver, when set, is asked for the report period after every
	// built-in date format has failed.
	Resolver DateResolver
}

func DefaultSettings() Settings {
	return Settings{
		FooterMarker: "Created on",
		FooterWindow: 10,
		ColumnWidth:  12,
	}
}
