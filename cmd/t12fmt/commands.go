package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strconv"
	"strings"

	"t12fmt/internal/excel"
	"t12fmt/internal/logger"
	"t12fmt/internal/picker"
	"t12fmt/internal/t12"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

const manifestName = "results.json"

func kindUsage() string {
	var names []string
	for _, k := range t12.ReportKinds() {
		names = append(names, k.String())
	}
	return "Report kind: " + strings.Join(names, ", ") + " (default from config)"
}

func formatCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "format <input_file>",
		Short: "Format a single T12 workbook",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input := args[0]
			if !excel.Exists(input) {
				return fmt.Errorf("file not found: %s", input)
			}

			logger.Info("Starting format operation", "input_file", input)
			result, err := a.formatter().ProcessFile(input, a.kindOrDefault(kind))
			if err != nil {
				logger.Error("Format operation failed", "error", err)
				return err
			}

			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", kindUsage())
	return cmd
}

func formatAllCmd(a *app) *cobra.Command {
	var kind string
	cmd := &cobra.Command{
		Use:   "format-all",
		Short: "Format every workbook in the input directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger.Info("Starting format-all operation", "input_directory", a.cfg.Scan.InputDirectory)

			files, err := excel.FindWorkbooks(a.cfg.Scan.InputDirectory)
			if err != nil {
				logger.Error("Failed to get Excel files", "error", err)
				return err
			}
			if len(files) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "No .xlsx files found in directory: %s\n", a.cfg.Scan.InputDirectory)
				return nil
			}

			fs := afero.NewOsFs()
			f := t12.NewFormatter(fs, a.resultsDir(), a.settings())
			_, err = formatAll(cmd.OutOrStdout(), fs, f, files, a.kindOrDefault(kind), a.resultsDir())
			return err
		},
	}
	cmd.Flags().StringVarP(&kind, "kind", "k", "", kindUsage())
	return cmd
}

// Manifest is written next to the batch outputs.
type Manifest struct {
	Kind      string        `json:"kind"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Results   []*t12.Result `json:"results"`
	Errors    []FileError   `json:"errors,omitempty"`
}

type FileError struct {
	Input string `json:"input"`
	Error string `json:"error"`
}

// formatAll formats files one by one. A failing file is recorded and the batch
// continues; only an unknown kind or an unwritable manifest stops it.
func formatAll(w io.Writer, fs afero.Fs, f *t12.Formatter, files []string, kind, resultsDir string) (*Manifest, error) {
	if _, err := t12.ParseReportKind(kind); err != nil {
		return nil, err
	}

	logger.Info("Found files to format", "file_count", len(files))
	manifest := &Manifest{Kind: strings.ToLower(strings.TrimSpace(kind)), Results: []*t12.Result{}}

	for i, input := range files {
		fmt.Fprintf(w, "\n[%d/%d] Processing: %s\n", i+1, len(files), filepath.Base(input))
		logger.Info("Processing file", "file", input, "progress", fmt.Sprintf("%d/%d", i+1, len(files)))

		result, err := f.ProcessFile(input, kind)
		if err != nil {
			logger.Error("Failed to format file", "file", input, "error", err)
			fmt.Fprintf(w, "❌ Error formatting file: %v\n", err)
			manifest.Failed++
			manifest.Errors = append(manifest.Errors, FileError{Input: input, Error: err.Error()})
			continue
		}

		fmt.Fprintf(w, "✓ %s\n", result.Name)
		manifest.Succeeded++
		manifest.Results = append(manifest.Results, result)
	}

	if err := writeManifest(fs, filepath.Join(resultsDir, manifestName), manifest); err != nil {
		return manifest, err
	}

	logger.Info("Format-all operation completed",
		"success_count", manifest.Succeeded,
		"error_count", manifest.Failed)

	fmt.Fprintf(w, "\n========================================\n")
	fmt.Fprintf(w, "Formatting complete!\n")
	fmt.Fprintf(w, "✓ Success: %d files\n", manifest.Succeeded)
	if manifest.Failed > 0 {
		fmt.Fprintf(w, "❌ Errors: %d files\n", manifest.Failed)
	}
	fmt.Fprintf(w, "Results saved to: %s\n", resultsDir)
	return manifest, nil
}

func writeManifest(fs afero.Fs, path string, m *Manifest) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return err
	}
	if err := fs.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create results directory: %w", err)
	}
	if err := afero.WriteFile(fs, path, data, 0644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

func inspectCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "inspect <input_file>",
		Short: "Show the detected layout and row classification without writing",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := excel.OpenFile(args[0])
			if err != nil {
				return err
			}
			defer e.Close()

			grid, err := e.Grid(e.ActiveSheet())
			if err != nil {
				return err
			}
			printInspection(cmd.OutOrStdout(), args[0], grid)
			return nil
		},
	}
}

func printInspection(w io.Writer, path string, grid excel.Grid) {
	layout := t12.DetectLayout(grid)
	tags := t12.Classify(grid, layout)

	rows := make([][]string, 0, grid.MaxRow())
	for row := 1; row <= grid.MaxRow(); row++ {
		rows = append(rows, []string{
			strconv.Itoa(row),
			tags.Tag(row).String(),
			grid.Value(row, 1),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("ROW", "TAG", "LABEL").
		Rows(rows...)

	fmt.Fprintf(w, "%s: %s layout, %d rows\n", path, layout.Variant, grid.MaxRow())
	fmt.Fprintln(w, t.Render())
}

func pickCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "pick",
		Short: "Choose a report kind and workbook interactively, then format it",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			files, err := excel.FindWorkbooks(a.cfg.Scan.InputDirectory)
			if err != nil {
				return err
			}

			sel, err := picker.Run(files, a.cfg.UI.RowsPerPage)
			if errors.Is(err, picker.ErrCancelled) {
				fmt.Fprintln(cmd.OutOrStdout(), "Nothing formatted")
				return nil
			}
			if err != nil {
				return err
			}

			result, err := a.formatter().ProcessFile(sel.Path, sel.Kind.String())
			if err != nil {
				logger.Error("Format operation failed", "error", err)
				return err
			}
			printResult(cmd.OutOrStdout(), result)
			return nil
		},
	}
}

func printResult(w io.Writer, r *t12.Result) {
	fmt.Fprintf(w, "✓ Formatted %s report (%s layout)\n", r.Kind, r.Variant)
	fmt.Fprintf(w, "✓ Removed %d rows, bolded %d rows\n", len(r.Deleted), len(r.Bold))
	fmt.Fprintf(w, "✓ Saved to: %s\n", r.Output)
}
