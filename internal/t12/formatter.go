package t12

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"t12fmt/internal/excel"
	"t12fmt/internal/logger"

	"github.com/spf13/afero"
)

// Formatter runs the normalization pipeline over whole documents. Inputs are
// staged in a temporary file and outputs land in OutputDir.
type Formatter struct {
	fs        afero.Fs
	outputDir string
	tempDir   string
	settings  Settings
}

func NewFormatter(fs afero.Fs, outputDir string, settings Settings) *Formatter {
	return &Formatter{
		fs:        fs,
		outputDir: outputDir,
		tempDir:   os.TempDir(),
		settings:  settings,
	}
}

// Normalize formats document as reportKind and returns the output path.
func (f *Formatter) Normalize(document io.Reader, reportKind string) (string, error) {
	result, err := f.Process(document, reportKind)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}

// NormalizeFile formats the workbook at path and returns the output path.
func (f *Formatter) NormalizeFile(path, reportKind string) (string, error) {
	result, err := f.ProcessFile(path, reportKind)
	if err != nil {
		return "", err
	}
	return result.Output, nil
}

// ProcessFile formats the workbook at path.
func (f *Formatter) ProcessFile(path, reportKind string) (*Result, error) {
	// Validate before opening anything
	if _, err := ParseReportKind(reportKind); err != nil {
		return nil, err
	}

	in, err := f.fs.Open(path)
	if err != nil {
		return nil, containerError("load", path, err)
	}
	defer in.Close()

	result, err := f.Process(in, reportKind)
	if err != nil {
		return nil, err
	}
	result.Input = path
	return result, nil
}

// Process formats document and reports what was done.
func (f *Formatter) Process(document io.Reader, reportKind string) (*Result, error) {
	kind, err := ParseReportKind(reportKind)
	if err != nil {
		return nil, err
	}

	staged, err := f.stage(document)
	if err != nil {
		return nil, err
	}
	defer func() {
		if err := f.fs.Remove(staged); err != nil {
			logger.Warn("Failed to remove staged input", "path", staged, "error", err)
		}
	}()

	editor, err := f.open(staged)
	if err != nil {
		return nil, err
	}
	defer editor.Close()

	sheet := editor.ActiveSheet()
	result, err := Format(editor, sheet, kind.Profile(), f.settings)
	if err != nil {
		return nil, err
	}

	output, err := f.save(editor, result.Name)
	if err != nil {
		return nil, err
	}
	result.Output = output

	logger.Info("Formatted report",
		"kind", result.Kind,
		"variant", result.Variant,
		"output", output)
	return result, nil
}

// stage copies the document into a temporary file the caller must remove.
func (f *Formatter) stage(document io.Reader) (string, error) {
	if err := f.fs.MkdirAll(f.tempDir, 0755); err != nil {
		return "", containerError("stage", f.tempDir, err)
	}

	tmp, err := afero.TempFile(f.fs, f.tempDir, "t12-input-*.xlsx")
	if err != nil {
		return "", containerError("stage", f.tempDir, err)
	}

	_, copyErr := io.Copy(tmp, document)
	closeErr := tmp.Close()
	if copyErr != nil || closeErr != nil {
		_ = f.fs.Remove(tmp.Name())
		if copyErr == nil {
			copyErr = closeErr
		}
		return "", containerError("stage", tmp.Name(), copyErr)
	}
	return tmp.Name(), nil
}

func (f *Formatter) open(path string) (*excel.Editor, error) {
	in, err := f.fs.Open(path)
	if err != nil {
		return nil, containerError("load", path, err)
	}
	defer in.Close()

	editor, err := excel.OpenReader(in)
	if err != nil {
		return nil, containerError("load", path, err)
	}
	return editor, nil
}

// save writes beside the destination and renames into place, so a failed
// write never leaves a half-written workbook under the final name.
func (f *Formatter) save(editor *excel.Editor, name string) (string, error) {
	if err := f.fs.MkdirAll(f.outputDir, 0755); err != nil {
		return "", containerError("save", f.outputDir, err)
	}

	output := filepath.Join(f.outputDir, name)
	partial := output + ".part"

	out, err := f.fs.Create(partial)
	if err != nil {
		return "", containerError("save", partial, err)
	}

	writeErr := editor.Write(out)
	closeErr := out.Close()
	if writeErr == nil {
		writeErr = closeErr
	}
	if writeErr == nil {
		writeErr = f.fs.Rename(partial, output)
	}
	if writeErr != nil {
		_ = f.fs.Remove(partial)
		return "", containerError("save", output, fmt.Errorf("writing %s: %w", name, writeErr))
	}
	return output, nil
}
