package excel

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FindWorkbooks returns all .xlsx files under dir, sorted by path.
// Office lock files ("~$report.xlsx") are skipped.
func FindWorkbooks(dir string) ([]string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create input directory: %w", err)
	}

	var xlsxFiles []string

	err := filepath.Walk(dir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.IsDir() {
			return nil
		}
		if strings.HasPrefix(info.Name(), "~$") {
			return nil
		}
		if strings.ToLower(filepath.Ext(path)) == ".xlsx" {
			xlsxFiles = append(xlsxFiles, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan %s: %w", dir, err)
	}

	sort.Strings(xlsxFiles)
	return xlsxFiles, nil
}
