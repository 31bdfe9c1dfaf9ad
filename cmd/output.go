package cmd

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/dt-pm-tools/jira-stories/internal/story"
	"gopkg.in/yaml.v3"
)

// encodeRecords writes records in the given format ("json" or "yaml").
func encodeRecords(w io.Writer, format string, v any) error {
	switch format {
	case "json", "":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		enc.SetEscapeHTML(false)
		return enc.Encode(v)
	case "yaml", "yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return err
		}
		return enc.Close()
	default:
		return fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}

// fileExt maps an output format to its file extension.
func fileExt(format string) (string, error) {
	switch format {
	case "json", "":
		return "json", nil
	case "yaml", "yml":
		return "yaml", nil
	default:
		return "", fmt.Errorf("unsupported output format %q (use json or yaml)", format)
	}
}

// writeRecords writes one <KEY>.<ext> file per record into dir. An unknown
// format is rejected before anything is created.
func writeRecords(dir, format string, records []story.Record) error {
	ext, err := fileExt(format)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	for _, rec := range records {
		filename := filepath.Join(dir, rec.Story+"."+ext)
		f, err := os.Create(filename)
		if err != nil {
			return fmt.Errorf("creating %s: %w", filename, err)
		}
		if err := encodeRecords(f, format, rec); err != nil {
			f.Close()
			return fmt.Errorf("writing %s: %w", filename, err)
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("closing %s: %w", filename, err)
		}
		fmt.Fprintf(os.Stderr, "Written to %s\n", filename)
	}
	return nil
}
