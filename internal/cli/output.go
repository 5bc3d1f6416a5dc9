package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/eyad6789/images-with-memory/internal/config"
	"github.com/eyad6789/images-with-memory/models"
)

// noteView is the JSON shape of a single extracted note.
type noteView struct {
	Note string `json:"note"`
}

// renderEmbed reports a completed embed on the output writer.
func (a *App) renderEmbed(result models.EmbedResult) error {
	if a.jsonOutput() {
		return a.writeJSON(result)
	}

	line := fmt.Sprintf("note embedded into %s (%s)", result.Path, result.Format)
	if result.Encrypted {
		line += " [encrypted]"
	}

	_, err := fmt.Fprintln(a.out, line)
	return err
}

// renderNote delivers an extracted note to standard output or, when
// outPath is set, to that file. JSON mode wraps the note into a small
// object; text mode emits the note itself.
func (a *App) renderNote(note, outPath string) error {
	var buf bytes.Buffer
	if a.jsonOutput() {
		if err := json.NewEncoder(&buf).Encode(noteView{Note: note}); err != nil {
			return fmt.Errorf("encode note: %w", err)
		}
	} else {
		buf.WriteString(note)
		buf.WriteByte('\n')
	}

	if outPath != "" {
		if err := os.WriteFile(outPath, buf.Bytes(), 0o600); err != nil {
			return fmt.Errorf("write note to file: %w", err)
		}
		return nil
	}

	_, err := a.out.Write(buf.Bytes())
	return err
}

// renderBatch reports a finished batch run: one row per file plus a
// summary, or the whole report as JSON.
func (a *App) renderBatch(report models.BatchReport, verifyOnly bool) error {
	if a.jsonOutput() {
		return a.writeJSON(report)
	}

	var buf bytes.Buffer
	for _, file := range report.Files {
		buf.WriteString(batchLine(file, verifyOnly))
		buf.WriteByte('\n')
	}
	fmt.Fprintf(&buf, "scanned %d files in %dms: %d with notes, %d failed, %d skipped\n",
		report.Scanned, report.ElapsedMS, report.WithNote, report.Failed, report.Skipped)

	_, err := a.out.Write(buf.Bytes())
	return err
}

// writeJSON renders v as indented JSON on the output writer.
func (a *App) writeJSON(v any) error {
	encoder := json.NewEncoder(a.out)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}

	return nil
}

func (a *App) jsonOutput() bool {
	return a.cfg.Output.Format == config.OutputJSON
}

// batchLine renders one report row for human output. Encrypted notes
// show a marker instead of their envelope.
func batchLine(file models.FileReport, verifyOnly bool) string {
	switch {
	case file.Err != "":
		return fmt.Sprintf("%s: error: %s", file.Path, file.Err)
	case !file.Found:
		return fmt.Sprintf("%s: no note", file.Path)
	case file.Encrypted:
		return fmt.Sprintf("%s: encrypted note%s", file.Path, versionSuffix(file.Version))
	case verifyOnly:
		return fmt.Sprintf("%s: note present%s", file.Path, versionSuffix(file.Version))
	default:
		return fmt.Sprintf("%s: %q%s", file.Path, file.Note, versionSuffix(file.Version))
	}
}

func versionSuffix(version string) string {
	if version == "" {
		return ""
	}

	return fmt.Sprintf(" (v%s)", version)
}
