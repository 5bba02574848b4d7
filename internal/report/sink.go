package report

import (
	"fmt"
	"io"
	"os"

	log "github.com/sirupsen/logrus"
)

// Write prints the report to out, or writes it to the file at path when set,
// replacing its content.
func Write(text, path string, out io.Writer) error {
	if path == "" {
		_, err := fmt.Fprint(out, text)
		return err
	}
	if err := os.WriteFile(path, []byte(text), 0644); err != nil {
		return fmt.Errorf("couldn't write report to %s: %w", path, err)
	}
	log.Infof("Report written to %s", path)
	return nil
}
