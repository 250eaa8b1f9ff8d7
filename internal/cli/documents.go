package cli

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"unicode/utf8"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/extract"
)

// readFile is swapped in tests.
var readFile = os.ReadFile

// Upload stores each named file as a document named after its base name.
// Uploading a name again creates a new version.
func (a *App) Upload(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return common.ErrUnknownUser
	}
	if len(args) == 0 {
		a.println("Usage: upload <path>...")
		return nil
	}

	var errs []error
	for _, path := range args {
		if err := a.uploadOne(ctx, path); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (a *App) uploadOne(ctx context.Context, path string) error {
	name := filepath.Base(path)

	data, err := readFile(path)
	if err != nil {
		a.printf("Could not read %s: %v\n", path, err)
		return err
	}

	text, err := extract.Text(data)
	if err != nil {
		a.printf("Could not extract text from %s: %v\n", name, err)
		return err
	}
	if text == "" {
		a.printf("Warning: no text found in %s\n", name)
	}

	doc, err := a.store.Upload(ctx, a.userID, name, text)
	if err != nil {
		a.printf("Could not save %s: %v\n", name, err)
		a.logger.Error(ctx, "upload failed", "document", name, "error", err)
		return err
	}

	a.printf("Uploaded %s (version %d)\n", doc.Name, doc.Version)
	return nil
}

// Docs lists the user's documents, first uploaded first.
func (a *App) Docs(ctx context.Context) error {
	if !a.requireLogin() {
		return common.ErrUnknownUser
	}

	docs := a.store.ListDocuments(a.userID)
	if len(docs) == 0 {
		a.println("No documents uploaded yet.")
		return nil
	}

	for _, d := range docs {
		a.printf("%s (v%d) uploaded %s, %d characters\n",
			d.Name, d.Version, d.UploadedAt.Format("2006-01-02 15:04"), utf8.RuneCountInString(d.Text))
	}
	return nil
}
