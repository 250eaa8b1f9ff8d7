package cli

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/common"
)

// Ask answers a question about the user's documents. The question is taken
// from the arguments or prompted for.
func (a *App) Ask(ctx context.Context, args []string) error {
	if !a.requireLogin() {
		return common.ErrUnknownUser
	}

	question := strings.Join(args, " ")
	if question == "" {
		var err error
		if question, err = getSimpleText(a.reader, "Ask a question about your documents", a.out); err != nil {
			return err
		}
	}
	if question == "" {
		return nil
	}

	text, err := a.store.AskAndRecord(ctx, a.userID, question, a.lang, a.answer)
	switch {
	case err == nil:
		a.println("Answer:", text)
	case errors.Is(err, common.ErrNoDocuments):
		a.println("Please upload documents first.")
	case errors.Is(err, common.ErrAnswerFailed):
		a.println("Could not get an answer:", err)
	case errors.Is(err, common.ErrIO) && text != "":
		a.println("Answer:", text)
		a.println("Warning: the answer was not saved to your history:", err)
	default:
		a.println("Error:", err)
	}
	return err
}

// History prints the most recent interactions, newest first.
func (a *App) History(ctx context.Context) error {
	if !a.requireLogin() {
		return common.ErrUnknownUser
	}

	recs := a.store.RecentHistory(a.userID, a.historyLimit)
	if len(recs) == 0 {
		a.println("No chat history yet.")
		return nil
	}

	for _, r := range recs {
		a.printf("[%s] %s (v%d, %s)\n", r.Timestamp.Format("2006-01-02 15:04:05"), r.DocumentRef, r.VersionRef, r.Language)
		a.printf("  Q: %s\n", r.Question)
		a.printf("  A: %s\n", r.Answer)
	}
	return nil
}
