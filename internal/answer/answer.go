// Package answer adapts answer generators to the signature the store calls.
package answer

import (
	"context"
	"strconv"
	"strings"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/models"
)

// Request is everything a generator gets to answer one question.
type Request struct {
	Question      string
	Reference     string
	DocumentNames string
	Version       int
	Language      models.Language
}

// Func produces an answer grounded in req.Reference.
type Func func(ctx context.Context, req Request) (string, error)

// Unavailable is the Func used when no generator is configured.
func Unavailable(context.Context, Request) (string, error) {
	return "", common.ErrAnswerUnavailable
}

// NotFoundAnswer is the reply generators are instructed to give when the
// reference does not contain the answer.
const NotFoundAnswer = "I don't know - this information is not available in the uploaded documents."

// BuildPrompt renders the grounded-answer prompt for req.
func BuildPrompt(req Request) string {
	var b strings.Builder

	b.WriteString("You are an assistant that answers questions about the user's documents.\n\n")
	b.WriteString("REFERENCE DOCUMENTS:\n")
	b.WriteString("Document: " + req.DocumentNames + " (Version: " + strconv.Itoa(req.Version) + ")\n")
	b.WriteString("Content:\n")
	b.WriteString(req.Reference)
	b.WriteString("\n\nUSER QUESTION:\n")
	b.WriteString(req.Question)
	b.WriteString("\n\nINSTRUCTIONS:\n")
	b.WriteString(req.Language.Instruction() + "\n")
	b.WriteString("Answer the question based STRICTLY on the reference documents provided above.\n")
	b.WriteString("If the answer cannot be found in the reference content, you MUST respond with: \"" + NotFoundAnswer + "\"\n")
	b.WriteString("Do not speculate, infer, or use any external knowledge beyond the provided reference documents.\n")
	b.WriteString("Only provide answers that are directly supported by the reference content.\n")

	return b.String()
}
