package answer

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/docqa/internal/common"
	"github.com/dmitrijs2005/docqa/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

type fakeGenerator struct {
	model    string
	prompt   string
	config   *genai.GenerateContentConfig
	deadline bool
	reply    string
	err      error
}

func (f *fakeGenerator) GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error) {
	f.model = model
	f.config = config
	_, f.deadline = ctx.Deadline()
	if len(contents) > 0 && len(contents[0].Parts) > 0 {
		f.prompt = contents[0].Parts[0].Text
	}
	if f.err != nil {
		return nil, f.err
	}
	return &genai.GenerateContentResponse{
		Candidates: []*genai.Candidate{
			{Content: &genai.Content{Parts: []*genai.Part{{Text: f.reply}}}},
		},
	}, nil
}

func request() Request {
	return Request{
		Question:      "Which channel is used for distress calls?",
		Reference:     "manual.txt (v2):\nChannel 16 is reserved for distress calls....",
		DocumentNames: "manual.txt",
		Version:       2,
		Language:      models.French,
	}
}

func TestBuildPrompt(t *testing.T) {
	p := BuildPrompt(request())

	assert.Contains(t, p, "Document: manual.txt (Version: 2)")
	assert.Contains(t, p, "Channel 16 is reserved")
	assert.Contains(t, p, "USER QUESTION:\nWhich channel is used for distress calls?")
	assert.Contains(t, p, models.French.Instruction())
	assert.Contains(t, p, NotFoundAnswer)
}

func TestGenAI_Answer(t *testing.T) {
	fake := &fakeGenerator{reply: "  Channel 16.\n"}
	g := newGenAI(fake, "", time.Minute)

	got, err := g.Answer(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, "Channel 16.", got)
	assert.Equal(t, "gemini-2.0-flash", fake.model)
	assert.True(t, strings.HasPrefix(fake.prompt, "You are an assistant"))
	require.NotNil(t, fake.config.Temperature)
	assert.Zero(t, *fake.config.Temperature)
	assert.True(t, fake.deadline)
}

func TestGenAI_Errors(t *testing.T) {
	g := newGenAI(&fakeGenerator{err: errors.New("quota exceeded")}, "m", 0)
	_, err := g.Answer(context.Background(), request())
	require.ErrorContains(t, err, "quota exceeded")

	g = newGenAI(&fakeGenerator{reply: "   "}, "m", 0)
	_, err = g.Answer(context.Background(), request())
	require.Error(t, err)
}

func TestNewGenAI_RequiresKey(t *testing.T) {
	_, err := NewGenAI(context.Background(), "", "m", 0)
	require.Error(t, err)
}

func TestUnavailable(t *testing.T) {
	var f Func = Unavailable
	_, err := f(context.Background(), request())
	require.ErrorIs(t, err, common.ErrAnswerUnavailable)
}
