package services

import (
	"context"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Allan0411/Notes-API/ai"
	"github.com/Allan0411/Notes-API/errors"
)

type fakeGenerator struct {
	lastPrompt string
	lastImage  string
	lastMime   string
}

func (g *fakeGenerator) GenerateText(_ context.Context, prompt string) (string, error) {
	g.lastPrompt = prompt
	return "generated text", nil
}

func (g *fakeGenerator) GenerateImage(_ context.Context, prompt, imageB64, mimeType string) (string, error) {
	g.lastPrompt = prompt
	g.lastImage = imageB64
	g.lastMime = mimeType
	return "generated image", nil
}

func TestTransform(t *testing.T) {
	gen := &fakeGenerator{}
	service := NewAIService(gen)

	for _, action := range []ai.Action{
		ai.ActionSummarize,
		ai.ActionExpand,
		ai.ActionShorten,
		ai.ActionFixGrammar,
		ai.ActionMakeFormal,
	} {
		out, err := service.Transform(context.Background(), action, "my note text")
		require.NoError(t, err, "action %s", action)
		assert.Equal(t, "generated text", out)
		assert.True(t, strings.HasSuffix(gen.lastPrompt, "my note text"), "the note text goes after the instruction")
	}
}

func TestTransformValidation(t *testing.T) {
	service := NewAIService(&fakeGenerator{})

	_, err := service.Transform(context.Background(), "translate", "text")
	errors.AssertCode(t, err, http.StatusBadRequest)

	_, err = service.Transform(context.Background(), ai.ActionSummarize, "   ")
	errors.AssertCode(t, err, http.StatusBadRequest)
}

func TestRefineSketch(t *testing.T) {
	gen := &fakeGenerator{}
	service := NewAIService(gen)

	out, err := service.RefineSketch(context.Background(), "aGVsbG8=", "", "make it blue")
	require.NoError(t, err)
	assert.Equal(t, "generated image", out)
	assert.Equal(t, "aGVsbG8=", gen.lastImage)
	assert.Equal(t, "image/png", gen.lastMime, "mime type defaults to png")
	assert.Contains(t, gen.lastPrompt, "make it blue")

	_, err = service.RefineSketch(context.Background(), "", "image/png", "")
	errors.AssertCode(t, err, http.StatusBadRequest)
}
