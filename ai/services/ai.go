package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/Allan0411/Notes-API/ai"
	"github.com/Allan0411/Notes-API/errors"
)

// prompts maps each action to the instruction put in front of the
// note's text.
var prompts = map[ai.Action]string{
	ai.ActionSummarize:  "Summarize the following note in a few sentences. Reply with the summary only.",
	ai.ActionExpand:     "Expand the following note with more detail, keeping its tone. Reply with the expanded text only.",
	ai.ActionShorten:    "Shorten the following note, keeping every key point. Reply with the shortened text only.",
	ai.ActionFixGrammar: "Fix the spelling and grammar of the following note without changing its meaning. Reply with the corrected text only.",
	ai.ActionMakeFormal: "Rewrite the following note in a formal register. Reply with the rewritten text only.",
}

const sketchPrompt = "Refine this rough sketch into a clean, polished image. %s Reply with the image only."

type AIService struct {
	generator ai.Generator
}

func NewAIService(generator ai.Generator) *AIService {
	return &AIService{
		generator: generator,
	}
}

// Transform applies the action to the text and returns the model's
// rewrite.
func (s *AIService) Transform(ctx context.Context, action ai.Action, text string) (string, error) {
	if !action.Valid() {
		return "", errors.New(fmt.Sprintf("Unknown action %q", string(action)), errors.BadRequest())
	}
	if strings.TrimSpace(text) == "" {
		return "", errors.New("Nothing to transform", errors.BadRequest())
	}

	prompt := prompts[action] + "\n\n" + text
	return s.generator.GenerateText(ctx, prompt)
}

// RefineSketch turns a rough base64-encoded sketch into a refined
// image, following the optional instructions.
func (s *AIService) RefineSketch(ctx context.Context, imageB64, mimeType, instructions string) (string, error) {
	if imageB64 == "" {
		return "", errors.New("An image is required", errors.BadRequest())
	}
	if mimeType == "" {
		mimeType = "image/png"
	}

	prompt := fmt.Sprintf(sketchPrompt, instructions)
	return s.generator.GenerateImage(ctx, prompt, imageB64, mimeType)
}
