package ai

import (
	"context"
)

// Action is a text transformation the assistant can apply to a note's
// text.
type Action string

const (
	ActionSummarize  Action = "summarize"
	ActionExpand     Action = "expand"
	ActionShorten    Action = "shorten"
	ActionFixGrammar Action = "fix_grammar"
	ActionMakeFormal Action = "make_formal"
)

func (a Action) Valid() bool {
	switch a {
	case ActionSummarize, ActionExpand, ActionShorten, ActionFixGrammar, ActionMakeFormal:
		return true
	}
	return false
}

// Generator is the model client. The gemini package implements it.
type Generator interface {
	// GenerateText sends a text prompt and returns the model's reply.
	GenerateText(ctx context.Context, prompt string) (string, error)

	// GenerateImage sends a prompt with an inline base64 image and
	// returns the generated image as base64.
	GenerateImage(ctx context.Context, prompt, imageB64, mimeType string) (string, error)
}
