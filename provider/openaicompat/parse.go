package openaicompat

import (
	"github.com/nevindra/fiscus"
)

// ParseResponse converts an OpenAI-format ChatResponse to a fiscus
// ChatResponse. It extracts content and usage from choices[0].
func ParseResponse(resp ChatResponse) (fiscus.ChatResponse, error) {
	var out fiscus.ChatResponse

	if len(resp.Choices) == 0 {
		return out, nil
	}

	if msg := resp.Choices[0].Message; msg != nil {
		out.Content = msg.Content
	}

	if resp.Usage != nil {
		out.Usage = fiscus.Usage{
			InputTokens:  resp.Usage.PromptTokens,
			OutputTokens: resp.Usage.CompletionTokens,
		}
	}

	return out, nil
}
