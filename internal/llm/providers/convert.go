package providers

import (
	"strings"

	"github.com/google/uuid"
	"github.com/tmc/langchaingo/llms"

	"github.com/logicmind/logicmind/internal/llm"
)

// toMessageContents converts messages to langchaingo MessageContent
func toMessageContents(messages []llm.Message) []llms.MessageContent {
	result := make([]llms.MessageContent, 0, len(messages))

	for _, msg := range messages {
		role := llms.ChatMessageTypeHuman
		switch msg.Role {
		case llm.RoleSystem:
			role = llms.ChatMessageTypeSystem
		case llm.RoleAssistant:
			role = llms.ChatMessageTypeAI
		}
		result = append(result, llms.TextParts(role, msg.Content))
	}

	return result
}

// singlePrompt flattens a conversation for backends that take one prompt.
// With system instructions present the result is
//
//	{system}\n\nUser Question: {question}\n\nReturn only valid JSON:
//
// otherwise the user turns are joined as-is.
func singlePrompt(req llm.CompletionRequest) string {
	var user []string
	for _, m := range req.Messages {
		if m.Role != llm.RoleSystem {
			user = append(user, m.Content)
		}
	}
	question := strings.Join(user, "\n\n")

	system := req.SystemPrompt()
	if system == "" {
		return question
	}
	return system + "\n\nUser Question: " + question + "\n\nReturn only valid JSON:"
}

// buildCallOptions converts a request to langchaingo call options
func buildCallOptions(req llm.CompletionRequest, model string) []llms.CallOption {
	callOpts := make([]llms.CallOption, 0, 4)

	if req.Temperature > 0 {
		callOpts = append(callOpts, llms.WithTemperature(req.Temperature))
	}

	if req.MaxTokens > 0 {
		callOpts = append(callOpts, llms.WithMaxTokens(req.MaxTokens))
	}

	if model != "" {
		callOpts = append(callOpts, llms.WithModel(model))
	}

	if req.JSONMode {
		callOpts = append(callOpts, llms.WithJSONMode())
	}

	return callOpts
}

// fromContentResponse converts a langchaingo response
func fromContentResponse(resp *llms.ContentResponse, model string) *llm.CompletionResponse {
	out := &llm.CompletionResponse{
		ID:           uuid.New().String(),
		Model:        model,
		FinishReason: llm.FinishReasonStop,
	}
	if resp == nil || len(resp.Choices) == 0 {
		return out
	}

	choice := resp.Choices[0]
	out.Content = choice.Content
	out.FinishReason = finishReason(choice.StopReason)
	return out
}

func finishReason(reason string) llm.FinishReason {
	switch strings.ToLower(reason) {
	case "length", "max_tokens":
		return llm.FinishReasonLength
	case "content_filter", "safety":
		return llm.FinishReasonContentFilter
	default:
		return llm.FinishReasonStop
	}
}
