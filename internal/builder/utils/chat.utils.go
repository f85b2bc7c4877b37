package utils

import (
	"sidehustle_server/internal/types"

	openai "github.com/sashabaranov/go-openai"
)

// DedupeStrings keeps the first occurrence of each value, preserving order.
func DedupeStrings(values []string) []string {
	if values == nil {
		return nil
	}
	seen := make(map[string]struct{}, len(values))
	out := make([]string, 0, len(values))
	for _, v := range values {
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	return out
}

// TranscriptToChat converts stored builder messages into the chat-completion
// message shape so a session can be replayed into an OpenAI-compatible client.
// systemPrompt is prepended when non-empty.
func TranscriptToChat(systemPrompt string, messages []types.BuilderMessage) []openai.ChatCompletionMessage {
	out := make([]openai.ChatCompletionMessage, 0, len(messages)+1)
	if systemPrompt != "" {
		out = append(out, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: systemPrompt,
		})
	}
	for _, m := range messages {
		role := openai.ChatMessageRoleUser
		if m.Role == types.RoleAssistant {
			role = openai.ChatMessageRoleAssistant
		}
		out = append(out, openai.ChatCompletionMessage{Role: role, Content: m.Content})
	}
	return out
}
