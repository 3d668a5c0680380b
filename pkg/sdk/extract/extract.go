// Package extract derives the hashable response content from common AI
// provider response shapes.
//
// Strategies run in a fixed, documented order:
//
//  1. chat-completion shape: choices[0].message.content
//  2. message-content shape: content[0].text
//  3. fallback: the raw value, unchanged
//
// Shape sniffing operates on decoded JSON (map[string]any). Typed provider
// SDK responses do not match any shape; callers using typed clients supply
// an explicit extractor, which overrides the ordered strategies entirely.
package extract

// Func derives hashable content from a raw provider response.
type Func func(response any) any

// Content applies override when non-nil, otherwise the ordered strategies
// with raw-value fallback.
func Content(response any, override Func) any {
	if override != nil {
		return override(response)
	}
	for _, strategy := range strategies {
		if content, ok := strategy(response); ok {
			return content
		}
	}
	return response
}

var strategies = []func(any) (any, bool){
	chatCompletion,
	messageContent,
}

// chatCompletion matches OpenAI-style payloads.
func chatCompletion(response any) (any, bool) {
	m, ok := response.(map[string]any)
	if !ok {
		return nil, false
	}
	choices, ok := m["choices"].([]any)
	if !ok || len(choices) == 0 {
		return nil, false
	}
	first, ok := choices[0].(map[string]any)
	if !ok {
		return nil, false
	}
	message, ok := first["message"].(map[string]any)
	if !ok {
		return nil, false
	}
	content, ok := message["content"]
	if !ok {
		return nil, false
	}
	return content, true
}

// messageContent matches Anthropic-style payloads.
func messageContent(response any) (any, bool) {
	m, ok := response.(map[string]any)
	if !ok {
		return nil, false
	}
	items, ok := m["content"].([]any)
	if !ok || len(items) == 0 {
		return nil, false
	}
	first, ok := items[0].(map[string]any)
	if !ok {
		return nil, false
	}
	text, ok := first["text"]
	if !ok {
		return nil, false
	}
	return text, true
}
