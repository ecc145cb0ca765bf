package translator

import (
	"fmt"

	"github.com/tolkabot/tolka/internal/provider"
)

const systemPromptFormat = `You are a professional translator bot.
When a user sends a message in English, translate it into '%s' using fluent, natural, native-level language, never literal. When a user sends a message in any other language, translate it into fluent, native-sounding English. Always adapt numbers, expressions, and cultural context to fit naturally. Never say anything else. Only reply with the translation, no explanations or comments.`

// buildPrompt assembles the two-message conversation sent to the provider:
// a system prompt naming the target language and the user's text verbatim.
func buildPrompt(targetLang, text string) []provider.LLMMessage {
	return []provider.LLMMessage{
		{Role: provider.MessageRoleSystem, Content: fmt.Sprintf(systemPromptFormat, targetLang)},
		{Role: provider.MessageRoleUser, Content: text},
	}
}
