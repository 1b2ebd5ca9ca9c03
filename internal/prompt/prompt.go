// Package prompt assembles the message sequence sent to the model: one
// system entry carrying the persona, the cached knowledge and the style
// guide, followed by the user's bounded conversation history in order.
package prompt

import (
	openai "github.com/sashabaranov/go-openai"

	"github.com/ugmsa/assistbot/internal/knowledge"
	"github.com/ugmsa/assistbot/internal/session"
)

const persona = "You are a friendly and knowledgeable AI assistant for UGMSA " +
	"(University of Ghana Medical Students' Association) students. " +
	"Provide clear, accurate, and helpful responses.\n\n"

const knowledgePreface = "Use this official information to answer questions:\n\n"

const knowledgeInstruction = "\n\n" +
	"IMPORTANT: Answer questions directly using the information provided. " +
	"Never tell users to 'check the document' or 'visit the website' - " +
	"give them the answer directly.\n\n"

const styleGuide = "FORMATTING GUIDELINES:\n" +
	"- Structure responses with clear sections\n" +
	"- Use **bold** for headings and key terms\n" +
	"- Use *italic* for emphasis and notes\n" +
	"- Use bullet points (- ) for lists and multiple items\n" +
	"- Use `code format` for dates, times, locations, and numbers\n" +
	"- Add relevant emojis (🎓📚💡✨) to make content engaging\n" +
	"- Keep paragraphs short (2-3 sentences max)\n" +
	"- Use line breaks to improve readability\n" +
	"- End with actionable next steps when relevant\n" +
	"- Be warm, friendly, and encouraging in tone"

// Build returns the full message sequence for one inference request.
// blob may be nil when no knowledge source could be loaded; the system entry
// then carries only the persona and style guide.
func Build(history []session.Turn, blob *knowledge.Blob) []openai.ChatCompletionMessage {
	system := persona
	if blob != nil {
		system += knowledgePreface + blob.Text + knowledgeInstruction
	}
	system += styleGuide

	messages := make([]openai.ChatCompletionMessage, 0, len(history)+1)
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleSystem,
		Content: system,
	})
	for _, t := range history {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    string(t.Role),
			Content: t.Content,
		})
	}
	return messages
}
