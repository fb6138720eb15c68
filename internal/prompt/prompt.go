// Package prompt assembles the message sequences sent to the completion
// model.
package prompt

import (
	"strings"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
)

// greetingInstruction asks the model for the opening message of a new
// conversation, grounded in the document's first chunks.
const greetingInstruction = `You are an **AI Agent (RAG)** named **ChatDOCX**, designed to respond **only** based on the provided document context.

I will provide the opening of a document, and you must respond using that context.

Your response should be **short, polite, and friendly**, not exceeding **100 words**.
This will serve as the **starting message** of the conversation.

You must return your response in **Markdown (.md)** format and use **bold**, *italics*, and other styling to make it engaging and visually appealing.

Greet the user, state what the document seems to be about in one or two short lines, and ask whether they would like a quick overview or a deep dive into a particular section.`

// chatInstruction is the persona and formatting contract for every answer
// after the greeting.
const chatInstruction = `You are an **AI Agent (RAG)** named **ChatDOCX**, designed to respond **only** based on the provided document context.

I will provide the context of a document, and you must respond using that context.

Your response should be **short, polite, and friendly**, not exceeding **150-200 words**.

You must return your response in **Markdown (.md)** format and use **bold**, *italics*, and other styling to make it engaging and visually appealing.

---

**Response Rules:**
	- If the information seems extensive but important, politely ask: **"Would you like to know more about this topic?"**
	- All responses must be formatted in **Markdown** to support rendering with "react-markdown".
	- Use "**bold**" for key terms or emphasis and "*italic*" for soft tone or secondary notes.
	- Use bullet points ("-") or numbered lists when listing information.
	- Use "###" or "##" for headings if breaking content into sections.
	- Wrap code or commands in backticks for clarity.
	- Keep responses under 150-200 words unless the user specifically asks for more.
	- Always end with a friendly sentence or follow-up question to keep the conversation going.`

// joinChunks concatenates chunk texts with blank-line separation into a
// single context block.
func joinChunks(chunks []domain.Chunk) string {
	texts := make([]string, len(chunks))
	for i, c := range chunks {
		texts[i] = c.Text
	}
	return strings.Join(texts, "\n\n")
}

// BuildIngestionPrompt builds the greeting request from the first chunks
// of a freshly uploaded document. The chunks are positional, not
// retrieved; they approximate the document's opening.
func BuildIngestionPrompt(firstChunks []domain.Chunk) []domain.Message {
	return []domain.Message{
		{Role: domain.RoleSystem, Content: greetingInstruction},
		{Role: domain.RoleUser, Content: "Context: " + joinChunks(firstChunks)},
	}
}

// BuildChatPrompt prepends the fixed system instruction, carrying the
// retrieved context, to the conversation history. The system instruction
// is always message index 0; the history is appended verbatim, never
// reordered or deduplicated.
func BuildChatPrompt(retrieved []domain.RetrievedChunk, history []domain.Message) []domain.Message {
	chunks := make([]domain.Chunk, len(retrieved))
	for i, r := range retrieved {
		chunks[i] = r.Chunk
	}

	messages := make([]domain.Message, 0, len(history)+1)
	messages = append(messages, domain.Message{
		Role:    domain.RoleSystem,
		Content: chatInstruction + "\n\nContext: " + joinChunks(chunks),
	})
	messages = append(messages, history...)
	return messages
}
