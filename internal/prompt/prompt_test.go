package prompt

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CodeurSahil/ChatDOCX-pdf-rag/internal/domain"
)

func retrieved(texts ...string) []domain.RetrievedChunk {
	out := make([]domain.RetrievedChunk, len(texts))
	for i, t := range texts {
		out[i] = domain.RetrievedChunk{Chunk: domain.Chunk{Index: i, Text: t}}
	}
	return out
}

func TestBuildIngestionPrompt(t *testing.T) {
	messages := BuildIngestionPrompt([]domain.Chunk{
		{Index: 0, Text: "Opening of the document."},
		{Index: 1, Text: "Continuation of the opening."},
	})

	require.Len(t, messages, 2)
	assert.Equal(t, domain.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "ChatDOCX")
	assert.Contains(t, messages[0].Content, "100 words")

	assert.Equal(t, domain.RoleUser, messages[1].Role)
	assert.Contains(t, messages[1].Content, "Opening of the document.\n\nContinuation of the opening.")
}

func TestBuildChatPromptSystemFirst(t *testing.T) {
	history := []domain.Message{
		{Role: domain.RoleUser, Content: "What is this about?"},
	}
	messages := BuildChatPrompt(retrieved("context chunk"), history)

	require.NotEmpty(t, messages)
	assert.Equal(t, domain.RoleSystem, messages[0].Role)
	assert.Contains(t, messages[0].Content, "150-200 words")
	assert.Contains(t, messages[0].Content, "Would you like to know more about this topic?")
	assert.Contains(t, messages[0].Content, "Context: context chunk")
}

func TestBuildChatPromptPreservesHistoryOrder(t *testing.T) {
	history := []domain.Message{
		{Role: domain.RoleUser, Content: "first question"},
		{Role: domain.RoleAssistant, Content: "first answer"},
		{Role: domain.RoleUser, Content: "second question"},
	}
	messages := BuildChatPrompt(retrieved("ctx"), history)

	require.Len(t, messages, 4)
	assert.Equal(t, history, messages[1:])
}

func TestBuildChatPromptJoinsChunksWithBlankLines(t *testing.T) {
	messages := BuildChatPrompt(retrieved("alpha", "beta", "gamma"), []domain.Message{
		{Role: domain.RoleUser, Content: "q"},
	})

	assert.Contains(t, messages[0].Content, "alpha\n\nbeta\n\ngamma")
}

func TestBuildChatPromptKeepsDuplicateHistory(t *testing.T) {
	history := []domain.Message{
		{Role: domain.RoleUser, Content: "same"},
		{Role: domain.RoleUser, Content: "same"},
	}
	messages := BuildChatPrompt(retrieved("ctx"), history)
	require.Len(t, messages, 3)
	assert.Equal(t, messages[1], messages[2])
}

func TestBuildChatPromptNoRetrievedChunks(t *testing.T) {
	messages := BuildChatPrompt(nil, []domain.Message{{Role: domain.RoleUser, Content: "q"}})
	require.Len(t, messages, 2)
	assert.True(t, strings.HasSuffix(messages[0].Content, "Context: "))
}
