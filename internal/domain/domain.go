package domain

// Chunk is a contiguous span of text extracted from an uploaded document.
// Index is the chunk's position in the original document order.
type Chunk struct {
	Index  int    `json:"index"`
	Text   string `json:"text"`
	Source string `json:"source,omitempty"`
}

// RetrievedChunk is a chunk returned from a similarity query along with
// the score assigned by the vector store. The ordering of scores is owned
// by the store; this package only carries them through.
type RetrievedChunk struct {
	Chunk
	Score float32 `json:"score"`
}

// Message roles in the OpenAI-compatible chat format.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single role-tagged conversation turn.
type Message struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}
