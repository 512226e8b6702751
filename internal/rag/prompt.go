package rag

import (
	"fmt"
	"strings"

	"supaagent/internal/llm"
)

// fallbackPersona is used when the chatbot has no persona configured.
const fallbackPersona = "You are Supa Agent — a friendly, professional, and knowledgeable company representative.\n" +
	"Your role is to:\n" +
	"- Explain what the company offers, how it works, and where it can be used.\n" +
	"- Make the concept easy to understand, and encourage users to explore the product or service.\n" +
	"INSTRUCTIONS:\n" +
	"- ONLY elaborate when the user explicitly asks for more detail (e.g., \"explain\", \"how\", \"details\", \"steps\", \"examples\").\n" +
	"- Stick to role: Never say you're an AI. For details not in your knowledge base, direct users to company support channels.\n" +
	"- Do NOT provide any links."

// systemInstructions constrains the model to the supplied context chunks.
const systemInstructions = `You are answering a user using ONLY the provided context chunks when relevant.
RULES:
1. If the answer is not clearly supported by the context, respond: "I'm not fully certain based on the available information." and optionally offer a clarifying question.
2. Never fabricate product features or external links.
3. If multiple chunks conflict, prefer the one with higher score.
4. Keep answers concise unless user explicitly asks for more detail.
5. If the user asks about something outside scope, politely deflect.
6. When you use information from a chunk, append a citation like [n] where n is the chunk number (e.g., [1], [2,3]).
7. If no chunks were used (no relevant context), do NOT hallucinate—state uncertainty.`

// noContextMarker replaces the context block when nothing survived retrieval.
const noContextMarker = "[NO CONTEXT RETRIEVED]"

// fallbackAnswer is returned verbatim when no context chunks were used.
const fallbackAnswer = "I'm not fully certain based on the available information. Could you clarify or provide more detail?"

// buildContextBlock renders the budgeted chunks into the tagged context block
// the system instructions refer to.
func buildContextBlock(chunks []candidate) string {
	if len(chunks) == 0 {
		return noContextMarker
	}
	parts := make([]string, 0, len(chunks))
	for i, c := range chunks {
		parts = append(parts, fmt.Sprintf("[[CHUNK_%d id:%s score:%.3f tokens:%d]]\n%s",
			i+1, c.ID, c.Score, c.EstTokens, strings.TrimSpace(c.Text)))
	}
	return strings.Join(parts, "\n\n")
}

// buildMessages assembles the chat messages: persona, rules and context as
// system messages, then the conversation history, then the question. History
// turns with role "bot" are mapped to "assistant".
func buildMessages(persona string, chunks []candidate, history []Turn, question string) []llm.Message {
	if strings.TrimSpace(persona) == "" {
		persona = fallbackPersona
	}

	messages := []llm.Message{
		{Role: "system", Content: persona},
		{Role: "system", Content: systemInstructions},
		{Role: "system", Content: "Context Chunks Begin\n" + buildContextBlock(chunks) + "\nContext Chunks End"},
	}
	for _, turn := range history {
		role := turn.Role
		if role == "bot" {
			role = "assistant"
		}
		messages = append(messages, llm.Message{Role: role, Content: turn.Content})
	}
	return append(messages, llm.Message{Role: "user", Content: question})
}
