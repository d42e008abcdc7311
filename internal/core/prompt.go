// ABOUTME: Prompt assembler composing instructions, context, memory, and the question
// ABOUTME: Deterministic template with fixed section ordering
package core

import "strings"

// NoContextPlaceholder stands in for the retrieved-information block when the
// knowledge index returned nothing.
const NoContextPlaceholder = "No specific context available."

const closingReminder = "Remember to write naturally like a human having a conversation - " +
	"no robotic language or unnecessary lists. Just explain things clearly in flowing paragraphs, " +
	"the way you'd talk to a friend. Be warm, genuine, and helpful!"

// Assemble builds the generation prompt. Ordering is fixed: system
// instructions, the retrieved-information block, the conversation-so-far block
// (omitted entirely when memory is empty, so the model never sees an empty
// section header), the user message, and a closing style reminder.
func Assemble(systemInstructions, retrievedContext, memoryContext, userMessage string) string {
	if retrievedContext == "" {
		retrievedContext = NoContextPlaceholder
	}

	var sb strings.Builder
	sb.WriteString(systemInstructions)
	sb.WriteString("\n\nHere's some relevant information that might help you:\n\n")
	sb.WriteString(retrievedContext)
	sb.WriteString("\n")

	if memoryContext != "" {
		sb.WriteString("\nOur conversation so far:\n\n")
		sb.WriteString(memoryContext)
		sb.WriteString("\n")
	}

	sb.WriteString("\nNow, the user is asking: ")
	sb.WriteString(userMessage)
	sb.WriteString("\n\n")
	sb.WriteString(closingReminder)

	return sb.String()
}
