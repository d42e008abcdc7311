// ABOUTME: Escalation detector for routing conversations to human support
// ABOUTME: Fixed, auditable keyword policy rather than an opaque classifier
package core

import "strings"

// escalationKeywords is the reviewable policy list. A match routes the turn to
// a human instead of the model; keep this list short and explicit so misses
// are traceable to a rule, not to model behavior.
var escalationKeywords = []string{
	"refund",
	"money back",
}

// HandoffMessage is the fixed reply returned when an escalation triggers.
const HandoffMessage = "I understand you're asking about refunds or money back. " +
	"I'd be happy to connect you with our support team who can better assist you with this request. " +
	"Would you like me to transfer you to a human agent?"

// EscalationReason labels escalation audit log entries.
const EscalationReason = "refund_or_money_back_request"

// IsEscalation reports whether message matches the escalation keyword policy.
// Matching is a case-insensitive substring check.
func IsEscalation(message string) bool {
	lower := strings.ToLower(message)
	for _, kw := range escalationKeywords {
		if strings.Contains(lower, kw) {
			return true
		}
	}
	return false
}
