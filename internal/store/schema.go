// ABOUTME: SQLite schema for conversations, messages, usage, settings, and the knowledge index
// ABOUTME: Creates all tables and indexes for the chat backend
package store

// Schema contains all SQL statements for database initialization
const Schema = `
-- Conversations (title is derived from the first user message)
CREATE TABLE IF NOT EXISTS conversations (
    id TEXT PRIMARY KEY,
    title TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Messages: append-only conversation log
CREATE TABLE IF NOT EXISTS messages (
    id TEXT PRIMARY KEY,
    conversation_id TEXT NOT NULL REFERENCES conversations(id) ON DELETE CASCADE,
    role TEXT NOT NULL CHECK (role IN ('user', 'assistant')),
    content TEXT NOT NULL,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Token usage: one row per successful generation call
CREATE TABLE IF NOT EXISTS token_usage (
    id INTEGER PRIMARY KEY AUTOINCREMENT,
    conversation_id TEXT REFERENCES conversations(id) ON DELETE SET NULL,
    prompt_tokens INTEGER NOT NULL DEFAULT 0,
    completion_tokens INTEGER NOT NULL DEFAULT 0,
    total_tokens INTEGER NOT NULL DEFAULT 0,
    cost REAL NOT NULL DEFAULT 0.0,
    estimated BOOLEAN NOT NULL DEFAULT FALSE,
    timestamp DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Settings (key/value, editable via the admin surface)
CREATE TABLE IF NOT EXISTS settings (
    key TEXT PRIMARY KEY,
    value TEXT
);

-- Knowledge index chunks with their embedding vectors
CREATE TABLE IF NOT EXISTS kb_chunks (
    index_name TEXT NOT NULL,
    chunk_id TEXT NOT NULL,
    ordinal INTEGER NOT NULL,
    content TEXT NOT NULL,
    vector BLOB NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    PRIMARY KEY (index_name, chunk_id)
);

CREATE INDEX IF NOT EXISTS idx_messages_conversation ON messages(conversation_id, timestamp);
CREATE INDEX IF NOT EXISTS idx_usage_conversation ON token_usage(conversation_id);
CREATE INDEX IF NOT EXISTS idx_kb_chunks_name ON kb_chunks(index_name, ordinal);
`

// DefaultSettings seeds the settings table on first run.
var DefaultSettings = map[string]string{
	"welcome_message": "Hello! How can I help you today?",
	"fallback_message": "I don't have specific information about that in my knowledge base, " +
		"but I'd be happy to help with general questions or other topics!",
	"tone_instructions": "You are a helpful, friendly human assistant (not a bot). " +
		"Write in a natural, conversational style like you're chatting with a friend. " +
		"Use contractions (I'm, you're, that's), casual language, and vary your sentence structure. " +
		"Don't use numbered lists unless specifically asked. " +
		"Instead, write in flowing paragraphs with natural transitions. " +
		"Be warm, personable, and genuine. " +
		"When explaining things, break them into easy-to-understand chunks within your natural conversation flow. " +
		"Avoid robotic phrases like 'Here is' or 'The answer is'. Just talk naturally!",
}
