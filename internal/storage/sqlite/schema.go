// ABOUTME: SQLite database schema for the second brain datastore
// ABOUTME: Creates the five logical tables the intake engine writes to
package sqlite

// Schema contains all SQL statements for database initialization.
// name_normalized on contacts is deliberately NOT unique: dedup is a
// lookup-before-insert in the reconciler, and NO replies intentionally
// create second rows with the same normalized name.
const Schema = `
-- Captured notes
CREATE TABLE IF NOT EXISTS notes (
    id TEXT PRIMARY KEY,
    content TEXT NOT NULL,
    category TEXT NOT NULL DEFAULT 'other',
    extracted_title TEXT,
    extracted_context TEXT,
    source_phone TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Rolodex contacts
CREATE TABLE IF NOT EXISTS contacts (
    id TEXT PRIMARY KEY,
    name TEXT NOT NULL,
    name_normalized TEXT NOT NULL,
    description TEXT,
    tags TEXT NOT NULL DEFAULT '[]',
    source_phone TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Calendar events, synced or local-only
CREATE TABLE IF NOT EXISTS calendar_events (
    id TEXT PRIMARY KEY,
    google_event_id TEXT,
    title TEXT NOT NULL,
    event_date TEXT NOT NULL,
    event_time TEXT NOT NULL,
    end_time TEXT,
    description TEXT,
    people TEXT NOT NULL DEFAULT '[]',
    has_google_meet INTEGER NOT NULL DEFAULT 0,
    google_meet_link TEXT,
    original_message TEXT NOT NULL,
    source_phone TEXT,
    synced INTEGER NOT NULL DEFAULT 0,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Pending multi-turn dialogue, at most one per phone number
CREATE TABLE IF NOT EXISTS conversation_states (
    id TEXT PRIMARY KEY,
    phone_number TEXT NOT NULL UNIQUE,
    state TEXT NOT NULL,
    pending_action TEXT,
    pending_data TEXT,
    related_record_id TEXT,
    expires_at DATETIME NOT NULL,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Google OAuth credential singleton
CREATE TABLE IF NOT EXISTS oauth_tokens (
    id INTEGER PRIMARY KEY CHECK (id = 1),
    access_token TEXT NOT NULL,
    refresh_token TEXT NOT NULL,
    token_type TEXT NOT NULL DEFAULT 'Bearer',
    expires_at DATETIME NOT NULL,
    scope TEXT,
    google_email TEXT,
    created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
    updated_at DATETIME DEFAULT CURRENT_TIMESTAMP
);

-- Indexes for efficient querying
CREATE INDEX IF NOT EXISTS idx_notes_category ON notes(category);
CREATE INDEX IF NOT EXISTS idx_notes_created ON notes(created_at);
CREATE INDEX IF NOT EXISTS idx_contacts_normalized ON contacts(name_normalized);
CREATE INDEX IF NOT EXISTS idx_events_date ON calendar_events(event_date);
CREATE INDEX IF NOT EXISTS idx_states_expires ON conversation_states(expires_at);
`

// SchemaVersion is the current schema version for migrations
const SchemaVersion = 1
