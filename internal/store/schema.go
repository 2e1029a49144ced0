package store

// Child rows hang off their parent link or note via cascading foreign
// keys; the content table is maintained explicitly because virtual
// tables cannot carry them.
const coreSchemaSQL = `
CREATE TABLE IF NOT EXISTS link (
	id          BLOB PRIMARY KEY,
	url         TEXT NOT NULL UNIQUE,
	title       TEXT,
	description TEXT,
	is_primary  BOOLEAN NOT NULL DEFAULT FALSE,
	created_at  TEXT NOT NULL,
	modified_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS note (
	id          BLOB PRIMARY KEY,
	content     TEXT NOT NULL,
	title       TEXT NOT NULL UNIQUE,
	link_id     BLOB REFERENCES link(id) ON DELETE CASCADE,
	created_at  TEXT NOT NULL,
	modified_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS tag (
	id          BLOB PRIMARY KEY,
	name        TEXT NOT NULL,
	slug        TEXT NOT NULL UNIQUE,
	created_at  TEXT NOT NULL,
	modified_at TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS item_tag (
	link_id BLOB REFERENCES link(id) ON DELETE CASCADE,
	note_id BLOB REFERENCES note(id) ON DELETE CASCADE,
	tag_id  BLOB NOT NULL REFERENCES tag(id) ON DELETE CASCADE,
	UNIQUE(link_id, tag_id),
	UNIQUE(note_id, tag_id)
);

CREATE TABLE IF NOT EXISTS related_link (
	primary_link_id BLOB NOT NULL REFERENCES link(id) ON DELETE CASCADE,
	related_link_id BLOB NOT NULL REFERENCES link(id) ON DELETE CASCADE,
	relationship    TEXT,
	UNIQUE(primary_link_id, related_link_id)
);

CREATE INDEX IF NOT EXISTS idx_related_primary ON related_link(primary_link_id);
CREATE INDEX IF NOT EXISTS idx_related_related ON related_link(related_link_id);
`
