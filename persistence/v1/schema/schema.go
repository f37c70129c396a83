package schema

// schema holds one statement per table, executed in order, so the mysql dsn does not need multiStatements
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		email VARCHAR(255) NOT NULL,
		createdAt DATETIME NOT NULL,
		PRIMARY KEY (id),
		UNIQUE KEY uq_users_email (email)
	)`,
	`CREATE TABLE IF NOT EXISTS notes (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		title VARCHAR(500) NOT NULL,
		description TEXT NULL,
		color VARCHAR(255) NULL,
		image VARCHAR(500) NULL,
		isArchive BOOLEAN NOT NULL DEFAULT FALSE,
		isTrash BOOLEAN NOT NULL DEFAULT FALSE,
		reminder DATETIME NULL,
		ownerId BIGINT UNSIGNED NOT NULL,
		updatedAt DATETIME NOT NULL,
		createdAt DATETIME NOT NULL,
		PRIMARY KEY (id),
		KEY idx_notes_owner (ownerId),
		KEY idx_notes_title (title),
		CONSTRAINT fk_notes_owner FOREIGN KEY (ownerId) REFERENCES users (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS collaborators (
		noteId BIGINT UNSIGNED NOT NULL,
		userId BIGINT UNSIGNED NOT NULL,
		access VARCHAR(32) NOT NULL DEFAULT 'READ_WRITE',
		createdAt DATETIME NOT NULL,
		PRIMARY KEY (noteId, userId),
		KEY idx_collaborators_user (userId),
		CONSTRAINT fk_collaborators_note FOREIGN KEY (noteId) REFERENCES notes (id) ON DELETE CASCADE,
		CONSTRAINT fk_collaborators_user FOREIGN KEY (userId) REFERENCES users (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS labels (
		id BIGINT UNSIGNED NOT NULL AUTO_INCREMENT,
		name VARCHAR(255) NOT NULL,
		ownerId BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (id),
		CONSTRAINT fk_labels_owner FOREIGN KEY (ownerId) REFERENCES users (id) ON DELETE CASCADE
	)`,
	`CREATE TABLE IF NOT EXISTS note_labels (
		noteId BIGINT UNSIGNED NOT NULL,
		labelId BIGINT UNSIGNED NOT NULL,
		PRIMARY KEY (noteId, labelId),
		CONSTRAINT fk_note_labels_note FOREIGN KEY (noteId) REFERENCES notes (id) ON DELETE CASCADE,
		CONSTRAINT fk_note_labels_label FOREIGN KEY (labelId) REFERENCES labels (id) ON DELETE CASCADE
	)`,
}

// dropSchema is the reverse of schema, children first
var dropSchema = []string{
	`DROP TABLE IF EXISTS note_labels`,
	`DROP TABLE IF EXISTS labels`,
	`DROP TABLE IF EXISTS collaborators`,
	`DROP TABLE IF EXISTS notes`,
	`DROP TABLE IF EXISTS users`,
}
