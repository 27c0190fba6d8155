package db

import (
	"strings"

	"github.com/rohanthewiz/serr"
)

// KnowledgeChunk is one retrievable excerpt of the knowledge base
type KnowledgeChunk struct {
	ID       int      `json:"id"`
	Location string   `json:"location"`
	Content  string   `json:"content"`
	Keywords []string `json:"keywords"`
}

// AddKnowledgeChunk stores one excerpt with its retrieval keywords
func (db *DB) AddKnowledgeChunk(location, content string, keywords []string) error {
	var nextID int
	err := db.QueryRow(`SELECT COALESCE(MAX(id), 0) + 1 FROM knowledge_chunks`).Scan(&nextID)
	if err != nil {
		return serr.Wrap(err, "failed to get next chunk id")
	}

	_, err = db.Exec(`
		INSERT INTO knowledge_chunks (id, location, content, keywords)
		VALUES (?, ?, ?, ?)
	`, nextID, location, content, strings.Join(keywords, " "))
	if err != nil {
		return serr.Wrap(err, "failed to add knowledge chunk")
	}
	return nil
}

// ListKnowledgeChunks returns every stored excerpt
func (db *DB) ListKnowledgeChunks() ([]KnowledgeChunk, error) {
	rows, err := db.Query(`SELECT id, location, content, keywords FROM knowledge_chunks ORDER BY id`)
	if err != nil {
		return nil, serr.Wrap(err, "failed to list knowledge chunks")
	}
	defer rows.Close()

	var chunks []KnowledgeChunk
	for rows.Next() {
		var c KnowledgeChunk
		var keywords string
		if err := rows.Scan(&c.ID, &c.Location, &c.Content, &keywords); err != nil {
			return nil, serr.Wrap(err, "failed to scan knowledge chunk")
		}
		c.Keywords = strings.Fields(keywords)
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// KnowledgeChunkCount returns the number of stored excerpts
func (db *DB) KnowledgeChunkCount() (int, error) {
	var count int
	err := db.QueryRow(`SELECT COUNT(*) FROM knowledge_chunks`).Scan(&count)
	if err != nil {
		return 0, serr.Wrap(err, "failed to count knowledge chunks")
	}
	return count, nil
}
