// Copyright (c) 2026 Madalin Gabriel Ignisca <hi@madalin.me>
// Copyright (c) 2026 Vlah Software House SRL <contact@vlah.sh>
// All rights reserved. See LICENSE for details.

package store

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"brandstudio/internal/models"
)

// AgentLogStore appends pipeline audit rows.
type AgentLogStore struct {
	db *sql.DB
}

// NewAgentLogStore creates a new AgentLogStore.
func NewAgentLogStore(db *sql.DB) *AgentLogStore {
	return &AgentLogStore{db: db}
}

// Append records one pipeline run.
func (s *AgentLogStore) Append(userID uuid.UUID, agentName, inputPrompt string, output any) error {
	out, err := json.Marshal(output)
	if err != nil {
		return fmt.Errorf("encode agent output: %w", err)
	}
	_, err = s.db.Exec(`
		INSERT INTO agent_logs (user_id, agent_name, input_prompt, output_json)
		VALUES ($1, $2, $3, $4)
	`, userID, agentName, inputPrompt, string(out))
	if err != nil {
		return fmt.Errorf("append agent log: %w", err)
	}
	return nil
}

// ListByUser returns the most recent log rows for a user, newest first.
func (s *AgentLogStore) ListByUser(userID uuid.UUID, limit int) ([]models.AgentLog, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, agent_name, input_prompt, output_json, created_at
		FROM agent_logs WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("list agent logs: %w", err)
	}
	defer rows.Close()

	var logs []models.AgentLog
	for rows.Next() {
		var l models.AgentLog
		var out []byte
		if err := rows.Scan(&l.ID, &l.UserID, &l.AgentName, &l.InputPrompt, &out, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan agent log: %w", err)
		}
		l.OutputJSON = json.RawMessage(out)
		logs = append(logs, l)
	}
	return logs, rows.Err()
}
