// Package codec encodes the task list snapshot stored in a slot.
//
// The snapshot is a JSON array of task records, URL-escaped so that it is a
// valid cookie value.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/url"

	"github.com/runoshun/tasklist/internal/domain"
)

// Encode serializes the tasks in order.
func Encode(tasks []domain.Task) ([]byte, error) {
	if tasks == nil {
		tasks = []domain.Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return []byte(url.QueryEscape(string(data))), nil
}

// Decode parses a snapshot produced by Encode.
// Unescaped JSON is accepted as well.
func Decode(value []byte) ([]domain.Task, error) {
	raw := bytes.TrimSpace(value)
	if len(raw) == 0 {
		return nil, fmt.Errorf("decode tasks: empty value")
	}
	if raw[0] != '[' {
		unescaped, err := url.QueryUnescape(string(raw))
		if err != nil {
			return nil, fmt.Errorf("unescape tasks: %w", err)
		}
		raw = []byte(unescaped)
	}

	var tasks []domain.Task
	if err := json.Unmarshal(raw, &tasks); err != nil {
		return nil, fmt.Errorf("unmarshal tasks: %w", err)
	}
	return tasks, nil
}
