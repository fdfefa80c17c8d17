package todo

import (
	"encoding/json"
	"fmt"
	"math"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const payloadSchema = `{
	"type": "array",
	"items": {
		"type": "object",
		"required": ["id", "text", "completed"],
		"properties": {
			"id": {"type": "integer"},
			"text": {"type": "string"},
			"completed": {"type": "boolean"}
		}
	}
}`

var schema = jsonschema.MustCompileString("tasks.json", payloadSchema)

// decode parses a persisted payload. Anything that is not an array of task
// objects is an error; callers treat errors as an empty list.
func decode(raw string) ([]Task, error) {
	var doc interface{}
	if err := json.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	if err := schema.Validate(doc); err != nil {
		return nil, fmt.Errorf("validate tasks: %w", err)
	}
	var stored []storedTask
	if err := json.Unmarshal([]byte(raw), &stored); err != nil {
		return nil, fmt.Errorf("decode tasks: %w", err)
	}
	tasks := make([]Task, 0, len(stored))
	for _, st := range stored {
		id, err := parseID(st.ID)
		if err != nil {
			return nil, fmt.Errorf("decode task id %q: %w", st.ID, err)
		}
		tasks = append(tasks, Task{ID: id, Text: st.Text, Completed: st.Completed})
	}
	return tasks, nil
}

// storedTask keeps the id as written so exponent forms like 1e3, which the
// schema accepts as integers, still decode.
type storedTask struct {
	ID        json.Number `json:"id"`
	Text      string      `json:"text"`
	Completed bool        `json:"completed"`
}

func parseID(n json.Number) (int64, error) {
	if id, err := n.Int64(); err == nil {
		return id, nil
	}
	f, err := n.Float64()
	if err != nil {
		return 0, err
	}
	if f != math.Trunc(f) || f >= 1<<63 || f < -(1<<63) {
		return 0, fmt.Errorf("not an integer id")
	}
	return int64(f), nil
}

func encode(tasks []Task) (string, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return "", err
	}
	return string(data), nil
}
