package todo

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"

	"github.com/nibzard/tasktrack/internal/utils"
)

const schemaURL = "tasks.schema.json"

//go:embed tasks.schema.json
var schemaJSON string

var (
	schemaOnce sync.Once
	schema     *jsonschema.Schema
	schemaErr  error
)

func compiledSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
			schemaErr = fmt.Errorf("add schema resource: %w", err)
			return
		}
		schema, schemaErr = compiler.Compile(schemaURL)
	})
	return schema, schemaErr
}

// Encode serializes tasks to the persisted JSON array form.
// A nil slice encodes as an empty array.
func Encode(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal tasks: %w", err)
	}
	return data, nil
}

// storedTask is the decoded form of one persisted entry. The schema admits
// any integral number as an id (1.0, 1e20), so it is read as a json.Number.
type storedTask struct {
	ID     json.Number `json:"id"`
	Desc   string      `json:"desc"`
	Status Status      `json:"status"`
}

// Decode parses and validates a persisted task collection.
// Ids are returned as stored when they fit an int and as 0 otherwise;
// callers that own id allocation reassign them.
func Decode(data []byte) ([]Task, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &ValidationError{Err: errors.New("empty document")}
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var raw interface{}
	if err := dec.Decode(&raw); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}

	s, err := compiledSchema()
	if err != nil {
		return nil, err
	}
	if err := s.Validate(raw); err != nil {
		return nil, schemaError(err)
	}

	var stored []storedTask
	if err := json.Unmarshal(data, &stored); err != nil {
		return nil, fmt.Errorf("parse tasks: %w", err)
	}
	tasks := make([]Task, len(stored))
	for i, st := range stored {
		tasks[i] = Task{ID: storedID(st.ID), Desc: st.Desc, Status: st.Status}
	}
	return tasks, nil
}

func storedID(n json.Number) int {
	if n == "" {
		return 0
	}
	if id, err := strconv.ParseInt(string(n), 10, 0); err == nil {
		return int(id)
	}
	f, err := n.Float64()
	if err != nil || f < 0 || f > math.MaxInt32 {
		return 0
	}
	return int(f)
}

// schemaError reduces a schema validation failure to its first leaf cause.
func schemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Err: err}
	}
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return &ValidationError{
		Path: utils.JSONPointerToPath(ve.InstanceLocation),
		Err:  errors.New(ve.Message),
	}
}
