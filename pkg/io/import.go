package io

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	perrors "github.com/matzehuels/procview/pkg/errors"
	"github.com/matzehuels/procview/pkg/process"
)

// ReadJSON decodes a process document from r.
//
// The input is the process wire form:
//
//	{
//	  "id": "order",
//	  "properties": {"additionalFields": {"groups": [{"id": "g", "nodes": ["a", "b"]}]}},
//	  "nodes": [{"id": "a"}, {"id": "b"}],
//	  "edges": [{"from": "a", "to": "b"}]
//	}
//
// ReadJSON returns an error if:
//   - The JSON is malformed
//   - A node id is invalid or used twice
//   - An edge references an unknown node id
//   - The group definitions fail [process.Validate]
//
// Errors carry codes from pkg/errors and name the offending node or edge.
// ReadJSON does not close r.
func ReadJSON(r io.Reader) (process.Process, error) {
	var p process.Process
	if err := json.NewDecoder(r).Decode(&p); err != nil {
		return process.Process{}, perrors.Wrap(perrors.ErrCodeInvalidInput, err, "decode process")
	}
	if err := check(p); err != nil {
		return process.Process{}, err
	}
	return p, nil
}

func check(p process.Process) error {
	seen := make(map[string]bool, len(p.Nodes))
	for _, n := range p.Nodes {
		if err := perrors.ValidateNodeID(n.ID); err != nil {
			return err
		}
		if seen[n.ID] {
			return perrors.New(perrors.ErrCodeInvariantViolation, "duplicate node id %q", n.ID)
		}
		seen[n.ID] = true
	}
	for _, e := range p.Edges {
		if !seen[e.From] || !seen[e.To] {
			return perrors.New(perrors.ErrCodeNotFound, "edge %s->%s references an unknown node", e.From, e.To)
		}
	}
	return process.Validate(p)
}

// ImportJSON reads a process document from the file at path.
func ImportJSON(path string) (process.Process, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return process.Process{}, perrors.Wrap(perrors.ErrCodeNotFound, err, "open %s", path)
		}
		return process.Process{}, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return ReadJSON(f)
}
