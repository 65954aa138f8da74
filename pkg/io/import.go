package io

import (
	"encoding/json"
	"io"
	"os"

	"github.com/matzehuels/packnav/pkg/errors"
	"github.com/matzehuels/packnav/pkg/pack"
)

// ReadJSON decodes a JSON tree from r, validates it and prepares it.
//
// ReadJSON returns an INVALID_TREE error if the JSON is malformed or a node
// has no name. ReadJSON does not close r.
func ReadJSON(r io.Reader) (*pack.Node, error) {
	var root pack.Node
	if err := json.NewDecoder(r).Decode(&root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode")
	}
	if err := pack.Validate(&root); err != nil {
		return nil, err
	}
	pack.Prepare(&root)
	return &root, nil
}

// ParseJSON is ReadJSON over a byte slice.
func ParseJSON(data []byte) (*pack.Node, error) {
	var root pack.Node
	if err := json.Unmarshal(data, &root); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidTree, err, "decode")
	}
	if err := pack.Validate(&root); err != nil {
		return nil, err
	}
	pack.Prepare(&root)
	return &root, nil
}

// ImportJSON reads a JSON file at path and returns the decoded tree.
// A missing file is reported as NOT_FOUND.
func ImportJSON(path string) (*pack.Node, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(errors.ErrCodeNotFound, err, "open %s", path)
		}
		return nil, errors.Wrap(errors.ErrCodeInvalidInput, err, "open %s", path)
	}
	defer f.Close()
	return ReadJSON(f)
}
