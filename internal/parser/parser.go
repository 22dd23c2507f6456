package parser

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/tidwall/gjson"

	"github.com/mcncl/jsonstruct/internal/errors"
	"github.com/mcncl/jsonstruct/internal/models"
)

var iterConfig = jsoniter.ConfigCompatibleWithStandardLibrary

// Parse reads a single JSON document from reader into an ordered value tree.
func Parse(reader io.Reader) (models.IntermediateRepresentation, error) {
	data, err := io.ReadAll(reader)
	if err != nil {
		return models.IntermediateRepresentation{}, errors.NewInputError("failed to read input", err)
	}
	return ParseBytes(data)
}

// ParseBytes decodes data into an ordered value tree. Object keys keep their
// document order and numbers are kept as json.Number.
func ParseBytes(data []byte) (models.IntermediateRepresentation, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return models.IntermediateRepresentation{}, errors.NewParsingError("input is empty or contains only whitespace", errors.ErrEmptyInput)
	}

	iter := jsoniter.ParseBytes(iterConfig, data)
	root := readValue(iter)
	if iter.Error != nil && iter.Error != io.EOF {
		return models.IntermediateRepresentation{}, errors.NewParsingError("JSON syntax error", errors.Mark(iter.Error, errors.ErrInvalidJSON))
	}

	// Only whitespace may follow the document.
	if iter.Error == nil {
		if next := iter.WhatIsNext(); next != jsoniter.InvalidValue {
			return models.IntermediateRepresentation{}, errors.NewParsingError("multiple JSON values found at the root", errors.ErrMultipleJSON)
		}
		if iter.Error != io.EOF {
			return models.IntermediateRepresentation{}, errors.NewParsingError("invalid trailing data after the JSON document", errors.ErrInvalidJSON)
		}
	}

	return models.IntermediateRepresentation{
		Root: root,
		Raw:  data,
	}, nil
}

// readValue decodes the next value from iter. Errors are left on iter.
func readValue(iter *jsoniter.Iterator) models.JSONValue {
	switch iter.WhatIsNext() {
	case jsoniter.NilValue:
		iter.ReadNil()
		return nil
	case jsoniter.BoolValue:
		return iter.ReadBool()
	case jsoniter.StringValue:
		return iter.ReadString()
	case jsoniter.NumberValue:
		num := iter.ReadNumber()
		// The iterator accepts any run of number characters; leading zeros
		// and a dangling '.' are rejected here.
		if healthy(iter) && !gjson.Valid(string(num)) {
			iter.ReportError("ReadNumber", fmt.Sprintf("invalid number %q", string(num)))
		}
		return num
	case jsoniter.ArrayValue:
		arr := models.JSONArray{}
		iter.ReadArrayCB(func(iter *jsoniter.Iterator) bool {
			arr = append(arr, readValue(iter))
			return healthy(iter)
		})
		return arr
	case jsoniter.ObjectValue:
		obj := &models.JSONObject{}
		iter.ReadObjectCB(func(iter *jsoniter.Iterator, key string) bool {
			obj.Set(key, readValue(iter))
			return healthy(iter)
		})
		return obj
	default:
		iter.ReportError("ReadValue", "expect a JSON value")
		return nil
	}
}

// healthy reports whether decoding can continue. io.EOF is set by the
// iterator after a number that ends the input, which is not an error by itself;
// a missing closing bracket is reported by the enclosing array or object.
func healthy(iter *jsoniter.Iterator) bool {
	return iter.Error == nil || iter.Error == io.EOF
}

// ParseString parses JSON from a string
func ParseString(jsonString string) (models.IntermediateRepresentation, error) {
	if strings.TrimSpace(jsonString) == "" {
		return models.IntermediateRepresentation{}, errors.NewInputError("input string is empty", errors.ErrEmptyInput)
	}
	return ParseBytes([]byte(jsonString))
}

// ParseFile parses JSON from a file path
func ParseFile(filePath string) (models.IntermediateRepresentation, error) {
	data, err := ReadFile(filePath)
	if err != nil {
		return models.IntermediateRepresentation{}, err
	}
	return ParseBytes(data)
}

// ReadFile reads an input file, reporting a missing or empty file as an
// input error.
func ReadFile(filePath string) ([]byte, error) {
	if strings.TrimSpace(filePath) == "" {
		return nil, errors.NewInputError("file path is empty", errors.ErrInvalidFilePath)
	}
	data, err := os.ReadFile(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.NewInputError(
				fmt.Sprintf("file '%s' not found", filePath),
				errors.Wrapf(errors.ErrFileNotFound, "open %s", filePath),
			)
		}
		return nil, errors.NewInputError(
			fmt.Sprintf("failed to read file '%s'", filePath),
			err,
		)
	}
	if len(data) == 0 {
		return nil, errors.NewInputError(
			fmt.Sprintf("input file '%s' is empty", filePath),
			errors.ErrEmptyInput,
		)
	}
	return data, nil
}

// SelectPath narrows ir down to the value at a gjson path such as
// "data.items.0". The selected value is re-parsed so its key order is kept.
func SelectPath(ir models.IntermediateRepresentation, path string) (models.IntermediateRepresentation, error) {
	if path == "" {
		return ir, nil
	}
	result := gjson.GetBytes(ir.Raw, path)
	if !result.Exists() {
		return models.IntermediateRepresentation{}, errors.NewInputError(
			fmt.Sprintf("path '%s' does not match any value", path),
			errors.ErrPathNotFound,
		)
	}
	return ParseBytes([]byte(result.Raw))
}

// Decode unmarshals data into v with the parser's JSON configuration. The
// document is parsed first so syntax errors carry the same diagnostics as
// ParseBytes.
func Decode(data []byte, v interface{}) error {
	if _, err := ParseBytes(data); err != nil {
		return err
	}
	if err := iterConfig.Unmarshal(data, v); err != nil {
		return errors.NewParsingError("failed to decode JSON", errors.Mark(err, errors.ErrInvalidJSON))
	}
	return nil
}
