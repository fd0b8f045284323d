package config

import (
	"bytes"
	"encoding/json"
	"io"
	"reflect"

	"github.com/domiot-io/another-mutex/pkg/core"
)

// ParamsLoader is an abstraction for parsing configurations from a given io.Reader instance.
type ParamsLoader interface {
	// LoadParams parses an instance of the Params type using a given instance of io.Reader.
	LoadParams(io.Reader, *Params) error
}

// ParamsWriter is an abstraction for storing configurations using a given instance of io.Writer.
type ParamsWriter interface {
	// StoreParams outputs a representation of the Params using the provided io.Writer.
	StoreParams(io.Writer, *Params) error
}

type jsonConfigLoader struct{}

func (l jsonConfigLoader) LoadParams(reader io.Reader, params *Params) error {
	if params == nil {
		return core.NewConfigError("params parameter is nil")
	}

	var buffer bytes.Buffer
	decoder := json.NewDecoder(io.TeeReader(reader, &buffer))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(params); err != nil {
		return err
	}
	// every field has to be present, a partial document is most likely a typo
	var parsedJSON map[string]interface{}
	if err := json.NewDecoder(&buffer).Decode(&parsedJSON); err != nil {
		return err
	}
	if reflect.Indirect(reflect.ValueOf(params)).NumField() != len(parsedJSON) {
		return core.NewConfigError("Provided configuration has incorrect number of fields")
	}
	return nil
}

func (l jsonConfigLoader) StoreParams(writer io.Writer, params *Params) error {
	encoder := json.NewEncoder(writer)
	encoder.SetIndent("", "  ")
	return encoder.Encode(*params)
}

// NewJSONConfigLoader returns a new instance of the ParamsLoader type that expects that the provided configuration
// is stored using the JSON format.
func NewJSONConfigLoader() ParamsLoader {
	return jsonConfigLoader{}
}

// NewJSONConfigWriter returns a new instance of the ParamsWriter type that stores the configuration using the JSON
// format.
func NewJSONConfigWriter() ParamsWriter {
	return jsonConfigLoader{}
}
