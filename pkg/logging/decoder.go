package logging

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog"
)

type decoder struct {
	writer io.Writer
}

// NewDecoder creates a decoder that writes to the given writer.
// Decoder implements io.Writer that takes []bytes with single
// log event in JSON and writes it in human readable form
func NewDecoder(writer io.Writer) io.Writer {
	return &decoder{writer: writer}
}

func (d *decoder) Write(p []byte) (n int, err error) {
	var data map[string]interface{}
	err = json.Unmarshal(p, &data)
	if err != nil {
		return 0, err
	}
	_, err = io.WriteString(d.writer, decode(data))
	if err != nil {
		return 0, err
	}
	return len(p), nil
}

// decode renders one event. Fixed columns go first, the remaining fields follow sorted by key.
func decode(data map[string]interface{}) string {
	if event, ok := data[Event]; ok && event == Genesis {
		return fmt.Sprintln("Beginning of time at", data[Genesis])
	}
	var b strings.Builder
	if val, ok := data[Time]; ok {
		fmt.Fprintf(&b, "%6v|", val)
	}
	if val, ok := data[Level]; ok {
		if s, isStr := val.(string); isStr {
			i, _ := strconv.Atoi(s)
			fmt.Fprintf(&b, "%5v|", zerolog.Level(i))
		}
	}
	if val, ok := data[Service]; ok {
		if f, isNum := val.(float64); isNum {
			fmt.Fprintf(&b, "%s:%7v|", fieldNameDict[Service], serviceTypeDict[int(f)])
		}
	}
	keys := make([]string, 0, len(data))
	for k := range data {
		if k == Time || k == Service || k == Event || k == Level {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		name := k
		if f, ok := fieldNameDict[k]; ok {
			name = f
		}
		fmt.Fprintf(&b, "%8s = %-6v|", name, data[k])
	}
	if val, ok := data[Event]; ok {
		s := fmt.Sprint(val)
		if h, in := eventTypeDict[s]; in {
			s = h
		}
		b.WriteString("  " + s)
	}
	b.WriteString("\n")
	return b.String()
}
