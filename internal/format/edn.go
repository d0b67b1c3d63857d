package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"
)

// WriteEDN writes v as EDN. Values go through encoding/json first so struct tags
// decide the field names; map keys become kebab-case keywords.
func WriteEDN(w io.Writer, v any, pretty bool) error {
	b, err := json.Marshal(v)
	if err != nil {
		return err
	}
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.UseNumber()
	var generic any
	if err := dec.Decode(&generic); err != nil {
		return err
	}

	e := &ednWriter{pretty: pretty}
	e.value(generic, 0)
	e.buf.WriteByte('\n')
	_, err = w.Write(e.buf.Bytes())
	return err
}

type ednWriter struct {
	buf    bytes.Buffer
	pretty bool
}

func (e *ednWriter) value(v any, depth int) {
	switch x := v.(type) {
	case nil:
		e.buf.WriteString("nil")
	case bool:
		e.buf.WriteString(strconv.FormatBool(x))
	case json.Number:
		e.buf.WriteString(x.String())
	case string:
		e.buf.WriteString(strconv.Quote(x))
	case []any:
		e.open('[')
		for i, item := range x {
			e.sep(i, depth+1)
			e.value(item, depth+1)
		}
		e.close(']', len(x), depth)
	case map[string]any:
		keys := make([]string, 0, len(x))
		for k := range x {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		e.open('{')
		for i, k := range keys {
			e.sep(i, depth+1)
			e.buf.WriteString(keyword(k))
			e.buf.WriteByte(' ')
			e.value(x[k], depth+1)
		}
		e.close('}', len(keys), depth)
	default:
		e.buf.WriteString(strconv.Quote(fmt.Sprint(x)))
	}
}

func (e *ednWriter) open(c byte) { e.buf.WriteByte(c) }

// sep writes what goes before the i-th element of a collection.
func (e *ednWriter) sep(i, depth int) {
	switch {
	case e.pretty:
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat("  ", depth))
	case i > 0:
		e.buf.WriteByte(' ')
	}
}

func (e *ednWriter) close(c byte, n, depth int) {
	if e.pretty && n > 0 {
		e.buf.WriteByte('\n')
		e.buf.WriteString(strings.Repeat("  ", depth))
	}
	e.buf.WriteByte(c)
}

// keyword turns a JSON field name into an EDN keyword: created_at -> :created-at.
func keyword(k string) string {
	k = strings.TrimSpace(k)
	k = strings.NewReplacer("_", "-", " ", "-").Replace(k)
	if k == "" {
		return `:_`
	}
	return ":" + k
}
