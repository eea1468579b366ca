package graph

import (
	"bufio"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/c360studio/semstreams/message"

	"github.com/bdr-au/dataquality/vocabulary/dqaf"
)

// LoadFile loads triples from a file into the store, dispatching on the
// file extension. Supported: .nt and .ttl (line-oriented N-Triples) and
// .json (entity ingest dumps or plain triple arrays).
func LoadFile(store *Store, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open graph file: %w", err)
	}
	defer f.Close()

	source := "load:" + filepath.Base(path)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".nt", ".ttl":
		if err := loadNTriples(store, f, source); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	case ".json":
		if err := loadJSON(store, f, source); err != nil {
			return fmt.Errorf("load %s: %w", path, err)
		}
	default:
		return fmt.Errorf("unsupported graph file extension: %s", path)
	}

	slog.Debug("loaded graph file", "path", path, "triples", store.Len())
	return nil
}

// loadNTriples reads line-oriented N-Triples. Each line is
// <subject> <predicate> object . where object is an IRI or a literal.
func loadNTriples(store *Store, r io.Reader, source string) error {
	now := time.Now()
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := parseNTriplesLine(line)
		if err != nil {
			return fmt.Errorf("line %d: %w", lineNo, err)
		}
		t.Source = source
		t.Timestamp = now
		t.Confidence = 1.0
		store.Add(t)
	}
	return scanner.Err()
}

func parseNTriplesLine(line string) (message.Triple, error) {
	var t message.Triple

	rest := line
	subject, rest, err := parseIRIRef(rest)
	if err != nil {
		return t, fmt.Errorf("subject: %w", err)
	}
	predicateIRI, rest, err := parseIRIRef(strings.TrimLeft(rest, " \t"))
	if err != nil {
		return t, fmt.Errorf("predicate: %w", err)
	}
	object, rest, err := parseObject(strings.TrimLeft(rest, " \t"))
	if err != nil {
		return t, fmt.Errorf("object: %w", err)
	}
	if trailing := strings.TrimSpace(rest); trailing != "." {
		return t, fmt.Errorf("expected terminating '.', got %q", trailing)
	}

	t.Subject = subject
	t.Predicate = predicateForIRI(predicateIRI)
	t.Object = object
	return t, nil
}

func parseIRIRef(s string) (string, string, error) {
	if !strings.HasPrefix(s, "<") {
		return "", "", fmt.Errorf("expected '<', got %q", truncate(s))
	}
	end := strings.IndexByte(s, '>')
	if end < 0 {
		return "", "", fmt.Errorf("unterminated IRI: %q", truncate(s))
	}
	return s[1:end], s[end+1:], nil
}

// parseObject handles IRIs, plain literals, typed literals, and
// language-tagged literals. Typed numeric and boolean literals are
// converted to native values.
func parseObject(s string) (any, string, error) {
	if strings.HasPrefix(s, "<") {
		iri, rest, err := parseIRIRef(s)
		return iri, rest, err
	}
	if !strings.HasPrefix(s, `"`) {
		return nil, "", fmt.Errorf("expected IRI or literal, got %q", truncate(s))
	}

	lexical, rest, err := parseQuoted(s)
	if err != nil {
		return nil, "", err
	}

	if strings.HasPrefix(rest, "^^") {
		datatype, after, err := parseIRIRef(rest[2:])
		if err != nil {
			return nil, "", fmt.Errorf("datatype: %w", err)
		}
		return typedLiteral(lexical, datatype), after, nil
	}
	if strings.HasPrefix(rest, "@") {
		// Drop the language tag, keep the lexical form.
		i := strings.IndexAny(rest, " \t")
		if i < 0 {
			return nil, "", fmt.Errorf("unterminated language tag: %q", truncate(rest))
		}
		return lexical, rest[i:], nil
	}
	return lexical, rest, nil
}

func parseQuoted(s string) (string, string, error) {
	var sb strings.Builder
	i := 1
	for i < len(s) {
		c := s[i]
		switch c {
		case '"':
			return sb.String(), s[i+1:], nil
		case '\\':
			if i+1 >= len(s) {
				return "", "", fmt.Errorf("truncated escape in literal")
			}
			i++
			switch s[i] {
			case 'n':
				sb.WriteByte('\n')
			case 't':
				sb.WriteByte('\t')
			case 'r':
				sb.WriteByte('\r')
			case '"', '\\':
				sb.WriteByte(s[i])
			case 'u':
				if i+4 >= len(s) {
					return "", "", fmt.Errorf("truncated \\u escape")
				}
				code, err := strconv.ParseUint(s[i+1:i+5], 16, 32)
				if err != nil {
					return "", "", fmt.Errorf("bad \\u escape: %w", err)
				}
				sb.WriteRune(rune(code))
				i += 4
			default:
				return "", "", fmt.Errorf("unknown escape \\%c", s[i])
			}
		default:
			sb.WriteByte(c)
		}
		i++
	}
	return "", "", fmt.Errorf("unterminated literal: %q", truncate(s))
}

func typedLiteral(lexical, datatype string) any {
	switch datatype {
	case "http://www.w3.org/2001/XMLSchema#integer",
		"http://www.w3.org/2001/XMLSchema#int",
		"http://www.w3.org/2001/XMLSchema#long":
		if n, err := strconv.ParseInt(lexical, 10, 64); err == nil {
			return n
		}
	case "http://www.w3.org/2001/XMLSchema#decimal",
		"http://www.w3.org/2001/XMLSchema#double",
		"http://www.w3.org/2001/XMLSchema#float":
		if f, err := strconv.ParseFloat(lexical, 64); err == nil {
			return f
		}
	case "http://www.w3.org/2001/XMLSchema#boolean":
		if b, err := strconv.ParseBool(lexical); err == nil {
			return b
		}
	}
	return lexical
}

func truncate(s string) string {
	if len(s) > 40 {
		return s[:40] + "..."
	}
	return s
}

// predicateForIRI maps a known predicate IRI to its dotted name.
// Unknown IRIs pass through unchanged so foreign triples survive a
// load-export round trip.
func predicateForIRI(iri string) string {
	if p, ok := dqaf.PredicateForIRI(iri); ok {
		return p
	}
	return iri
}

// ingestDump mirrors the entity ingest message shape used on the wire.
type ingestDump struct {
	ID      string           `json:"id"`
	Triples []message.Triple `json:"triples"`
}

// loadJSON reads either an entity ingest dump object or a plain JSON
// array of triples.
func loadJSON(store *Store, r io.Reader, source string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}

	trimmed := strings.TrimLeft(string(data), " \t\r\n")
	now := time.Now()

	var triples []message.Triple
	if strings.HasPrefix(trimmed, "[") {
		if err := json.Unmarshal(data, &triples); err != nil {
			return fmt.Errorf("parse triple array: %w", err)
		}
	} else {
		var dump ingestDump
		if err := json.Unmarshal(data, &dump); err != nil {
			return fmt.Errorf("parse entity dump: %w", err)
		}
		triples = dump.Triples
	}

	for _, t := range triples {
		t.Predicate = predicateForIRI(t.Predicate)
		if t.Source == "" {
			t.Source = source
		}
		if t.Timestamp.IsZero() {
			t.Timestamp = now
		}
		if t.Confidence == 0 {
			t.Confidence = 1.0
		}
		store.Add(t)
	}
	return nil
}
