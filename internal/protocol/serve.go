package protocol

import (
	"bufio"
	"io"
	"strings"

	"github.com/snmpext/murmured/internal/primitive"
)

// Serve runs the pass_persist read loop over r, writing responses to w.
// It terminates on end-of-stream or an empty command line, matching
// spec.md §4.F/§6 exactly; output is flushed after every response so the
// master agent never deadlocks waiting on a buffered reply.
func (e *Engine) Serve(r io.Reader, w io.Writer) error {
	scanner := bufio.NewScanner(r)
	out := bufio.NewWriter(w)

	for scanner.Scan() {
		line := scanner.Text()
		if line == "" {
			return nil
		}

		switch line {
		case "PING":
			writeLines(out, "PONG")
		case "get":
			oid, ok := readLine(scanner)
			if !ok {
				return nil
			}
			writeLines(out, e.Get(oid)...)
		case "getnext":
			oid, ok := readLine(scanner)
			if !ok {
				return nil
			}
			writeLines(out, e.GetNext(oid)...)
		case "set":
			oid, ok := readLine(scanner)
			if !ok {
				return nil
			}
			spec, ok := readLine(scanner)
			if !ok {
				return nil
			}
			typeTag, value := splitTypeValue(spec)
			writeLines(out, e.Set(oid, typeTag, value)...)
		default:
			// Unrecognized commands are outside spec.md §4.F's vocabulary;
			// ignore rather than desynchronizing the frame stream.
		}

		if err := out.Flush(); err != nil {
			return err
		}
	}
	return scanner.Err()
}

func readLine(scanner *bufio.Scanner) (string, bool) {
	if !scanner.Scan() {
		return "", false
	}
	return scanner.Text(), true
}

func writeLines(out *bufio.Writer, lines ...string) {
	for _, l := range lines {
		out.WriteString(l)
		out.WriteByte('\n')
	}
}

// splitTypeValue splits a "set" frame's second line ("TYPE VALUE") after
// the type tag: the first word, or the first two words when they form a
// two-word tag (OCTET STRING, OBJECT IDENTIFIER). The value may itself
// contain spaces, per spec.md §4.F.
func splitTypeValue(spec string) (typeTag, value string) {
	if words := strings.SplitN(spec, " ", 3); len(words) >= 2 {
		if _, ok := primitive.NormalizeTag(words[0] + " " + words[1]); ok {
			if len(words) == 2 {
				return words[0] + " " + words[1], ""
			}
			return words[0] + " " + words[1], words[2]
		}
	}
	parts := strings.SplitN(spec, " ", 2)
	if len(parts) == 1 {
		return parts[0], ""
	}
	return parts[0], parts[1]
}
