package fs

import "bytes"

const fmDelimiter = "---"

// splitFrontmatter separates a leading YAML block from the body. Delimiter
// lines may end in LF or CRLF. The body is returned byte for byte. ok is false
// when there is no complete block.
func splitFrontmatter(content []byte) (frontmatter, body []byte, ok bool) {
	first, rest, found := bytes.Cut(content, []byte("\n"))
	if !found || !isDelimiter(first) {
		return nil, content, false
	}

	start := rest
	for len(rest) > 0 {
		line, next, _ := bytes.Cut(rest, []byte("\n"))
		if isDelimiter(line) {
			return start[:len(start)-len(rest)], next, true
		}
		rest = next
	}
	return nil, content, false
}

func isDelimiter(line []byte) bool {
	return string(bytes.TrimSuffix(line, []byte("\r"))) == fmDelimiter
}

func writeFrontmatter(buf *bytes.Buffer, yamlBytes []byte) {
	buf.WriteString(fmDelimiter + "\n")
	buf.Write(yamlBytes)
	buf.WriteString(fmDelimiter + "\n")
}
