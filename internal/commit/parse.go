package commit

import (
	"fmt"
	"regexp"
	"strings"
)

// footerRegex matches a footer line:
// Key: value
// Key #value
// BREAKING CHANGE: value
var footerRegex = regexp.MustCompile(`^(BREAKING CHANGE|[A-Za-z0-9]+(?:-[A-Za-z0-9]+)*)(: | #)(.*)$`)

// Parse parses a conventional commit message.
//
// The header must look like "type(scope)!: description" where scope and "!"
// are optional. If allowedTypes is non-empty the type must be one of them
// (case-sensitive). The header is followed by an optional body and an
// optional block of footers, each separated by a blank line.
func Parse(message string, allowedTypes []string) (Commit, error) {
	lines := normalize(message)
	if len(lines) == 0 {
		return Commit{}, &ParseError{Kind: EmptyInput, Reason: "commit message is empty"}
	}

	header := lines[0]
	c, err := parseHeader(header)
	if err != nil {
		return Commit{}, err
	}

	if len(allowedTypes) > 0 && !contains(allowedTypes, c.Type) {
		return Commit{}, &ParseError{
			Kind:   InvalidType,
			Header: header,
			Reason: fmt.Sprintf("type %q is not one of %s", c.Type, strings.Join(allowedTypes, ", ")),
		}
	}

	rest := lines[1:]
	if len(rest) > 0 && !isBlank(rest[0]) {
		return Commit{}, malformed(header, "header must be followed by a blank line")
	}

	body, footers := splitBodyAndFooters(splitBlocks(rest))
	c.Body = body
	c.Footers = Footers{list: footers}
	for _, f := range footers {
		if isBreakingKey(f.Key) {
			c.BreakingToken = true
			break
		}
	}

	return c, nil
}

// normalize converts line endings, drops git comment lines and trims the
// message. It returns nil for a message with no content.
func normalize(message string) []string {
	message = strings.ReplaceAll(message, "\r\n", "\n")
	message = strings.ReplaceAll(message, "\r", "\n")

	var kept []string
	for _, line := range strings.Split(message, "\n") {
		if strings.HasPrefix(line, "#") {
			continue
		}
		kept = append(kept, strings.TrimRight(line, " \t"))
	}

	message = strings.TrimSpace(strings.Join(kept, "\n"))
	if message == "" {
		return nil
	}
	return strings.Split(message, "\n")
}

func parseHeader(header string) (Commit, error) {
	i := 0
	for i < len(header) && isTypeChar(header[i]) {
		i++
	}
	if i == 0 {
		return Commit{}, malformed(header, "missing type")
	}

	c := Commit{Header: header, Type: header[:i]}
	rest := header[i:]

	if strings.HasPrefix(rest, "(") {
		end := strings.IndexByte(rest, ')')
		if end < 0 {
			return Commit{}, malformed(header, "unclosed scope")
		}
		scope := rest[1:end]
		if strings.TrimSpace(scope) == "" {
			return Commit{}, malformed(header, "empty scope")
		}
		if strings.ContainsRune(scope, '(') {
			return Commit{}, malformed(header, "nested parenthesis in scope")
		}
		c.Scope = scope
		rest = rest[end+1:]
		if strings.HasPrefix(rest, "(") {
			return Commit{}, malformed(header, "multiple scopes")
		}
	}

	if strings.HasPrefix(rest, "!") {
		c.BreakingFlag = true
		rest = rest[1:]
		if strings.HasPrefix(rest, "!") {
			return Commit{}, malformed(header, "multiple breaking markers")
		}
	}

	if !strings.HasPrefix(rest, ":") {
		return Commit{}, malformed(header, "expected ':' after type")
	}
	rest = rest[1:]
	if !strings.HasPrefix(rest, " ") {
		return Commit{}, malformed(header, "expected a space after ':'")
	}

	c.Description = strings.TrimSpace(rest)
	if c.Description == "" {
		return Commit{}, malformed(header, "missing description")
	}
	return c, nil
}

// splitBlocks groups lines into blank-line separated blocks.
func splitBlocks(lines []string) [][]string {
	var blocks [][]string
	var current []string
	for _, line := range lines {
		if isBlank(line) {
			if len(current) > 0 {
				blocks = append(blocks, current)
				current = nil
			}
			continue
		}
		current = append(current, line)
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	return blocks
}

// splitBodyAndFooters treats every block before the first one that opens
// with a footer line as a body paragraph. Inside the footer section a line
// that is not a footer continues the previous footer's value.
func splitBodyAndFooters(blocks [][]string) ([]string, []Footer) {
	start := len(blocks)
	for i, block := range blocks {
		if footerRegex.MatchString(block[0]) {
			start = i
			break
		}
	}

	var body []string
	for _, block := range blocks[:start] {
		body = append(body, strings.Join(block, "\n"))
	}

	var footers []Footer
	for _, block := range blocks[start:] {
		for j, line := range block {
			if m := footerRegex.FindStringSubmatch(line); m != nil {
				footers = append(footers, Footer{
					Key:       m[1],
					Separator: m[2],
					Value:     strings.TrimSpace(m[3]),
				})
				continue
			}
			last := &footers[len(footers)-1]
			sep := "\n"
			if j == 0 {
				sep = "\n\n"
			}
			if last.Value == "" {
				sep = ""
			}
			last.Value += sep + strings.TrimSpace(line)
		}
	}

	return body, footers
}

func isTypeChar(c byte) bool {
	return c == '-' ||
		(c >= '0' && c <= '9') ||
		(c >= 'a' && c <= 'z') ||
		(c >= 'A' && c <= 'Z')
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

func contains(list []string, s string) bool {
	for _, item := range list {
		if item == s {
			return true
		}
	}
	return false
}
