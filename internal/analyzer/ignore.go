package analyzer

import (
	"strings"

	"github.com/ludo-technologies/qube/internal/constants"
)

// Suppression directive keywords, matched longest-first so that the bare
// "ignore" form does not shadow the specific ones.
const (
	directiveIgnoreFile       = "ignore-file"
	directiveIgnoreBelow      = "ignore-below"
	directiveIgnoreFunction   = "ignore-function"
	directiveIgnoreBlockStart = "ignore-block-start"
	directiveIgnoreBlockEnd   = "ignore-block-end"
	directiveIgnoreNextLine   = "ignore-next-line"
	directiveIgnore           = "ignore"
)

// ignoreFileWindow is the number of leading lines in which an ignore-file
// directive is recognized.
const ignoreFileWindow = 10

// rangeEntry suppresses checks for every line in [start, end] inclusive.
// An empty id list is the wildcard meaning all checks.
type rangeEntry struct {
	start int
	end   int
	ids   []string
}

// belowEntry suppresses checks from a line to the end of the file
type belowEntry struct {
	from int
	ids  []string
}

// blockStart is a pending ignore-block-start awaiting its end
type blockStart struct {
	line int
	ids  []string
}

// IgnoreResolver answers whether a (line, check) pair is suppressed by the
// directives found in a file. It is rebuilt fresh for every file and holds
// no state beyond the parsed index, so queries are idempotent.
type IgnoreResolver struct {
	fileWide     bool
	fileWildcard bool
	fileIDs      []string

	below    []belowEntry
	ranges   []rangeEntry
	inline   map[int][]string
	nextLine map[int][]string

	// UnmatchedStarts records the lines of ignore-block-start directives
	// that never saw a matching end. They produce no suppression range;
	// callers may surface them as diagnostics.
	UnmatchedStarts []int
}

// NewIgnoreResolver parses all suppression directives out of the given
// ordered line list and builds the per-file suppression index. Malformed
// directives degrade to no suppression; this never fails.
func NewIgnoreResolver(lines []string) *IgnoreResolver {
	r := &IgnoreResolver{
		inline:   make(map[int][]string),
		nextLine: make(map[int][]string),
	}

	var stack []blockStart

	for i, raw := range lines {
		lineNo := i + 1

		rest, ok := directiveText(raw)
		if !ok {
			continue
		}

		switch {
		case strings.HasPrefix(rest, directiveIgnoreBlockStart):
			ids := parseDirectiveIDs(rest, directiveIgnoreBlockStart)
			stack = append(stack, blockStart{line: lineNo, ids: ids})

		case strings.HasPrefix(rest, directiveIgnoreBlockEnd):
			// Unmatched end is a no-op
			if len(stack) > 0 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				r.ranges = append(r.ranges, rangeEntry{start: top.line, end: lineNo, ids: top.ids})
			}

		case strings.HasPrefix(rest, directiveIgnoreNextLine):
			r.nextLine[lineNo] = parseDirectiveIDs(rest, directiveIgnoreNextLine)

		case strings.HasPrefix(rest, directiveIgnoreFile):
			// Only recognized within the first lines of the file
			if lineNo <= ignoreFileWindow {
				ids := parseDirectiveIDs(rest, directiveIgnoreFile)
				r.fileWide = true
				if len(ids) == 0 {
					r.fileWildcard = true
				} else {
					r.fileIDs = append(r.fileIDs, ids...)
				}
			}

		case strings.HasPrefix(rest, directiveIgnoreBelow):
			r.below = append(r.below, belowEntry{
				from: lineNo,
				ids:  parseDirectiveIDs(rest, directiveIgnoreBelow),
			})

		case strings.HasPrefix(rest, directiveIgnoreFunction):
			ids := parseDirectiveIDs(rest, directiveIgnoreFunction)
			if rg, ok := functionRangeAfter(lines, i, ids); ok {
				r.ranges = append(r.ranges, rg)
			}

		case strings.HasPrefix(rest, directiveIgnore):
			r.inline[lineNo] = parseDirectiveIDs(rest, directiveIgnore)
		}
	}

	// Trailing starts produce no range, by design
	for _, s := range stack {
		r.UnmatchedStarts = append(r.UnmatchedStarts, s.line)
	}

	return r
}

// ShouldIgnore reports whether an issue raised by check on the given 1-based
// line must be dropped. Precedence: file-wide, below, range, same-line
// inline, previous-line next-line; first match wins.
func (r *IgnoreResolver) ShouldIgnore(line int, check CheckID) bool {
	if r.fileWide && (r.fileWildcard || idListMatches(r.fileIDs, check)) {
		return true
	}

	for _, b := range r.below {
		if line >= b.from && idsMatch(b.ids, check) {
			return true
		}
	}

	for _, rg := range r.ranges {
		if line >= rg.start && line <= rg.end && idsMatch(rg.ids, check) {
			return true
		}
	}

	if ids, ok := r.inline[line]; ok && idsMatch(ids, check) {
		return true
	}

	if ids, ok := r.nextLine[line-1]; ok && idsMatch(ids, check) {
		return true
	}

	return false
}

// directiveText locates the directive prefix in a line and returns the text
// following it. Only the first occurrence per line is honored.
func directiveText(line string) (string, bool) {
	idx := strings.Index(line, constants.DirectivePrefix)
	if idx < 0 {
		return "", false
	}
	return line[idx+len(constants.DirectivePrefix):], true
}

// parseDirectiveIDs extracts the optional check-id list after a directive
// keyword. The list starts with ':' and runs until the first whitespace;
// individual ids are comma-separated and trimmed. An absent or empty list is
// the wildcard (nil).
func parseDirectiveIDs(rest, keyword string) []string {
	if len(rest) <= len(keyword) || rest[len(keyword)] != ':' {
		return nil
	}

	idText := rest[len(keyword)+1:]
	if cut := strings.IndexAny(idText, " \t"); cut >= 0 {
		idText = idText[:cut]
	}

	var ids []string
	for _, id := range strings.Split(idText, ",") {
		id = strings.TrimSpace(id)
		if id != "" {
			ids = append(ids, id)
		}
	}
	return ids
}

// functionRangeAfter computes the suppression range for an ignore-function
// directive at 0-based line index i: from the next function declaration line
// to the line before the declaration after it (or end of file). Returns
// ok=false when no function declaration follows the directive.
func functionRangeAfter(lines []string, i int, ids []string) (rangeEntry, bool) {
	declIdx := -1
	for j := i + 1; j < len(lines); j++ {
		if isFunctionDecl(strings.TrimSpace(lines[j])) {
			declIdx = j
			break
		}
	}
	if declIdx < 0 {
		return rangeEntry{}, false
	}

	end := len(lines)
	for j := declIdx + 1; j < len(lines); j++ {
		if isFunctionDecl(strings.TrimSpace(lines[j])) {
			end = j
			break
		}
	}

	return rangeEntry{start: declIdx + 1, end: end, ids: ids}, true
}

// idsMatch reports whether an id list covers the check; an empty list is the
// wildcard covering all checks.
func idsMatch(ids []string, check CheckID) bool {
	if len(ids) == 0 {
		return true
	}
	return idListMatches(ids, check)
}

func idListMatches(ids []string, check CheckID) bool {
	for _, id := range ids {
		if id == string(check) {
			return true
		}
	}
	return false
}
