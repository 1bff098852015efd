package search

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"scribble/internal/domain"
)

// ReplaceInNote applies find/replace independently to the note's title and
// content and returns the total replacement count. Tags are never touched.
// The modification time is bumped only when at least one replacement landed.
func (e *Engine) ReplaceInNote(n *domain.Note, find, replace string, isRegex, caseSensitive bool) (int, error) {
	title, titleCount, err := replaceInText(n.Title, find, replace, isRegex, caseSensitive)
	if err != nil {
		return 0, err
	}
	content, contentCount, err := replaceInText(n.Content, find, replace, isRegex, caseSensitive)
	if err != nil {
		return 0, err
	}

	total := titleCount + contentCount
	if total > 0 {
		n.Title = title
		n.Content = content
		n.ModifiedAt = time.Now().UTC()
	}
	return total, nil
}

func replaceInText(text, find, replace string, isRegex, caseSensitive bool) (string, int, error) {
	if isRegex {
		pattern := find
		if !caseSensitive {
			pattern = "(?i)" + pattern
		}
		re, err := regexp.Compile(pattern)
		if err != nil {
			return "", 0, fmt.Errorf("invalid regex: %w", err)
		}
		count := len(re.FindAllStringIndex(text, -1))
		return re.ReplaceAllString(text, replace), count, nil
	}

	if find == "" {
		return text, 0, nil
	}
	var b strings.Builder
	count := 0
	rest := text
	for {
		haystack := rest
		needle := find
		if !caseSensitive {
			haystack = strings.ToLower(haystack)
			needle = strings.ToLower(needle)
		}
		pos := strings.Index(haystack, needle)
		if pos < 0 {
			b.WriteString(rest)
			return b.String(), count, nil
		}
		b.WriteString(rest[:pos])
		b.WriteString(replace)
		rest = rest[pos+len(find):]
		count++
	}
}
