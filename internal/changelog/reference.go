package changelog

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	linkedRefPattern = regexp.MustCompile(`^\[#([^\]]*)\]\(([^)\s]*)\)$`)
	bareRefPattern   = regexp.MustCompile(`^#(\S*)$`)
	digitsPattern    = regexp.MustCompile(`^\d+$`)
)

// SplitReferences separates trailing parenthesized issue references from the
// entry text. A trailing group is treated as references when its content
// starts with "#" or "[#". Groups with a malformed item are left in the text
// and described in the returned issues.
//
//	"Fixed x ([#1](https://h/1), [#2](https://h/2))" -> "Fixed x", [1 2]
//	"Fixed x (#15931)"                               -> "Fixed x", [15931]
func SplitReferences(raw string) (text string, refs []Reference, issues []string) {
	text = strings.TrimRight(raw, " \t")

	for strings.HasSuffix(text, ")") {
		open := matchingOpenParen(text)
		if open < 0 {
			break
		}
		inner := strings.TrimSpace(text[open+1 : len(text)-1])
		if !strings.HasPrefix(inner, "#") && !strings.HasPrefix(inner, "[#") {
			break
		}

		group, problems := parseReferenceGroup(inner)
		if len(problems) > 0 {
			issues = append(issues, problems...)
			break
		}

		// Groups are peeled from the end, prepend to keep document order.
		refs = append(group, refs...)
		text = strings.TrimRight(text[:open], " \t")
	}

	return text, refs, issues
}

// matchingOpenParen returns the index of the "(" that balances the final ")"
// of s, or -1.
func matchingOpenParen(s string) int {
	depth := 0
	for i := len(s) - 1; i >= 0; i-- {
		switch s[i] {
		case ')':
			depth++
		case '(':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// parseReferenceGroup parses the comma separated items of one reference group.
func parseReferenceGroup(inner string) ([]Reference, []string) {
	var refs []Reference
	var problems []string

	for _, item := range splitTopLevel(inner) {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}

		var number, url string
		if m := linkedRefPattern.FindStringSubmatch(item); m != nil {
			number, url = m[1], m[2]
		} else if m := bareRefPattern.FindStringSubmatch(item); m != nil {
			number = m[1]
		} else {
			problems = append(problems, fmt.Sprintf("malformed reference %q", item))
			continue
		}

		if !digitsPattern.MatchString(number) {
			problems = append(problems, fmt.Sprintf("reference %q is not of the form #<digits>", item))
			continue
		}
		n, err := strconv.Atoi(number)
		if err != nil {
			problems = append(problems, fmt.Sprintf("reference number %q out of range", number))
			continue
		}
		ref := Reference{Number: n, URL: url}
		if strconv.Itoa(n) != number {
			ref.Raw = number
		}
		refs = append(refs, ref)
	}

	return refs, problems
}

// splitTopLevel splits on commas that are not inside brackets or parentheses.
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '[', '(':
			depth++
		case ']', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				parts = append(parts, s[start:i])
				start = i + 1
			}
		}
	}
	return append(parts, s[start:])
}

// URLMatchesNumber reports whether url contains number as a whole digit run,
// so that 123 matches ".../pull/123" but not ".../pull/1234".
func URLMatchesNumber(url string, number int) bool {
	return URLMatchesDigits(url, strconv.Itoa(number))
}

// URLMatchesDigits reports whether url contains want as a whole digit run.
func URLMatchesDigits(url, want string) bool {
	for i := 0; i < len(url); {
		if url[i] < '0' || url[i] > '9' {
			i++
			continue
		}
		j := i
		for j < len(url) && url[j] >= '0' && url[j] <= '9' {
			j++
		}
		if url[i:j] == want {
			return true
		}
		i = j
	}
	return false
}

// FormatReferences renders references as a single parenthesized group.
// Returns an empty string for no references.
func FormatReferences(refs []Reference) string {
	if len(refs) == 0 {
		return ""
	}
	items := make([]string, len(refs))
	for i, ref := range refs {
		if ref.URL != "" {
			items[i] = fmt.Sprintf("[#%s](%s)", ref.Digits(), ref.URL)
		} else {
			items[i] = "#" + ref.Digits()
		}
	}
	return "(" + strings.Join(items, ", ") + ")"
}
