package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"jobspy-client/models"
)

// parseFilter applies key=value tokens to base:
//
//	site=linkedin,indeed  type=full  remote=true|false|any  min=50000  max=any
//
// A value of "any" (or empty) removes that constraint.
func parseFilter(tokens []string, base models.FilterSpec) (models.FilterSpec, error) {
	spec := base
	for _, tok := range tokens {
		key, value, ok := strings.Cut(tok, "=")
		if !ok {
			return base, fmt.Errorf("filter %q: expected key=value", tok)
		}
		key = strings.ToLower(strings.TrimSpace(key))
		value = strings.TrimSpace(value)
		unset := value == "" || strings.EqualFold(value, "any")

		switch key {
		case "site", "sites":
			spec.Sites = nil
			if !unset {
				spec.Sites = splitList(value)
			}
		case "type", "job-type", "job_type":
			spec.JobType = ""
			if !unset {
				spec.JobType = value
			}
		case "remote":
			spec.IsRemote = nil
			if !unset {
				b, err := strconv.ParseBool(value)
				if err != nil {
					return base, fmt.Errorf("filter remote: %q is not true, false or any", value)
				}
				spec.IsRemote = &b
			}
		case "min", "min-salary":
			v, err := parseAmount(value, unset)
			if err != nil {
				return base, fmt.Errorf("filter min: %w", err)
			}
			spec.MinSalary = v
		case "max", "max-salary":
			v, err := parseAmount(value, unset)
			if err != nil {
				return base, fmt.Errorf("filter max: %w", err)
			}
			spec.MaxSalary = v
		default:
			return base, fmt.Errorf("unknown filter %q", key)
		}
	}
	return spec, nil
}

func parseAmount(value string, unset bool) (*float64, error) {
	if unset {
		return nil, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(value, ",", ""), 64)
	if err != nil {
		return nil, fmt.Errorf("%q is not a number", value)
	}
	return &f, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, strings.ToLower(part))
		}
	}
	return out
}

// splitArgs splits a shell line into words. Single and double quotes group
// words; a backslash escapes the next character outside single quotes.
func splitArgs(line string) ([]string, error) {
	var (
		args    []string
		cur     strings.Builder
		inWord  bool
		quote   rune
		escaped bool
	)

	for _, r := range line {
		switch {
		case escaped:
			cur.WriteRune(r)
			escaped = false
		case r == '\\' && quote != '\'':
			escaped = true
			inWord = true
		case quote != 0:
			if r == quote {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case r == '"' || r == '\'':
			quote = r
			inWord = true
		case r == ' ' || r == '\t':
			if inWord {
				args = append(args, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}

	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if escaped {
		return nil, fmt.Errorf("trailing backslash")
	}
	if inWord {
		args = append(args, cur.String())
	}
	return args, nil
}
