// Utilities for parsing cURL commands captured from the Apple Music web player.
package shared

import (
	"fmt"
	"os"
	"regexp"
	"strings"
)

// mediaUserTokenHeader is the header the web player sends for user-scoped requests.
const mediaUserTokenHeader = "media-user-token"

var (
	headerFlagRegex = regexp.MustCompile(`(?:-H|--header)\s+(?:'([^']+)'|"([^"]+)")`)
	cookieFlagRegex = regexp.MustCompile(`(?:-b|--cookie)\s+(?:'([^']+)'|"([^"]+)")`)
)

// CurlHeaders represents parsed headers and cookies from a cURL command.
type CurlHeaders struct {
	Headers map[string]string
	Cookie  string
}

// ParseCurlFile reads a file containing a cURL command and extracts headers.
func ParseCurlFile(filepath string) (*CurlHeaders, error) {
	content, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read curl file: %w", err)
	}

	return ParseCurlCommand(content)
}

// ParseCurlCommand parses a cURL command string and extracts headers.
//
// Accepts both short and long flag forms (-H/--header, -b/--cookie) with
// single or double quoted values. Cookie headers passed via -H are folded
// into the Cookie field rather than the header map.
func ParseCurlCommand(data []byte) (*CurlHeaders, error) {
	command := strings.ReplaceAll(string(data), "\\\n", " ")
	command = strings.ReplaceAll(command, "\\", "")

	parsed := &CurlHeaders{Headers: map[string]string{}}

	for _, match := range headerFlagRegex.FindAllStringSubmatch(command, -1) {
		name, value, ok := splitHeaderLine(quotedValue(match))
		if !ok {
			continue
		}
		if strings.EqualFold(name, "cookie") {
			parsed.Cookie = value
			continue
		}
		parsed.Headers[name] = value
	}

	if match := cookieFlagRegex.FindStringSubmatch(command); match != nil {
		parsed.Cookie = quotedValue(match)
	}

	if len(parsed.Headers) == 0 && parsed.Cookie == "" {
		return nil, fmt.Errorf("no headers found in curl command")
	}

	return parsed, nil
}

// MusicUserToken returns the Media-User-Token header value, matched case-insensitively.
//
// Returns an empty string when the capture has no such header.
func (c *CurlHeaders) MusicUserToken() string {
	for key, value := range c.Headers {
		if strings.ToLower(key) == mediaUserTokenHeader {
			return value
		}
	}
	return ""
}

// quotedValue picks whichever quote group matched.
func quotedValue(match []string) string {
	if match[1] != "" {
		return match[1]
	}
	return match[2]
}

func splitHeaderLine(line string) (name, value string, ok bool) {
	parts := strings.SplitN(line, ":", 2)
	if len(parts) != 2 {
		return "", "", false
	}
	return strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1]), true
}
