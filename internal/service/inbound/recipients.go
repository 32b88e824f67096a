package inbound

import "strings"

// consolidateRecipients merges every recipient source of a delivery into one
// comma-separated string: the to/cc/bcc arrays plus the raw To/Cc/Bcc header
// values. Display-name forms ("Name <addr>") are reduced to the bare address,
// duplicates collapse case-insensitively keeping the first-seen casing, and
// the system inbox address is dropped so it never pollutes rankings.
func consolidateRecipients(p Payload, systemAddress string) string {
	var sources []string
	sources = append(sources, p.To...)
	sources = append(sources, p.Cc...)
	sources = append(sources, p.Bcc...)
	for _, header := range []string{"to", "To", "cc", "Cc", "bcc", "Bcc"} {
		if raw, ok := p.Headers[header]; ok {
			sources = append(sources, strings.Split(raw, ",")...)
		}
	}

	system := strings.ToLower(strings.TrimSpace(systemAddress))

	seen := make(map[string]bool)
	var result []string

	for _, source := range sources {
		for _, token := range strings.Split(source, ",") {
			addr := extractAddress(token)
			if addr == "" {
				continue
			}
			key := strings.ToLower(addr)
			if key == system || seen[key] {
				continue
			}
			seen[key] = true
			result = append(result, addr)
		}
	}

	return strings.Join(result, ", ")
}

// extractAddress reduces a recipient token to the bare address. Tokens in
// "Name <addr>" form yield the bracketed part; anything without an "@" is
// rejected.
func extractAddress(token string) string {
	token = strings.TrimSpace(token)

	if open := strings.LastIndex(token, "<"); open != -1 {
		if close := strings.Index(token[open:], ">"); close != -1 {
			token = token[open+1 : open+close]
		}
	}

	token = strings.TrimSpace(token)
	if !strings.Contains(token, "@") {
		return ""
	}
	return token
}
