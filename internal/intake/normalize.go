package intake

import "strings"

// Normalize maps an arbitrary decoded JSON object onto a bounded Submission.
// It never fails: wrong-typed fields degrade to empty values so the endpoint
// stays available against malformed payloads.
func Normalize(raw map[string]any) *Submission {
	s := &Submission{
		Name:     normalizeText(raw["name"], MaxName),
		Phone:    NormalizePhone(rawString(raw["phone"])),
		Email:    normalizeText(raw["email"], MaxEmail),
		Company:  normalizeText(raw["company"], MaxCompany),
		Message:  normalizeText(raw["message"], MaxMessage),
		Source:   normalizeText(raw["source"], MaxSource),
		Page:     normalizeText(raw["page"], MaxPage),
		Honeypot: normalizeText(raw["hp"], MaxSource),
	}

	// utm is kept only when the client actually sent an object, so a nil map
	// distinguishes "no UTM data" from "empty UTM data".
	if rawUTM, ok := raw["utm"].(map[string]any); ok {
		utm := make(map[string]string, len(rawUTM))
		for k, v := range rawUTM {
			utm[k] = normalizeText(v, MaxUTMValue)
		}
		s.UTM = utm
	}

	return s
}

// NormalizePhone strips everything except digits and a leading plus, then
// truncates to MaxPhone characters.
func NormalizePhone(s string) string {
	s = strings.TrimSpace(s)
	var b strings.Builder
	for i, r := range s {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
			continue
		}
		if r == '+' && i == 0 {
			b.WriteRune(r)
		}
	}
	return truncate(b.String(), MaxPhone)
}

func normalizeText(v any, max int) string {
	return truncate(strings.TrimSpace(rawString(v)), max)
}

func rawString(v any) string {
	s, ok := v.(string)
	if !ok {
		return ""
	}
	return s
}

func truncate(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
