package delivery

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/avenirlabs/leadgate/internal/intake"
)

// FormatMessage builds the text summary posted to the Telegram relay.
// UTM keys with empty values are omitted; the rest are listed in key order
// so the output is stable.
func FormatMessage(sub *intake.Submission, meta intake.Meta) string {
	var b strings.Builder

	b.WriteString("New lead")
	if sub.Source != "" {
		fmt.Fprintf(&b, " [%s]", sub.Source)
	}
	b.WriteString("\n")

	if sub.Page != "" {
		fmt.Fprintf(&b, "Page: %s\n", sub.Page)
	}
	if sub.Name != "" {
		fmt.Fprintf(&b, "Name: %s\n", sub.Name)
	}
	if sub.Phone != "" {
		fmt.Fprintf(&b, "Phone: %s\n", sub.Phone)
	}
	if sub.Email != "" {
		fmt.Fprintf(&b, "Email: %s\n", sub.Email)
	}
	if sub.Company != "" {
		fmt.Fprintf(&b, "Company: %s\n", sub.Company)
	}
	if sub.Message != "" {
		fmt.Fprintf(&b, "Message: %s\n", sub.Message)
	}

	if pairs := utmPairs(sub.UTM); len(pairs) > 0 {
		fmt.Fprintf(&b, "UTM: %s\n", strings.Join(pairs, ", "))
	}

	fmt.Fprintf(&b, "From %s at %s", meta.Origin, meta.ReceivedAt.UTC().Format(time.RFC3339))
	if meta.UserAgent != "" {
		fmt.Fprintf(&b, "\nUA: %s", meta.UserAgent)
	}

	return b.String()
}

func utmPairs(utm map[string]string) []string {
	if len(utm) == 0 {
		return nil
	}
	keys := make([]string, 0, len(utm))
	for k, v := range utm {
		if v == "" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	pairs := make([]string, 0, len(keys))
	for _, k := range keys {
		pairs = append(pairs, k+"="+utm[k])
	}
	return pairs
}
