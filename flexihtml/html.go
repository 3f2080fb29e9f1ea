package flexihtml

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"unicode"

	"github.com/google/uuid"
)

//UUIDText maps any string onto a stable uuid-shaped text, used for element
//ids that must survive re-renders.
func UUIDText(toencode string) string {
	return uuid.NewMD5(uuid.NameSpaceOID, []byte(toencode)).String()
}

func ShortUUIDText(toencode string) string {
	return UUIDText(toencode)[0:8]
}

func columnUUID(name string) string {
	return uuid.NewSHA1(uuid.NameSpaceOID, []byte(name)).String()[0:6]
}

func lineUUID() string {
	return uuid.New().String()[0:6]
}

func HTMLEncode(toencode string) string {
	replacer := strings.NewReplacer("&", "&amp;", `"`, "&quot;", "'", "&#039;", "<", "&lt;", ">", "&gt;")
	return replacer.Replace(toencode)
}

//FlattenAttributes renders an attribute map as html attribute text. Empty
//values are dropped, lists and maps are json encoded, bools become 1/0.
func FlattenAttributes(attributes map[string]interface{}) string {
	names := make([]string, 0, len(attributes))
	for name := range attributes {
		names = append(names, name)
	}
	sort.Strings(names)

	var html strings.Builder
	for _, name := range names {
		value := attributes[name]
		if value == "" {
			continue
		}

		switch v := value.(type) {
		case bool:
			if v {
				value = "1"
			} else {
				value = "0"
			}
		case []string, []interface{}, map[string]string, map[string]interface{}:
			b, _ := json.Marshal(v)
			value = string(b)
		}

		html.WriteString(name + `="` + HTMLEncode(fmt.Sprint(value)) + `" `)
	}
	return strings.TrimSpace(html.String())
}

func titleCase(name string) string {
	prev := ' '
	return strings.Map(func(r rune) rune {
		if r == '_' {
			r = ' '
		}
		if prev == ' ' {
			r = unicode.ToUpper(r)
		}
		prev = r
		return r
	}, name)
}
