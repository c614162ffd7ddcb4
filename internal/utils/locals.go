package utils

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v3"
)

func GetLocals(c fiber.Ctx, name string, result any) {
	json.Unmarshal(fmt.Appendf(nil, "%v", c.Locals(name)), &result)
}

func SetLocals(c fiber.Ctx, name string, data any) {
	bytes, _ := json.Marshal(data)
	c.Locals(name, string(bytes))
}

// BearerToken strips the Bearer prefix off an Authorization header value;
// empty when the header is absent or not a bearer credential.
func BearerToken(header string) string {
	header = strings.TrimSpace(header)
	if !strings.HasPrefix(header, "Bearer") {
		return ""
	}

	fields := strings.Fields(header)
	if len(fields) != 2 {
		return ""
	}

	return fields[1]
}

// TrimmedQuery reads a query parameter with surrounding whitespace removed.
func TrimmedQuery(c fiber.Ctx, key string) string {
	return strings.TrimSpace(c.Query(key))
}
