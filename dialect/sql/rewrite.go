package sql

import "strings"

// Schema-qualification prefixes stripped from outgoing statements.
// Generic ORM code qualifies tables with the default "public" schema, but
// QuestDB has no schemas and the server rejects the qualification.
var publicPrefixes = []string{
	`public.`,
	`'public'.`,
	`"public".`,
}

// RemovePublicSchema strips the "public" schema qualification from a
// statement. Only the reserved "public" prefix is special-cased; any other
// qualification is left for the server to reject.
func RemovePublicSchema(query string) string {
	if !strings.Contains(query, "public") {
		return query
	}
	for _, p := range publicPrefixes {
		query = strings.ReplaceAll(query, p, "")
	}
	return query
}
