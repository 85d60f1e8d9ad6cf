package sql

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemovePublicSchema(t *testing.T) {
	tests := []struct {
		name  string
		query string
		want  string
	}{
		{
			name:  "bare_prefix",
			query: "SELECT * FROM public.trades",
			want:  "SELECT * FROM trades",
		},
		{
			name:  "single_quoted_prefix",
			query: "SELECT * FROM 'public'.trades",
			want:  "SELECT * FROM trades",
		},
		{
			name:  "double_quoted_prefix",
			query: `SELECT * FROM "public".trades`,
			want:  "SELECT * FROM trades",
		},
		{
			name:  "multiple_occurrences",
			query: "SELECT * FROM public.trades JOIN public.quotes ON true",
			want:  "SELECT * FROM trades JOIN quotes ON true",
		},
		{
			name:  "other_schema_untouched",
			query: "SELECT * FROM other.trades",
			want:  "SELECT * FROM other.trades",
		},
		{
			name:  "no_qualification",
			query: "SELECT * FROM trades",
			want:  "SELECT * FROM trades",
		},
		{
			name:  "public_as_plain_word",
			query: "SELECT * FROM trades WHERE note = 'public'",
			want:  "SELECT * FROM trades WHERE note = 'public'",
		},
		{
			name:  "empty",
			query: "",
			want:  "",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RemovePublicSchema(tt.query))
		})
	}
}
