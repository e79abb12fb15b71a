package storage

import (
	"fmt"
	"strings"

	"github.com/user/seo-console/internal/domain"
)

// updatableFields is the allow-list of columns a partial update may touch.
// Clause order follows declaration order so generated statements are stable.
var updatableFields = []string{
	"url",
	"name",
	"status",
	"is_wordpress",
	"screenshot_url",
	"meta_title",
	"meta_description",
	"gsc_url",
	"bing_url",
	"yandex_url",
	"twitter_url",
	"facebook_url",
	"linkedin_url",
	"instagram_url",
	"youtube_url",
}

// protectedFields are transport-level keys dropped before building the
// statement. They are never updatable and never an error to send.
var protectedFields = map[string]struct{}{
	"id":         {},
	"created_at": {},
	"action":     {},
}

var validStatuses = map[string]struct{}{
	domain.StatusActive:   {},
	domain.StatusInactive: {},
	domain.StatusError:    {},
}

// buildUpdate turns a field mapping into a parameterized UPDATE statement.
// A key present in the mapping is written even when its value is nil (an
// explicit null clears the column); a key absent from the mapping leaves the
// column untouched. Column names come only from the allow-list; values are
// always bound parameters.
func buildUpdate(id string, fields map[string]any) (string, []any, error) {
	remaining := make(map[string]any, len(fields))
	for k, v := range fields {
		if _, ok := protectedFields[k]; ok {
			continue
		}
		remaining[k] = v
	}

	allowed := make(map[string]struct{}, len(updatableFields))
	for _, f := range updatableFields {
		allowed[f] = struct{}{}
	}
	for k := range remaining {
		if _, ok := allowed[k]; !ok {
			return "", nil, domain.Invalidf("unknown field %q", k)
		}
	}

	if len(remaining) == 0 {
		return "", nil, domain.Invalidf("nothing to update")
	}

	if v, ok := remaining["status"]; ok {
		s, isString := v.(string)
		if !isString {
			return "", nil, domain.Invalidf("status must be a string")
		}
		if _, valid := validStatuses[s]; !valid {
			return "", nil, domain.Invalidf("unknown status %q", s)
		}
	}

	var clauses []string
	var args []any
	for _, f := range updatableFields {
		v, ok := remaining[f]
		if !ok {
			continue
		}
		args = append(args, v)
		clauses = append(clauses, fmt.Sprintf("%s = $%d", f, len(args)))
	}
	args = append(args, id)

	stmt := fmt.Sprintf("UPDATE websites SET %s WHERE id = $%d", strings.Join(clauses, ", "), len(args))
	return stmt, args, nil
}
