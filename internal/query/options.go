package query

import (
	"net/http"
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const (
	defaultPageSize = 25
	maxPageSize     = 200
)

// Options is the generic list-query shape shared by every entity service:
// pagination, exact-match filters and a case-insensitive partial search.
type Options struct {
	Page     int               `json:"page"`
	PageSize int               `json:"pageSize"`
	Filters  map[string]string `json:"filters,omitempty"`
	Search   string            `json:"search,omitempty"`
}

// FromRequest parses Options from query parameters. filterKeys lists the
// column names callers may filter on; anything else is ignored. A qualified
// key like "policies.status" reads the bare query parameter ("status") but
// keeps the qualified column for the SQL clause.
func FromRequest(r *http.Request, filterKeys ...string) Options {
	q := r.URL.Query()
	o := Options{
		Page:     atoiDefault(q.Get("page"), 1),
		PageSize: atoiDefault(q.Get("pageSize"), defaultPageSize),
		Search:   strings.TrimSpace(q.Get("search")),
	}
	for _, k := range filterKeys {
		param := k
		if i := strings.LastIndex(k, "."); i >= 0 {
			param = k[i+1:]
		}
		if v := strings.TrimSpace(q.Get(param)); v != "" {
			if o.Filters == nil {
				o.Filters = map[string]string{}
			}
			o.Filters[k] = v
		}
	}
	return o
}

// Scope translates the Options into a gorm scope. searchCols are the
// name-like columns the search term is matched against.
func (o Options) Scope(searchCols ...string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		for col, val := range o.Filters {
			db = db.Where(col+" = ?", val)
		}
		if o.Search != "" && len(searchCols) > 0 {
			pattern := "%" + strings.ToLower(o.Search) + "%"
			clause := make([]string, len(searchCols))
			args := make([]interface{}, len(searchCols))
			for i, col := range searchCols {
				clause[i] = "LOWER(" + col + ") LIKE ?"
				args[i] = pattern
			}
			db = db.Where(strings.Join(clause, " OR "), args...)
		}
		page := o.Page
		if page < 1 {
			page = 1
		}
		size := o.PageSize
		if size < 1 {
			size = defaultPageSize
		}
		if size > maxPageSize {
			size = maxPageSize
		}
		return db.Offset((page - 1) * size).Limit(size)
	}
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return def
	}
	return n
}
