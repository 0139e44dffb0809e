package opendata

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"
)

// Query builds a SoQL query string. Where clauses are ANDed together.
// The zero value is an empty query.
type Query struct {
	eq      [][2]string
	where   []string
	order   string
	selects []string
	limit   int
}

// NewQuery returns an empty query.
func NewQuery() *Query { return &Query{} }

// Eq adds a simple equality filter (field=value).
func (q *Query) Eq(field, value string) *Query {
	q.eq = append(q.eq, [2]string{field, value})
	return q
}

// Where adds a $where clause.
func (q *Query) Where(clause string) *Query {
	if clause != "" {
		q.where = append(q.where, clause)
	}
	return q
}

// Wheref adds a formatted $where clause.
func (q *Query) Wheref(format string, args ...any) *Query {
	return q.Where(fmt.Sprintf(format, args...))
}

// Order sets $order.
func (q *Query) Order(order string) *Query {
	q.order = order
	return q
}

// Select sets $select.
func (q *Query) Select(fields ...string) *Query {
	q.selects = fields
	return q
}

// Limit sets $limit. Values <= 0 leave the provider default.
func (q *Query) Limit(n int) *Query {
	q.limit = n
	return q
}

// Encode renders the query as URL parameters. Keys are sorted, so equal
// queries always encode identically.
func (q *Query) Encode() string {
	if q == nil {
		return ""
	}
	v := url.Values{}
	for _, kv := range q.eq {
		v.Add(kv[0], kv[1])
	}
	if len(q.where) > 0 {
		v.Set("$where", strings.Join(q.where, " AND "))
	}
	if q.order != "" {
		v.Set("$order", q.order)
	}
	if len(q.selects) > 0 {
		v.Set("$select", strings.Join(q.selects, ","))
	}
	if q.limit > 0 {
		v.Set("$limit", strconv.Itoa(q.limit))
	}
	return v.Encode()
}

// Quote renders s as a SoQL string literal.
func Quote(s string) string {
	return "'" + strings.ReplaceAll(s, "'", "''") + "'"
}

// WithinCircle renders a within_circle predicate on a geometry field.
func WithinCircle(field string, at Point, radiusMeters int) string {
	return fmt.Sprintf("within_circle(%s,%s,%s,%d)", field,
		strconv.FormatFloat(at.Lat, 'f', -1, 64),
		strconv.FormatFloat(at.Lng, 'f', -1, 64),
		radiusMeters)
}
