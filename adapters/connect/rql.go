// Package connect implements the vendor platform REST client. Collections
// are filtered with RQL expressions and iterated with limit/offset paging.
package connect

import (
	"fmt"
	"strings"
)

// rql accumulates filter expressions joined with '&'
type rql struct {
	parts []string
}

func (q *rql) eq(field, value string) *rql {
	q.parts = append(q.parts, fmt.Sprintf("eq(%s,%s)", field, value))
	return q
}

func (q *rql) ge(field, value string) *rql {
	q.parts = append(q.parts, fmt.Sprintf("ge(%s,%s)", field, value))
	return q
}

func (q *rql) le(field, value string) *rql {
	q.parts = append(q.parts, fmt.Sprintf("le(%s,%s)", field, value))
	return q
}

// in adds an in() expression; empty value lists add nothing
func (q *rql) in(field string, values []string) *rql {
	if len(values) == 0 {
		return q
	}
	q.parts = append(q.parts, fmt.Sprintf("in(%s,(%s))", field, strings.Join(values, ",")))
	return q
}

func (q *rql) orderBy(field string) *rql {
	q.parts = append(q.parts, fmt.Sprintf("ordering(%s)", field))
	return q
}

// encode renders the expression list for a query string, with paging
func (q *rql) encode(limit, offset int) string {
	parts := append([]string{}, q.parts...)
	parts = append(parts, fmt.Sprintf("limit=%d", limit), fmt.Sprintf("offset=%d", offset))
	return strings.Join(parts, "&")
}
