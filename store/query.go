package store

import (
	"fmt"

	repository "github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// Predicate restricts a fetch to records whose Field equals Value.
type Predicate struct {
	Field string
	Value any
}

// Order is a single sort key.
type Order struct {
	Field      string
	Descending bool
}

// Query collects fetch options.
type Query struct {
	Predicates []Predicate
	Orders     []Order
}

// FetchOption configures a FetchAll call.
type FetchOption func(*Query)

// Where adds an equality predicate.
func Where(field string, value any) FetchOption {
	return func(q *Query) {
		q.Predicates = append(q.Predicates, Predicate{Field: field, Value: value})
	}
}

// OrderBy appends a sort key. Keys apply in the order given.
func OrderBy(field string, descending bool) FetchOption {
	return func(q *Query) {
		q.Orders = append(q.Orders, Order{Field: field, Descending: descending})
	}
}

func buildQuery(opts []FetchOption) Query {
	var q Query
	for _, opt := range opts {
		if opt != nil {
			opt(&q)
		}
	}
	if len(q.Orders) == 0 {
		q.Orders = []Order{{Field: ColumnDueDate, Descending: true}}
	}
	return q
}

// criteria translates q into select criteria, rejecting unknown columns.
func (q Query) criteria() ([]repository.SelectCriteria, error) {
	criteria := make([]repository.SelectCriteria, 0, len(q.Predicates)+len(q.Orders))

	for _, p := range q.Predicates {
		if _, ok := knownColumns[p.Field]; !ok {
			return nil, fmt.Errorf("unsupported filter field %q", p.Field)
		}
		p := p
		criteria = append(criteria, func(sq *bun.SelectQuery) *bun.SelectQuery {
			return sq.Where("? = ?", bun.Ident(p.Field), p.Value)
		})
	}

	for _, o := range q.Orders {
		if _, ok := knownColumns[o.Field]; !ok {
			return nil, fmt.Errorf("unsupported order field %q", o.Field)
		}
		o := o
		criteria = append(criteria, func(sq *bun.SelectQuery) *bun.SelectQuery {
			if o.Descending {
				return sq.OrderExpr("? DESC", bun.Ident(o.Field))
			}
			return sq.OrderExpr("? ASC", bun.Ident(o.Field))
		})
	}

	return criteria, nil
}

func selectByID(id uuid.UUID) repository.SelectCriteria {
	return func(q *bun.SelectQuery) *bun.SelectQuery {
		return q.Where("? = ?", bun.Ident(ColumnID), id.String())
	}
}

func deleteByID(id uuid.UUID) repository.DeleteCriteria {
	return func(q *bun.DeleteQuery) *bun.DeleteQuery {
		return q.Where("? = ?", bun.Ident(ColumnID), id.String())
	}
}
