package search

import (
	"strings"

	"kontak/internal/models"
)

// Column of the contacts table a condition applies to.
type Column string

const (
	ColumnOwner     Column = "username"
	ColumnFirstName Column = "first_name"
	ColumnLastName  Column = "last_name"
	ColumnEmail     Column = "email"
	ColumnPhone     Column = "phone"
)

// Operator of a condition.
type Operator int

const (
	// Equals matches the exact value.
	Equals Operator = iota
	// Contains matches a case-insensitive substring.
	Contains
)

// Predicate is a restriction over contact rows. It can be rendered to SQL
// and evaluated against a contact in memory with the same result.
type Predicate interface {
	// SQL returns a parenthesized WHERE fragment with ? placeholders.
	SQL() (string, []any)
	// Match reports whether c satisfies the predicate.
	Match(c *models.Contact) bool
}

// Condition compares one column with a value.
type Condition struct {
	Column   Column
	Operator Operator
	Value    string
}

// And holds when every child holds. An empty And always holds.
type And []Predicate

// Or holds when any child holds. An empty Or never holds.
type Or []Predicate

// ContactQuery returns the restriction of a contact search for owner:
//
//	owner = X AND (first_name ~ name OR last_name ~ name) AND email ~ email AND phone ~ phone
//
// where ~ is a case-insensitive "contains" and the optional groups are left
// out when their criterion is absent.
func ContactQuery(f Filter, owner string) And {
	query := And{Condition{Column: ColumnOwner, Operator: Equals, Value: owner}}

	if name, ok := criterion(f.Name); ok {
		query = append(query, Or{
			Condition{Column: ColumnFirstName, Operator: Contains, Value: name},
			Condition{Column: ColumnLastName, Operator: Contains, Value: name},
		})
	}
	if email, ok := criterion(f.Email); ok {
		query = append(query, Condition{Column: ColumnEmail, Operator: Contains, Value: email})
	}
	if phone, ok := criterion(f.Phone); ok {
		query = append(query, Condition{Column: ColumnPhone, Operator: Contains, Value: phone})
	}
	return query
}

func criterion(s *string) (string, bool) {
	if s == nil || *s == "" {
		return "", false
	}
	return *s, true
}

func (c Condition) SQL() (string, []any) {
	switch c.Operator {
	case Contains:
		return "(LOWER(" + string(c.Column) + ") LIKE LOWER(?) ESCAPE '\\')", []any{"%" + escapeLike(c.Value) + "%"}
	default:
		return "(" + string(c.Column) + " = ?)", []any{c.Value}
	}
}

func (c Condition) Match(contact *models.Contact) bool {
	value, ok := columnValue(contact, c.Column)
	if !ok {
		return false
	}
	switch c.Operator {
	case Contains:
		return strings.Contains(foldASCII(value), foldASCII(c.Value))
	default:
		return value == c.Value
	}
}

func (a And) SQL() (string, []any) {
	if len(a) == 0 {
		return "(1 = 1)", nil
	}
	return join(a, " AND ")
}

func (a And) Match(c *models.Contact) bool {
	for _, p := range a {
		if !p.Match(c) {
			return false
		}
	}
	return true
}

func (o Or) SQL() (string, []any) {
	if len(o) == 0 {
		return "(1 = 0)", nil
	}
	return join(o, " OR ")
}

func (o Or) Match(c *models.Contact) bool {
	for _, p := range o {
		if p.Match(c) {
			return true
		}
	}
	return false
}

func join(preds []Predicate, sep string) (string, []any) {
	parts := make([]string, 0, len(preds))
	var args []any
	for _, p := range preds {
		sql, a := p.SQL()
		parts = append(parts, sql)
		args = append(args, a...)
	}
	return "(" + strings.Join(parts, sep) + ")", args
}

// foldASCII lowercases ASCII letters only, as sqlite's LOWER does.
func foldASCII(s string) string {
	return strings.Map(func(r rune) rune {
		if 'A' <= r && r <= 'Z' {
			return r + ('a' - 'A')
		}
		return r
	}, s)
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func escapeLike(s string) string {
	return likeEscaper.Replace(s)
}

// columnValue returns the value of column on c; ok is false for a NULL column.
func columnValue(c *models.Contact, column Column) (string, bool) {
	switch column {
	case ColumnOwner:
		return c.Username, true
	case ColumnFirstName:
		return c.FirstName, true
	case ColumnLastName:
		return deref(c.LastName)
	case ColumnEmail:
		return deref(c.Email)
	case ColumnPhone:
		return deref(c.Phone)
	default:
		return "", false
	}
}

func deref(s *string) (string, bool) {
	if s == nil {
		return "", false
	}
	return *s, true
}
