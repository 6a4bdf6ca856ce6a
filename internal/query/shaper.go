// Package query turns a declarative filter/sort/page specification plus an
// access scope into one bounded, deterministic read: a COUNT over the
// filtered set and a windowed data query.
package query

import (
	"database/sql"
	"math"
	"strconv"
	"strings"

	"foodadmin/internal/access"
	"foodadmin/internal/domain"
)

const (
	defaultLimit = 20
	maxLimit     = 200
)

// Page carries the validated paging window.
type Page struct {
	Page  int
	Limit int
}

func (p Page) Offset() int { return (p.Page - 1) * p.Limit }

// ParsePage normalizes raw query params into a valid window.
func ParsePage(pageStr, limitStr string) Page {
	page, _ := strconv.Atoi(strings.TrimSpace(pageStr))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(strings.TrimSpace(limitStr))
	if limit < 1 {
		limit = defaultLimit
	}
	if limit > maxLimit {
		limit = maxLimit
	}
	return Page{Page: page, Limit: limit}
}

type Sort struct {
	Field string
	Desc  bool
}

// ParseSort normalizes raw sort params; def is the entity's default field.
func ParseSort(field, order, def string) Sort {
	field = strings.TrimSpace(field)
	if field == "" {
		field = def
	}
	return Sort{
		Field: field,
		Desc:  strings.EqualFold(strings.TrimSpace(order), "desc"),
	}
}

// PageMeta is returned alongside every list payload.
type PageMeta struct {
	Total      int `json:"total"`
	TotalPages int `json:"totalPages"`
	Page       int `json:"page"`
	Limit      int `json:"limit"`
}

func NewPageMeta(total int, p Page) PageMeta {
	pages := 0
	if total > 0 {
		pages = int(math.Ceil(float64(total) / float64(p.Limit)))
	}
	return PageMeta{Total: total, TotalPages: pages, Page: p.Page, Limit: p.Limit}
}

// Spec assembles one filtered query. Filters are additive (AND-combined);
// a filter whose value is absent is skipped, never treated as "match none".
type Spec struct {
	table   string
	columns string
	joins   []string
	where   []string
	args    []any
}

func New(table, columns string) *Spec {
	return &Spec{table: table, columns: columns}
}

func (s *Spec) Join(clause string) *Spec {
	s.joins = append(s.joins, clause)
	return s
}

func (s *Spec) Where(cond string, args ...any) *Spec {
	s.where = append(s.where, cond)
	s.args = append(s.args, args...)
	return s
}

// Equal adds col = v, skipped when v is nil.
func (s *Spec) Equal(col string, v *int64) *Spec {
	if v != nil {
		s.Where(col+" = ?", *v)
	}
	return s
}

// EqualStr adds col = v, skipped when v is empty.
func (s *Spec) EqualStr(col, v string) *Spec {
	if strings.TrimSpace(v) != "" {
		s.Where(col+" = ?", strings.TrimSpace(v))
	}
	return s
}

// Bool applies only when the caller sent a literal true/false; nil means
// "don't care", which is different from "must be false".
func (s *Spec) Bool(col string, v *bool) *Spec {
	if v != nil {
		s.Where(col+" = ?", *v)
	}
	return s
}

// Search adds a case-insensitive substring match OR-combined across cols.
func (s *Spec) Search(term string, cols ...string) *Spec {
	term = strings.TrimSpace(term)
	if term == "" || len(cols) == 0 {
		return s
	}
	like := "%" + strings.ToLower(term) + "%"
	parts := make([]string, len(cols))
	for i, col := range cols {
		parts[i] = "LOWER(" + col + ") LIKE ?"
		s.args = append(s.args, like)
	}
	s.where = append(s.where, "("+strings.Join(parts, " OR ")+")")
	return s
}

// DateFrom/DateTo apply independent >=/<= bounds; either may be absent.
func (s *Spec) DateFrom(col, v string) *Spec {
	if strings.TrimSpace(v) != "" {
		s.Where("DATE("+col+") >= ?", strings.TrimSpace(v))
	}
	return s
}

func (s *Spec) DateTo(col, v string) *Spec {
	if strings.TrimSpace(v) != "" {
		s.Where("DATE("+col+") <= ?", strings.TrimSpace(v))
	}
	return s
}

// Scope adds the location predicate. For country-wide entity types a null
// city row stays visible to city-restricted admins of the same country.
func (s *Spec) Scope(sc access.Scope, countryCol, cityCol string, countryWide bool) *Spec {
	if sc.CountryID != nil {
		s.Where(countryCol+" = ?", *sc.CountryID)
	}
	if sc.CityID != nil {
		if countryWide {
			s.Where("("+cityCol+" = ? OR "+cityCol+" IS NULL)", *sc.CityID)
		} else {
			s.Where(cityCol+" = ?", *sc.CityID)
		}
	}
	return s
}

func (s *Spec) whereSQL() string {
	if len(s.where) == 0 {
		return ""
	}
	return " WHERE " + strings.Join(s.where, " AND ")
}

func (s *Spec) fromSQL() string {
	out := " FROM " + s.table
	for _, j := range s.joins {
		out += " " + j
	}
	return out
}

// Count runs the pre-pagination COUNT over the filtered set.
func (s *Spec) Count(db *sql.DB) (int, error) {
	var total int
	err := db.QueryRow("SELECT COUNT(*)"+s.fromSQL()+s.whereSQL(), s.args...).Scan(&total)
	if err != nil {
		return 0, domain.InternalError{Msg: "count query failed", Err: err}
	}
	return total, nil
}

// Select runs the windowed data query. sortable maps exposed field names to
// real columns; a field outside the allow-list fails instead of silently
// falling back to a default.
func (s *Spec) Select(db *sql.DB, sortable map[string]string, srt Sort, pg Page) (*sql.Rows, error) {
	col, ok := sortable[srt.Field]
	if !ok {
		return nil, domain.ValidationError{Field: "sort_by", Msg: "unsupported sort field " + srt.Field}
	}
	dir := " ASC"
	if srt.Desc {
		dir = " DESC"
	}

	q := "SELECT " + s.columns + s.fromSQL() + s.whereSQL() +
		" ORDER BY " + col + dir + ", " + s.table + ".id" + dir +
		" LIMIT ? OFFSET ?"
	args := append(append([]any{}, s.args...), pg.Limit, pg.Offset())

	rows, err := db.Query(q, args...)
	if err != nil {
		return nil, domain.InternalError{Msg: "list query failed", Err: err}
	}
	return rows, nil
}
