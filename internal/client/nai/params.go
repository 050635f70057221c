package nai

import (
	"net/url"
	"strconv"
)

type SortOrder string

const (
	SortAsc  SortOrder = "asc"
	SortDesc SortOrder = "desc"
)

type ListParams struct {
	Category PESTELCategory
	SortBy   string
	Order    SortOrder
	Limit    int
}

func (p *ListParams) values() url.Values {
	if p == nil {
		return nil
	}

	v := make(url.Values)

	if p.Category != "" {
		v.Set("category", string(p.Category))
	}
	if p.SortBy != "" {
		v.Set("sort_by", p.SortBy)
	}
	if p.Order != "" {
		v.Set("order", string(p.Order))
	}
	if p.Limit > 0 {
		v.Set("limit", strconv.Itoa(p.Limit))
	}

	return v
}

type HistoryParams struct {
	Days int
}

func (p *HistoryParams) values() url.Values {
	if p == nil {
		return nil
	}

	v := make(url.Values)

	if p.Days > 0 {
		v.Set("days", strconv.Itoa(p.Days))
	}

	return v
}
