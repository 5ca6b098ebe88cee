package dto

import (
	"net/url"
	"strconv"

	"nexus-api/internal/domain"
)

const DefaultLimit = 10

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

// PaginationFromQuery reads limit and offset, falling back to 10 and 0.
func PaginationFromQuery(q url.Values) (Pagination, error) {
	p := Pagination{Limit: DefaultLimit}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Pagination{}, domain.BadRequest("limit deve ser um número inteiro não negativo")
		}
		p.Limit = n
	}
	if v := q.Get("offset"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			return Pagination{}, domain.BadRequest("offset deve ser um número inteiro não negativo")
		}
		p.Offset = n
	}
	return p, nil
}
