package converter

import (
	"errors"
	"net/url"
	"strings"

	"github.com/samber/lo"

	"github.com/you-humble/biomarket/catalog/internal/model"
)

type ErrorResponse struct {
	Code    int          `json:"code"`
	Message string       `json:"message"`
	Fields  []FieldError `json:"fields,omitempty"`
}

type FieldError struct {
	Field       string   `json:"field"`
	Code        string   `json:"code"`
	Message     string   `json:"message"`
	Suggestions []string `json:"suggestions,omitempty"`
}

type PublishResponse struct {
	BusinessID string `json:"business_id"`
	CID        string `json:"cid"`
}

// ProductToResponse renders the product mapping with display prices and the
// lowest raw price.
func ProductToResponse(p *model.Product) map[string]any {
	m := p.ToMapping()

	prices := p.Prices()
	m["prices"] = lo.Map(prices, func(pi *model.PriceInfo, _ int) map[string]any {
		pm := pi.ToMapping()
		pm["formatted"] = pi.FormatFull()
		return pm
	})
	m["min_price"] = p.MinPrice().String()

	return m
}

func ProductsToResponse(ps []*model.Product) []map[string]any {
	return lo.Map(ps, func(p *model.Product, _ int) map[string]any {
		return ProductToResponse(p)
	})
}

// ProductsFilterFromQuery reads repeated or comma separated category, form,
// species and id parameters.
func ProductsFilterFromQuery(q url.Values) model.ProductsFilter {
	return model.ProductsFilter{
		BusinessIDs: queryList(q, "id"),
		Categories:  queryList(q, "category"),
		Forms:       queryList(q, "form"),
		Species:     queryList(q, "species"),
		OnlyActive:  q.Get("active") == "true" || q.Get("active") == "1",
	}
}

func ErrorToResponse(status int, err error) ErrorResponse {
	resp := ErrorResponse{Code: status, Message: err.Error()}
	if !errors.Is(err, model.ErrValidation) {
		return resp
	}

	resp.Message = model.ErrValidation.Error()
	resp.Fields = lo.Map(model.ValidationErrors(err), func(ve *model.ValidationError, _ int) FieldError {
		return FieldError{
			Field:       ve.Field,
			Code:        ve.Code,
			Message:     ve.Message,
			Suggestions: ve.Suggestions,
		}
	})
	return resp
}

func queryList(q url.Values, key string) []string {
	var out []string
	for _, v := range q[key] {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return lo.Uniq(out)
}
