// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package validation

import (
	"github.com/tomtom215/stylematch/internal/catalog"
)

// MaxRequestTopN bounds top_n on the wire. The service applies its own
// configured cap on top of this.
const MaxRequestTopN = 100

// RecommendRequest is the body of POST /api/v1/recommend. Pointer fields
// distinguish an absent value from an empty one.
type RecommendRequest struct {
	ProductDisplayName *string `json:"productDisplayName" validate:"required"`
	Gender             *string `json:"gender,omitempty"`
	MasterCategory     *string `json:"masterCategory,omitempty"`
	SubCategory        *string `json:"subCategory,omitempty"`
	ArticleType        *string `json:"articleType,omitempty"`
	Season             *string `json:"season,omitempty"`
	Usage              *string `json:"usage,omitempty"`
	TopN               *int    `json:"top_n,omitempty" validate:"omitempty,min=1,max=100"`
}

// Record flattens the request into a column map holding only the fields
// that were supplied.
func (r *RecommendRequest) Record() map[string]string {
	rec := make(map[string]string, 7)
	set := func(key string, v *string) {
		if v != nil {
			rec[key] = *v
		}
	}
	set(catalog.FieldProductDisplayName, r.ProductDisplayName)
	set(catalog.FieldGender, r.Gender)
	set(catalog.FieldMasterCategory, r.MasterCategory)
	set(catalog.FieldSubCategory, r.SubCategory)
	set(catalog.FieldArticleType, r.ArticleType)
	set(catalog.FieldSeason, r.Season)
	set(catalog.FieldUsage, r.Usage)
	return rec
}

// Query converts the request into a catalog query under schema.
func (r *RecommendRequest) Query(schema catalog.Schema) catalog.Query {
	return catalog.QueryFromRecord(schema, r.Record())
}

// TopNOrZero returns the requested top_n, or 0 to ask for the default.
func (r *RecommendRequest) TopNOrZero() int {
	if r.TopN == nil {
		return 0
	}
	return *r.TopN
}

// ChatRequest is the body of POST /api/v1/chat.
type ChatRequest struct {
	Message *string `json:"message" validate:"required"`
}
