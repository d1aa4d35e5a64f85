// Stylematch - Content-Based Product Recommendations
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/stylematch

package api

import (
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/stylematch/internal/catalog"
	"github.com/tomtom215/stylematch/internal/recommend"
	"github.com/tomtom215/stylematch/internal/validation"
)

// errEmptyBody is returned when a POST carries no body at all.
var errEmptyBody = errors.New("request body is empty")

// RecommendedProduct is one entry in a recommendation response.
type RecommendedProduct struct {
	Index   int               `json:"index"`
	Score   float64           `json:"score"`
	Product map[string]string `json:"product"`
}

// RecommendResponse is the data of POST /api/v1/recommend.
type RecommendResponse struct {
	Results     []RecommendedProduct `json:"results"`
	Count       int                  `json:"count"`
	TopN        int                  `json:"top_n"`
	Fingerprint string               `json:"fingerprint"`
}

// Recommend handles POST /api/v1/recommend.
func (router *Router) Recommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	var req validation.RecommendRequest
	if err := router.decodeJSON(w, r, &req); err != nil {
		logWarnOrError(r, http.StatusBadRequest).Err(err).Msg("Invalid recommend body")
		rw.Error(http.StatusBadRequest, ErrCodeBadRequest, err.Error())
		return
	}
	if verr := validation.ValidateStruct(&req); verr != nil {
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeValidation, verr.Error(), verr.Details())
		return
	}

	res, err := router.svc.Recommend(r.Context(), req.Query(router.cfg.Schema), req.TopNOrZero())
	if err != nil {
		respondServiceError(rw, err)
		return
	}

	rw.SuccessWithStatus(http.StatusOK, router.recommendResponse(res), res.CacheHit)
}

func (router *Router) recommendResponse(res *recommend.Result) RecommendResponse {
	out := RecommendResponse{
		Results:     make([]RecommendedProduct, len(res.Items)),
		Count:       len(res.Items),
		TopN:        res.TopN,
		Fingerprint: res.Fingerprint,
	}
	for i, it := range res.Items {
		out.Results[i] = RecommendedProduct{
			Index:   it.Index,
			Score:   it.Score,
			Product: it.Row.Record(router.cfg.Schema),
		}
	}
	return out
}

// LegacyRecommend handles POST /recommend. It accepts the product record as
// a JSON object or as a urlencoded form and answers with a bare JSON array
// of product records, most similar first.
func (router *Router) LegacyRecommend(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	fail := func(status int, msg string) {
		rw.JSON(status, map[string]string{"error": msg})
	}

	rec, err := router.decodeRecord(w, r)
	if err != nil {
		fail(http.StatusBadRequest, err.Error())
		return
	}

	topN := 0
	if v, ok := rec["top_n"]; ok {
		n, err := strconv.Atoi(strings.TrimSpace(v))
		if err != nil || n < 1 || n > validation.MaxRequestTopN {
			fail(http.StatusBadRequest, fmt.Sprintf("top_n must be an integer between 1 and %d", validation.MaxRequestTopN))
			return
		}
		topN = n
	}

	res, err := router.svc.Recommend(r.Context(), catalog.QueryFromRecord(router.cfg.Schema, rec), topN)
	if err != nil {
		status, code := errorStatus(err)
		logWarnOrError(r, status).Str("code", code).Err(err).Msg("Legacy recommend failed")
		fail(status, errorMessage(status, err))
		return
	}

	records := make([]map[string]string, len(res.Items))
	for i, it := range res.Items {
		records[i] = it.Row.Record(router.cfg.Schema)
	}
	rw.JSON(http.StatusOK, records)
}

func (router *Router) decodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, router.cfg.MaxBodyBytes))
	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return errEmptyBody
		}
		return fmt.Errorf("invalid JSON body: %w", err)
	}
	if dec.More() {
		return errors.New("invalid JSON body: trailing data")
	}
	return nil
}

// decodeRecord reads a flat product record from a form or JSON body.
// JSON null values are treated as absent.
func (router *Router) decodeRecord(w http.ResponseWriter, r *http.Request) (map[string]string, error) {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		r.Body = http.MaxBytesReader(w, r.Body, router.cfg.MaxBodyBytes)
		if err := r.ParseForm(); err != nil {
			return nil, fmt.Errorf("invalid form body: %w", err)
		}
		rec := make(map[string]string, len(r.PostForm))
		for k, vs := range r.PostForm {
			if len(vs) > 0 {
				rec[k] = vs[0]
			}
		}
		return rec, nil
	}

	rec, err := catalog.DecodeRecord(http.MaxBytesReader(w, r.Body, router.cfg.MaxBodyBytes))
	if errors.Is(err, catalog.ErrEmptyRecord) {
		return nil, errEmptyBody
	}
	return rec, err
}
