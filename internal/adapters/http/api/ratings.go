package api

import (
	"context"
	"encoding/json"
	"net/http"
)

// maxRatingBody caps POST /ratings payloads.
const maxRatingBody = 1 << 16

// RatingsDependencies defines the operations behind /ratings.
type RatingsDependencies interface {
	SaveRating(ctx context.Context, language, path string, rating int) (RatingReceipt, error)
}

// RatingsHandler stores ratings.
type RatingsHandler struct {
	deps RatingsDependencies
}

// NewRatingsHandler creates a new ratings handler.
func NewRatingsHandler(deps RatingsDependencies) *RatingsHandler {
	return &RatingsHandler{deps: deps}
}

// ratingRequest mirrors the OpenAPI schema for POST /ratings. Pointers
// tell a missing field apart from a zero value.
type ratingRequest struct {
	Filename *string `json:"filename"`
	Rating   *int    `json:"rating"`
	Language string  `json:"language,omitempty"`
}

func (req ratingRequest) validate() error {
	switch {
	case req.Filename == nil || *req.Filename == "":
		return NewKind("ratings.validate", errMissing("filename"))
	case req.Rating == nil:
		return NewKind("ratings.validate", errMissing("rating"))
	}
	return nil
}

// HandlePostRating handles POST /ratings requests.
func (h *RatingsHandler) HandlePostRating(w http.ResponseWriter, r *http.Request) {
	if !allowMethods(w, r, http.MethodPost) {
		return
	}
	const op = "ratings.decode"
	ctx := r.Context()

	var req ratingRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxRatingBody))
	if err := dec.Decode(&req); err != nil {
		writeServiceError(ctx, w, WrapKind(op, ErrBadRequest, err))
		return
	}
	if err := req.validate(); err != nil {
		writeServiceError(ctx, w, err)
		return
	}

	receipt, err := h.deps.SaveRating(ctx, req.Language, *req.Filename, *req.Rating)
	if err != nil {
		writeServiceError(ctx, w, Wrap("ratings.save", err))
		return
	}
	writeJSON(w, http.StatusOK, receipt)
}
