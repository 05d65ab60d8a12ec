package server

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/numeral"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/service"
)

// CalculationRequest is the body of POST /api/v1/add and /api/v1/subtract.
type CalculationRequest struct {
	Left  string `json:"left"`
	Right string `json:"right"`
}

// CalculationResponse carries the resulting numeral.
type CalculationResponse struct {
	Result string `json:"result"`
	Cached bool   `json:"cached,omitempty"`
}

// ExpandResponse shows a numeral in each form the calculator uses.
type ExpandResponse struct {
	Numeral  string `json:"numeral"`
	Additive string `json:"additive"`
	Bundled  string `json:"bundled"`
	Minimal  string `json:"minimal"`
}

type calcHandler struct {
	svc *service.Service
}

// Add handles POST /api/v1/add.
func (h *calcHandler) Add(w http.ResponseWriter, r *http.Request) {
	h.evaluate(w, r, service.OpAdd)
}

// Subtract handles POST /api/v1/subtract.
func (h *calcHandler) Subtract(w http.ResponseWriter, r *http.Request) {
	h.evaluate(w, r, service.OpSubtract)
}

func (h *calcHandler) evaluate(w http.ResponseWriter, r *http.Request, op service.Operation) {
	var req CalculationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid_request", "Invalid JSON body")
		return
	}

	res := h.svc.Evaluate(r.Context(), service.Problem{Op: op, Left: req.Left, Right: req.Right})
	if res.Err != nil {
		writeCalcError(w, res.Err)
		return
	}

	writeJSON(w, http.StatusOK, CalculationResponse{Result: res.Value, Cached: res.Cached})
}

// Expand handles GET /api/v1/expand/{numeral}.
func (h *calcHandler) Expand(w http.ResponseWriter, r *http.Request) {
	n := chi.URLParam(r, "numeral")
	calc := h.svc.Calculator()

	additive, err := calc.Expand(n)
	if err != nil {
		writeCalcError(w, err)
		return
	}
	minimal, err := calc.Normalize(n)
	if err != nil {
		writeCalcError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, ExpandResponse{
		Numeral:  n,
		Additive: additive,
		Bundled:  calc.Table().Bundle(additive),
		Minimal:  minimal,
	})
}

func writeCalcError(w http.ResponseWriter, err error) {
	switch kind := numeral.KindOf(err); kind {
	case numeral.KindInvalidSymbol:
		writeJSONError(w, http.StatusBadRequest, string(kind), err.Error())
	case numeral.KindNumeralTooLarge, numeral.KindUnderflow:
		writeJSONError(w, http.StatusUnprocessableEntity, string(kind), err.Error())
	default:
		if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
			writeJSONError(w, http.StatusServiceUnavailable, "unavailable", "Request canceled")
			return
		}
		writeJSONError(w, http.StatusInternalServerError, "server_error", "Calculation failed")
	}
}
