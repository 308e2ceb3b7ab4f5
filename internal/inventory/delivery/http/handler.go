package http

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/tair/pos-inventory/internal/inventory/domain"
	"github.com/tair/pos-inventory/internal/inventory/ledger"
	"github.com/tair/pos-inventory/pkg/logger"
)

// InventoryHandler exposes the ledger over HTTP for the order-entry and
// returns workflows.
type InventoryHandler struct {
	ledger *ledger.Ledger
}

// NewInventoryHandler creates a new inventory handler
func NewInventoryHandler(l *ledger.Ledger) *InventoryHandler {
	return &InventoryHandler{ledger: l}
}

type Response struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

type stockMovementRequest struct {
	StoreID       string `json:"store_id"`
	VariantID     string `json:"variant_id"`
	Quantity      int    `json:"quantity"`
	ReferenceID   string `json:"reference_id"`
	ReferenceType string `json:"reference_type,omitempty"`
	Reason        string `json:"reason,omitempty"`
	AdjustedAt    string `json:"adjusted_at,omitempty"`
}

func (req *stockMovementRequest) adjustedAt() (time.Time, error) {
	if req.AdjustedAt == "" {
		return time.Time{}, nil
	}
	return time.Parse(time.RFC3339, req.AdjustedAt)
}

// GetInventory handles GET /api/inventory/{store_id}/{variant_id}.
// A pair that was never provisioned is not an error: the response carries
// null data so the caller can treat it as zero stock.
func (h *InventoryHandler) GetInventory(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	inv, err := h.ledger.FindByVariantAndStore(r.Context(), vars["variant_id"], vars["store_id"])
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to fetch inventory")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to fetch inventory",
		})
		return
	}

	if inv == nil {
		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory not provisioned for this store and variant",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    inv,
	})
}

// ListAdjustments handles GET /api/inventory/{store_id}/{variant_id}/adjustments
func (h *InventoryHandler) ListAdjustments(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	offset, _ := strconv.Atoi(r.URL.Query().Get("offset"))
	if limit == 0 {
		limit = 20
	}

	adjustments, err := h.ledger.ListAdjustments(r.Context(), vars["variant_id"], vars["store_id"], limit, offset)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to list adjustments")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to list adjustments",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    adjustments,
	})
}

// ReserveStock handles POST /api/inventory/reserve
func (h *InventoryHandler) ReserveStock(w http.ResponseWriter, r *http.Request) {
	req, identity, ok := h.decodeMovement(w, r)
	if !ok {
		return
	}

	err := h.ledger.Reserve(r.Context(), ledger.ReserveParams{
		VariantID:    req.VariantID,
		StoreID:      req.StoreID,
		Quantity:     req.Quantity,
		ReferenceID:  req.ReferenceID,
		ActingUserID: identity.userID,
		TenantID:     identity.tenantID,
		AdjustedAt:   identity.adjustedAt,
	})
	if err != nil {
		respondLedgerError(w, r, "Failed to reserve stock", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock reserved successfully",
	})
}

// ConsumeStock handles POST /api/inventory/consume
func (h *InventoryHandler) ConsumeStock(w http.ResponseWriter, r *http.Request) {
	req, identity, ok := h.decodeMovement(w, r)
	if !ok {
		return
	}

	err := h.ledger.Consume(r.Context(), ledger.ConsumeParams{
		VariantID:    req.VariantID,
		StoreID:      req.StoreID,
		Quantity:     req.Quantity,
		ReferenceID:  req.ReferenceID,
		ActingUserID: identity.userID,
		TenantID:     identity.tenantID,
		AdjustedAt:   identity.adjustedAt,
	})
	if err != nil {
		respondLedgerError(w, r, "Failed to consume stock", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock consumed successfully",
	})
}

// ReleaseStock handles POST /api/inventory/release
func (h *InventoryHandler) ReleaseStock(w http.ResponseWriter, r *http.Request) {
	req, identity, ok := h.decodeMovement(w, r)
	if !ok {
		return
	}

	err := h.ledger.Release(r.Context(), ledger.ReleaseParams{
		VariantID:    req.VariantID,
		StoreID:      req.StoreID,
		Quantity:     req.Quantity,
		ReferenceID:  req.ReferenceID,
		ActingUserID: identity.userID,
		TenantID:     identity.tenantID,
		AdjustedAt:   identity.adjustedAt,
	})
	if err != nil {
		respondLedgerError(w, r, "Failed to release stock", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock released successfully",
	})
}

// ReturnStock handles POST /api/inventory/return
func (h *InventoryHandler) ReturnStock(w http.ResponseWriter, r *http.Request) {
	req, identity, ok := h.decodeMovement(w, r)
	if !ok {
		return
	}

	err := h.ledger.Return(r.Context(), ledger.ReturnParams{
		VariantID:     req.VariantID,
		StoreID:       req.StoreID,
		Quantity:      req.Quantity,
		ReferenceID:   req.ReferenceID,
		ReferenceType: req.ReferenceType,
		ActingUserID:  identity.userID,
		TenantID:      identity.tenantID,
		Reason:        req.Reason,
		AdjustedAt:    identity.adjustedAt,
	})
	if err != nil {
		respondLedgerError(w, r, "Failed to return stock", err)
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Message: "Stock returned successfully",
	})
}

// ValidateReturn handles POST /api/inventory/return/validate
func (h *InventoryHandler) ValidateReturn(w http.ResponseWriter, r *http.Request) {
	var req stockMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return
	}

	result, err := h.ledger.ValidateReturn(r.Context(), req.VariantID, req.StoreID, req.Quantity)
	if err != nil {
		logger.Error(r.Context()).Err(err).Msg("Failed to validate return")
		respondJSON(w, http.StatusInternalServerError, Response{
			Success: false,
			Error:   "Failed to validate return",
		})
		return
	}

	respondJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

type movementIdentity struct {
	userID     string
	tenantID   string
	adjustedAt time.Time
}

// decodeMovement parses the request body and pulls the acting identity from
// the auth context. The ledger trusts this identity; it never re-authorizes.
func (h *InventoryHandler) decodeMovement(w http.ResponseWriter, r *http.Request) (*stockMovementRequest, *movementIdentity, bool) {
	var req stockMovementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "Invalid request body",
		})
		return nil, nil, false
	}

	if req.StoreID == "" || req.VariantID == "" {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "store_id and variant_id are required",
		})
		return nil, nil, false
	}

	adjustedAt, err := req.adjustedAt()
	if err != nil {
		respondJSON(w, http.StatusBadRequest, Response{
			Success: false,
			Error:   "adjusted_at must be RFC3339",
		})
		return nil, nil, false
	}

	identity := &movementIdentity{
		userID:     UserIDFromContext(r.Context()),
		tenantID:   TenantIDFromContext(r.Context()),
		adjustedAt: adjustedAt,
	}
	return &req, identity, true
}

func respondLedgerError(w http.ResponseWriter, r *http.Request, message string, err error) {
	var (
		notFound              *domain.NotFoundError
		insufficient          *domain.InsufficientStockError
		insufficientCommitted *domain.InsufficientCommittedStockError
		invalidQuantity       *domain.InvalidQuantityError
	)

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &notFound):
		status = http.StatusNotFound
	case errors.As(err, &insufficient), errors.As(err, &insufficientCommitted):
		status = http.StatusConflict
	case errors.As(err, &invalidQuantity):
		status = http.StatusBadRequest
	}

	if status == http.StatusInternalServerError {
		logger.Error(r.Context()).Err(err).Msg(message)
	} else {
		logger.Warn(r.Context()).Err(err).Msg(message)
	}

	respondJSON(w, status, Response{
		Success: false,
		Error:   err.Error(),
	})
}

// RegisterRoutes registers all inventory routes
func (h *InventoryHandler) RegisterRoutes(router *mux.Router) {
	router.HandleFunc("/api/inventory/reserve", AuthMiddleware(h.ReserveStock)).Methods("POST")
	router.HandleFunc("/api/inventory/consume", AuthMiddleware(h.ConsumeStock)).Methods("POST")
	router.HandleFunc("/api/inventory/release", AuthMiddleware(h.ReleaseStock)).Methods("POST")
	router.HandleFunc("/api/inventory/return", AuthMiddleware(h.ReturnStock)).Methods("POST")
	router.HandleFunc("/api/inventory/return/validate", AuthMiddleware(h.ValidateReturn)).Methods("POST")
	router.HandleFunc("/api/inventory/{store_id}/{variant_id}", AuthMiddleware(h.GetInventory)).Methods("GET")
	router.HandleFunc("/api/inventory/{store_id}/{variant_id}/adjustments", AuthMiddleware(h.ListAdjustments)).Methods("GET")
}

// RegisterHealthCheck registers health check endpoint
func (h *InventoryHandler) RegisterHealthCheck(router *mux.Router, db *sql.DB) {
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Ping(); err != nil {
			respondJSON(w, http.StatusServiceUnavailable, Response{
				Success: false,
				Error:   "Database unavailable",
			})
			return
		}

		respondJSON(w, http.StatusOK, Response{
			Success: true,
			Message: "Inventory service is healthy",
		})
	}).Methods("GET")
}

// respondJSON sends a JSON response
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}
