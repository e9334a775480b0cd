package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/jiaotianpharma/warehouse-backend/api/middleware"
	"github.com/jiaotianpharma/warehouse-backend/api/responses"
	"github.com/jiaotianpharma/warehouse-backend/api/validators"
	inventorysvc "github.com/jiaotianpharma/warehouse-backend/internal/inventory"
	"github.com/jiaotianpharma/warehouse-backend/pkg/enums"
	pkgerrors "github.com/jiaotianpharma/warehouse-backend/pkg/errors"
	"github.com/jiaotianpharma/warehouse-backend/pkg/logger"
)

const dateLayout = "2006-01-02"

// InventoryList returns inventory items newest first, narrowed by the
// category, status, and query parameters.
func InventoryList(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		filters, err := parseInventoryFilters(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		items, err := svc.Query(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, items, len(items))
	}
}

// InventoryCreate registers a new inventory item and records the matching
// audit entry.
func InventoryCreate(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		var payload createItemRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		actor := middleware.ActorFromContext(r.Context())
		item, err := svc.Insert(r.Context(), actor, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, item)
	}
}

// InventoryAdjustStock applies one inbound or outbound movement to the item
// identified in the path.
func InventoryAdjustStock(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		itemID := strings.TrimSpace(chi.URLParam(r, "id"))
		if itemID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "item id is required"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithItemID(ctx, itemID)
		}

		var payload adjustStockRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		direction, err := enums.ParseStockDirection(payload.Direction)
		if err != nil {
			responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid direction"))
			return
		}

		actor := middleware.ActorFromContext(ctx)
		item, err := svc.AdjustStock(ctx, actor, inventorysvc.AdjustStockInput{
			ItemID:    itemID,
			Delta:     payload.Quantity,
			Direction: direction,
		})
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		responses.WriteSuccess(w, item)
	}
}

// InventoryTrace looks up the item behind a batch number.
func InventoryTrace(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		batchNumber := strings.TrimSpace(chi.URLParam(r, "batchNumber"))
		if batchNumber == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "batch number is required"))
			return
		}

		ctx := r.Context()
		if logg != nil {
			ctx = logg.WithBatchNumber(ctx, batchNumber)
		}

		item, err := svc.Trace(ctx, batchNumber)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		if item == nil {
			responses.WriteError(ctx, logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "no item found for batch number"))
			return
		}

		responses.WriteSuccess(w, item)
	}
}

type createItemRequest struct {
	DrugName      string          `json:"drug_name" validate:"required"`
	Category      string          `json:"category" validate:"required"`
	BatchNumber   string          `json:"batch_number" validate:"required"`
	Manufacturer  string          `json:"manufacturer" validate:"required"`
	Specification string          `json:"specification"`
	Quantity      int             `json:"quantity" validate:"min=0"`
	Unit          string          `json:"unit" validate:"required"`
	Price         decimal.Decimal `json:"price"`
	ExpiryDate    string          `json:"expiry_date" validate:"required,datetime=2006-01-02"`
	InboundDate   string          `json:"inbound_date" validate:"required,datetime=2006-01-02"`
	Location      string          `json:"location"`
}

func (r createItemRequest) toCreateInput() (inventorysvc.CreateItemInput, error) {
	category, err := enums.ParseDrugCategory(strings.TrimSpace(r.Category))
	if err != nil {
		return inventorysvc.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category")
	}

	expiry, err := time.Parse(dateLayout, r.ExpiryDate)
	if err != nil {
		return inventorysvc.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid expiry_date")
	}

	inbound, err := time.Parse(dateLayout, r.InboundDate)
	if err != nil {
		return inventorysvc.CreateItemInput{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid inbound_date")
	}

	return inventorysvc.CreateItemInput{
		DrugName:      strings.TrimSpace(r.DrugName),
		Category:      category,
		BatchNumber:   strings.TrimSpace(r.BatchNumber),
		Manufacturer:  strings.TrimSpace(r.Manufacturer),
		Specification: strings.TrimSpace(r.Specification),
		Quantity:      r.Quantity,
		Unit:          strings.TrimSpace(r.Unit),
		Price:         r.Price,
		ExpiryDate:    expiry,
		InboundDate:   inbound,
		Location:      strings.TrimSpace(r.Location),
	}, nil
}

type adjustStockRequest struct {
	Quantity  int    `json:"quantity" validate:"required,min=1"`
	Direction string `json:"direction" validate:"required,oneof=in out"`
}

func parseInventoryFilters(r *http.Request) (inventorysvc.Filters, error) {
	filters := inventorysvc.Filters{
		Category: strings.TrimSpace(r.URL.Query().Get("category")),
		Status:   strings.TrimSpace(r.URL.Query().Get("status")),
		Query:    strings.TrimSpace(r.URL.Query().Get("query")),
	}

	if filters.Category != "" && filters.Category != enums.DrugCategoryAll {
		if _, err := enums.ParseDrugCategory(filters.Category); err != nil {
			return inventorysvc.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category filter")
		}
	}
	if filters.Status != "" && filters.Status != enums.StockStatusAll {
		if _, err := enums.ParseStockStatus(filters.Status); err != nil {
			return inventorysvc.Filters{}, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid status filter")
		}
	}

	return filters, nil
}
