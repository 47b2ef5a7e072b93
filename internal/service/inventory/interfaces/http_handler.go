package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"storefront/internal/service/inventory/application"
	"storefront/internal/service/inventory/domain"
)

const serviceName = "storefront"

// InventoryHandler 封装了库存模块的 HTTP 处理器
type InventoryHandler struct {
	service   *application.InventoryService
	generator *application.DataGenerator
}

// NewInventoryHandler 创建一个新的 HTTP 处理器实例
func NewInventoryHandler(service *application.InventoryService, generator *application.DataGenerator) *InventoryHandler {
	return &InventoryHandler{service: service, generator: generator}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *InventoryHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/products", h.listProductsHandler)
	mux.HandleFunc("/products/", h.getProductHandler)
	mux.HandleFunc("/reservations", h.makeReservationHandler)
	mux.HandleFunc("/inventory/restock", h.restockHandler)
}

func (h *InventoryHandler) listProductsHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	products, err := h.service.GetAllProducts(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(products)
}

func (h *InventoryHandler) getProductHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	productID := strings.TrimPrefix(r.URL.Path, "/products/")
	if productID == "" || strings.Contains(productID, "/") {
		http.Error(w, "productId is required", http.StatusBadRequest)
		return
	}

	product, err := h.service.GetProduct(r.Context(), productID)
	if err != nil {
		if pkgerrors.Is(err, domain.ErrProductNotFound) {
			http.Error(w, err.Error(), http.StatusNotFound)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

// makeReservationHandler 为某个会话在某个商品上预留若干单位。
// 预留数量写在 units 查询参数上，表示该会话想要的总增量。
func (h *InventoryHandler) makeReservationHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	propagator := otel.GetTextMapPropagator()
	ctx := propagator.Extract(r.Context(), propagation.HeaderCarrier(r.Header))

	tracer := otel.Tracer(serviceName)
	ctx, span := tracer.Start(ctx, "api.MakeReservation")
	defer span.End()

	query := r.URL.Query()
	productID := query.Get("productId")
	sessionID := query.Get("sessionId")
	units, err := strconv.Atoi(query.Get("units"))
	if err != nil {
		http.Error(w, "units must be an integer", http.StatusBadRequest)
		return
	}

	product, err := h.service.MakeReservation(ctx, productID, sessionID, units)
	if err != nil {
		var insufficient *domain.InsufficientUnitsError
		switch {
		case pkgerrors.Is(err, domain.ErrInvalidArgument):
			http.Error(w, err.Error(), http.StatusBadRequest)
		case pkgerrors.Is(err, domain.ErrProductNotFound):
			http.Error(w, err.Error(), http.StatusNotFound)
		case pkgerrors.As(err, &insufficient):
			http.Error(w, err.Error(), http.StatusConflict)
		default:
			http.Error(w, err.Error(), http.StatusInternalServerError)
		}
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(product)
}

func (h *InventoryHandler) restockHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err := h.generator.RestockProducts(r.Context()); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
