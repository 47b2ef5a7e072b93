package interfaces

import (
	"encoding/json"
	"net/http"
	"strconv"

	pkgerrors "github.com/pkg/errors"

	"storefront/internal/service/cart/application"
	cartdomain "storefront/internal/service/cart/domain"
	invdomain "storefront/internal/service/inventory/domain"
)

// CartHandler 封装了购物车模块的 HTTP 处理器
type CartHandler struct {
	service *application.CartService
}

// NewCartHandler 创建一个新的 HTTP 处理器实例
func NewCartHandler(service *application.CartService) *CartHandler {
	return &CartHandler{service: service}
}

// RegisterRoutes 在 ServeMux 上注册所有路由
func (h *CartHandler) RegisterRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/cart", h.cartHandler)
	mux.HandleFunc("/cart/items", h.cartItemsHandler)
}

func (h *CartHandler) cartHandler(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("sessionId")
	if sessionID == "" {
		http.Error(w, "sessionId is required", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodGet:
		products, err := h.service.GetProductsInCart(r.Context(), sessionID)
		if err != nil {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		if products == nil {
			products = []invdomain.Product{}
		}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(products)
	case http.MethodDelete:
		if err := h.service.DeleteCart(r.Context(), sessionID); err != nil && !pkgerrors.Is(err, cartdomain.ErrCartNotFound) {
			http.Error(w, err.Error(), http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
	}
}

// cartItemsHandler 修改购物车里单个商品的数量。
// POST 增加，DELETE 减少，数量由 units 查询参数给定。
func (h *CartHandler) cartItemsHandler(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()
	sessionID := query.Get("sessionId")
	productID := query.Get("productId")
	if sessionID == "" || productID == "" {
		http.Error(w, "sessionId and productId are required", http.StatusBadRequest)
		return
	}
	units, err := strconv.Atoi(query.Get("units"))
	if err != nil {
		http.Error(w, "units must be an integer", http.StatusBadRequest)
		return
	}

	switch r.Method {
	case http.MethodPost:
		err = h.service.AddItem(r.Context(), sessionID, productID, units)
	case http.MethodDelete:
		err = h.service.RemoveItem(r.Context(), sessionID, productID, units)
	default:
		http.Error(w, "method not allowed", http.StatusMethodNotAllowed)
		return
	}

	if err != nil {
		if pkgerrors.Is(err, invdomain.ErrInvalidArgument) {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
