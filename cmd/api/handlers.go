package main

import (
	"bytes"
	"encoding/json"
	"net/http"
	"strconv"
	"sync"

	"github.com/gorilla/mux"
	"github.com/shopspring/decimal"

	"storefront/pkg/catalog"
	"storefront/pkg/otel"
	"storefront/pkg/storefront"
)

// sessionMu pairs each mutating call with the snapshot reported for it, so a
// response never shows another request's changes.
var sessionMu sync.Mutex

// cartResponse is returned by every cart, coupon and balance operation.
type cartResponse struct {
	Cart         storefront.Snapshot      `json:"cart"`
	Notification *storefront.Notification `json:"notification,omitempty"`
}

// checkoutResponse carries the receipt of a successful purchase.
type checkoutResponse struct {
	Receipt      storefront.Receipt      `json:"receipt"`
	Cart         storefront.Snapshot     `json:"cart"`
	Notification storefront.Notification `json:"notification"`
}

type productsResponse struct {
	Query    string            `json:"query"`
	Sort     string            `json:"sort"`
	Products []catalog.Product `json:"products"`
}

type addItemRequest struct {
	ProductID int `json:"product_id"`
	Qty       int `json:"qty"`
}

// changeQtyRequest accepts qty as a number or as the raw text of an input
// box, e.g. {"qty": 3} or {"qty": "3"}.
type changeQtyRequest struct {
	Qty json.RawMessage `json:"qty"`
}

type couponRequest struct {
	Code string `json:"code"`
}

type creditRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

type subscribeRequest struct {
	Email string `json:"email"`
}

// listProductsHandler filters and sorts the catalog.
// @Summary List products
// @Produce json
// @Param q query string false "Case-insensitive title or category match"
// @Param sort query string false "default, low or high"
// @Success 200 {object} productsResponse
// @Router /products [get]
func listProductsHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "listProductsHandler")
	defer span.End()

	q := r.URL.Query()
	mode := catalog.ParseSortMode(q.Get("sort"))
	products := store.SetFilter(q.Get("q"), mode)
	writeJSON(w, http.StatusOK, productsResponse{Query: q.Get("q"), Sort: string(mode), Products: products})
}

// getCartHandler returns the cart with its totals.
// @Summary Get cart
// @Produce json
// @Success 200 {object} cartResponse
// @Router /cart [get]
func getCartHandler(w http.ResponseWriter, r *http.Request) {
	_, span := otel.AddSpan(r.Context(), "getCartHandler")
	defer span.End()

	writeJSON(w, http.StatusOK, cartResponse{Cart: store.Snapshot()})
}

// addItemHandler adds a product to the cart.
// @Summary Add to cart
// @Accept json
// @Produce json
// @Param item body addItemRequest true "Product and quantity; qty defaults to 1"
// @Success 200 {object} cartResponse
// @Failure 404 {object} cartResponse
// @Failure 409 {object} cartResponse
// @Router /cart/items [post]
func addItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "addItemHandler")
	defer span.End()

	var req addItemRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if req.Qty == 0 {
		req.Qty = 1
	}
	sessionMu.Lock()
	defer sessionMu.Unlock()

	err := store.AddToCart(ctx, catalog.ProductID(req.ProductID), req.Qty)
	respondCart(w, storefront.OpAddToCart, err)
}

// changeQtyHandler sets the quantity of a cart line.
// @Summary Change quantity
// @Description A quantity that would exceed the balance is lowered by one unit and reported as 409.
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param qty body changeQtyRequest true "New quantity"
// @Success 200 {object} cartResponse
// @Failure 400 {object} cartResponse
// @Failure 409 {object} cartResponse
// @Router /cart/items/{id} [put]
func changeQtyHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "changeQtyHandler")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	var req changeQtyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sessionMu.Lock()
	defer sessionMu.Unlock()

	err = store.ChangeQtyInput(ctx, catalog.ProductID(id), rawQty(req.Qty))
	respondCart(w, storefront.OpChangeQty, err)
}

// removeItemHandler deletes a cart line.
// @Summary Remove from cart
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} cartResponse
// @Router /cart/items/{id} [delete]
func removeItemHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "removeItemHandler")
	defer span.End()

	id, err := strconv.Atoi(mux.Vars(r)["id"])
	if err != nil {
		http.Error(w, "invalid product id", http.StatusBadRequest)
		return
	}
	sessionMu.Lock()
	defer sessionMu.Unlock()

	err = store.RemoveFromCart(ctx, catalog.ProductID(id))
	respondCart(w, storefront.OpRemoveFromCart, err)
}

// applyCouponHandler applies a coupon code.
// @Summary Apply coupon
// @Accept json
// @Produce json
// @Param coupon body couponRequest true "Coupon code"
// @Success 200 {object} cartResponse
// @Failure 400 {object} cartResponse
// @Router /coupon [post]
func applyCouponHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "applyCouponHandler")
	defer span.End()

	var req couponRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sessionMu.Lock()
	defer sessionMu.Unlock()

	err := store.ApplyCoupon(ctx, req.Code)
	respondCart(w, storefront.OpApplyCoupon, err)
}

// clearCouponHandler removes the coupon.
// @Summary Clear coupon
// @Produce json
// @Success 200 {object} cartResponse
// @Router /coupon [delete]
func clearCouponHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "clearCouponHandler")
	defer span.End()

	sessionMu.Lock()
	defer sessionMu.Unlock()

	store.ClearCoupon(ctx)
	respondCart(w, storefront.OpClearCoupon, nil)
}

// topUpHandler credits the configured top-up amount.
// @Summary Top up balance
// @Produce json
// @Success 200 {object} cartResponse
// @Router /balance/topup [post]
func topUpHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "topUpHandler")
	defer span.End()

	sessionMu.Lock()
	defer sessionMu.Unlock()

	amount, err := store.TopUp(ctx)
	respondCredit(w, amount, err)
}

// creditHandler credits an arbitrary positive amount.
// @Summary Credit balance
// @Accept json
// @Produce json
// @Param credit body creditRequest true "Amount"
// @Success 200 {object} cartResponse
// @Failure 400 {object} cartResponse
// @Router /balance/credit [post]
func creditHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "creditHandler")
	defer span.End()

	var req creditRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	sessionMu.Lock()
	defer sessionMu.Unlock()

	err := store.CreditBalance(ctx, req.Amount)
	respondCredit(w, req.Amount, err)
}

// checkoutHandler pays for the cart.
// @Summary Checkout
// @Produce json
// @Success 200 {object} checkoutResponse
// @Failure 409 {object} cartResponse
// @Failure 422 {object} cartResponse
// @Router /checkout [post]
func checkoutHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "checkoutHandler")
	defer span.End()

	sessionMu.Lock()
	defer sessionMu.Unlock()

	receipt, err := store.Checkout(ctx)
	if err != nil {
		respondCart(w, storefront.OpCheckout, err)
		return
	}
	writeJSON(w, http.StatusOK, checkoutResponse{
		Receipt:      receipt,
		Cart:         store.Snapshot(),
		Notification: store.Notify(storefront.OpCheckout, nil),
	})
}

// subscribeHandler adds an email to the newsletter list.
// @Summary Subscribe to newsletter
// @Accept json
// @Produce json
// @Param subscription body subscribeRequest true "Email"
// @Success 200 {object} storefront.Notification
// @Failure 400 {object} storefront.Notification
// @Router /newsletter [post]
func subscribeHandler(w http.ResponseWriter, r *http.Request) {
	ctx, span := otel.AddSpan(r.Context(), "subscribeHandler")
	defer span.End()

	var req subscribeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	err := store.Subscribe(ctx, req.Email)
	writeJSON(w, statusFor(err), store.Notify(storefront.OpSubscribe, err))
}

func respondCart(w http.ResponseWriter, op storefront.Op, err error) {
	n := store.Notify(op, err)
	writeJSON(w, statusFor(err), cartResponse{Cart: store.Snapshot(), Notification: &n})
}

func respondCredit(w http.ResponseWriter, amount decimal.Decimal, err error) {
	n := store.CreditNotice(amount)
	if err != nil {
		n = store.Notify(storefront.OpCreditBalance, err)
	}
	writeJSON(w, statusFor(err), cartResponse{Cart: store.Snapshot(), Notification: &n})
}

// statusFor maps a storefront error kind to an HTTP status.
func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	kind, ok := storefront.KindOf(err)
	if !ok {
		return http.StatusInternalServerError
	}
	switch kind {
	case storefront.KindProductNotFound:
		return http.StatusNotFound
	case storefront.KindInsufficientBalance:
		return http.StatusConflict
	case storefront.KindEmptyCart:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusBadRequest
	}
}

// rawQty turns the qty field back into the text a user would have typed.
func rawQty(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return string(raw)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
