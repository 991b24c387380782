package http

import (
	"net/http"

	"github.com/aussiebroadwan/laced/internal/laced/domain"
	"github.com/aussiebroadwan/laced/internal/laced/service"
	"github.com/aussiebroadwan/laced/pkg/httpx"
	"github.com/aussiebroadwan/laced/pkg/lacedsdk"
)

// homeFeatured is how many products the home page shows.
const homeFeatured = 8

// PagesHandler serves the JSON views behind storefront pages. Access control
// is entirely the gate's; these handlers only render.
type PagesHandler struct {
	CatalogService *service.CatalogService
}

func (h *PagesHandler) render(w http.ResponseWriter, r *http.Request, page lacedsdk.PageResponse) {
	page.Viewer = ViewerFromContext(r.Context()).wire()
	httpx.WriteJSON(w, http.StatusOK, page)
}

func (h *PagesHandler) simplePage(name string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h.render(w, r, lacedsdk.PageResponse{Page: name})
	}
}

// catalogPage renders name with the first limit featured products. Zero
// means the default page size.
func (h *PagesHandler) catalogPage(name string, limit int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		page, err := h.CatalogService.ListProducts(r.Context(), domain.ProductFilter{Limit: limit})
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		h.render(w, r, lacedsdk.PageResponse{Page: name, Products: toProducts(page.Products)})
	}
}

// HandleProducts renders the catalog page with the same filters as the API.
func (h *PagesHandler) HandleProducts(w http.ResponseWriter, r *http.Request) {
	f, ok := parseProductFilter(r.URL.Query())
	if !ok {
		lacedsdk.ErrInvalidRequest.WriteError(w)
		return
	}
	page, err := h.CatalogService.ListProducts(r.Context(), f)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	h.render(w, r, lacedsdk.PageResponse{Page: "products", Products: toProducts(page.Products)})
}

func (h *PagesHandler) HandleProduct(w http.ResponseWriter, r *http.Request) {
	p, err := h.CatalogService.GetProduct(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	wire := toProduct(p)
	h.render(w, r, lacedsdk.PageResponse{Page: "product", Product: &wire})
}

// HandleAccount is protected by the gate, so a viewer user is always present.
func (h *PagesHandler) HandleAccount(w http.ResponseWriter, r *http.Request) {
	v := ViewerFromContext(r.Context())
	page := lacedsdk.PageResponse{Page: "account"}
	if v.User != nil {
		page.User = userSummary(*v.User)
	}
	h.render(w, r, page)
}
