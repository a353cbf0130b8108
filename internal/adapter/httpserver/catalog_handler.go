package httpserver

import (
	"io"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/Maron09/Product-Store/internal/entity"
	"github.com/Maron09/Product-Store/internal/platform/logger"
	"github.com/Maron09/Product-Store/internal/usecase"
)

// maxUploadSize bounds a whole multipart image upload request.
const maxUploadSize = 32 << 20

type CatalogHandler struct {
	categories usecase.CategoryUsecase
	products   usecase.ProductUsecase
	log        logger.Logger
}

func NewCatalogHandler(categories usecase.CategoryUsecase, products usecase.ProductUsecase, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{categories: categories, products: products, log: log}
}

type categoryRequest struct {
	Title string `json:"title"`
}

func (h *CatalogHandler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	category, err := h.categories.Create(r.Context(), req.Title)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusCreated, "category created", newCategoryView(category))
}

func (h *CatalogHandler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	var req categoryRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	category, err := h.categories.Update(r.Context(), chi.URLParam(r, "id"), req.Title)
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "category updated", newCategoryView(category))
}

func (h *CatalogHandler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if err := h.categories.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "category deleted", nil)
}

func (h *CatalogHandler) ListCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.categories.List(r.Context())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "categories retrieved", newCategoryViews(categories))
}

type productRequest struct {
	Name        string  `json:"name"`
	CategoryID  string  `json:"category_id"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Stock       int     `json:"stock"`
	Discount    bool    `json:"discount"`
}

func (r productRequest) toInput() usecase.ProductInput {
	return usecase.ProductInput{
		Name:        r.Name,
		CategoryID:  r.CategoryID,
		Description: r.Description,
		Price:       r.Price,
		Stock:       r.Stock,
		Discount:    r.Discount,
	}
}

func (h *CatalogHandler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	product, err := h.products.Create(r.Context(), userIDFromContext(r.Context()), req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusCreated, "product created", newProductView(product))
}

func (h *CatalogHandler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	var req productRequest
	if err := decodeBody(r, &req); err != nil {
		respondBadRequest(w, "invalid request body")
		return
	}

	product, err := h.products.Update(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"), req.toInput())
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "product updated", newProductView(product))
}

func (h *CatalogHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if err := h.products.Delete(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id")); err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "product deleted", nil)
}

func (h *CatalogHandler) GetProduct(w http.ResponseWriter, r *http.Request) {
	product, err := h.products.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "product retrieved", newProductView(product))
}

func (h *CatalogHandler) ListProducts(w http.ResponseWriter, r *http.Request) {
	list, err := h.products.List(r.Context(), parseProductFilter(r))
	if err != nil {
		respondError(w, err)
		return
	}
	respondOK(w, http.StatusOK, "products retrieved", newProductListView(list))
}

// parseProductFilter reads the catalog query parameters. Pagination is
// limit/offset style when both parameters are present, page-number
// style otherwise.
func parseProductFilter(r *http.Request) entity.ProductFilter {
	q := r.URL.Query()

	filter := entity.ProductFilter{
		Name:     q.Get("name"),
		Category: q.Get("category"),
	}
	if v, err := strconv.ParseFloat(q.Get("min_price"), 64); err == nil {
		filter.MinPrice = v
	}
	if v, err := strconv.ParseFloat(q.Get("max_price"), 64); err == nil {
		filter.MaxPrice = v
	}
	if q.Has("in_stock") {
		inStock := q.Get("in_stock") == "true"
		filter.InStock = &inStock
	}
	if v, err := strconv.Atoi(q.Get("page")); err == nil {
		filter.Page = v
	}
	if v, err := strconv.Atoi(q.Get("page_size")); err == nil {
		filter.PageSize = v
	}
	if q.Has("limit") && q.Has("offset") {
		limit, limitErr := strconv.Atoi(q.Get("limit"))
		offset, offsetErr := strconv.Atoi(q.Get("offset"))
		if limitErr == nil && offsetErr == nil {
			filter.Limit = limit
			filter.Offset = offset
			filter.HasLimit = true
		}
	}
	return filter
}

func (h *CatalogHandler) UploadImages(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		respondBadRequest(w, "invalid multipart request")
		return
	}

	fileHeaders := r.MultipartForm.File["images"]
	files := make([]usecase.ImageFile, 0, len(fileHeaders))
	for _, header := range fileHeaders {
		f, err := header.Open()
		if err != nil {
			respondBadRequest(w, "could not read uploaded file")
			return
		}
		data, err := io.ReadAll(f)
		f.Close()
		if err != nil {
			respondBadRequest(w, "could not read uploaded file")
			return
		}
		files = append(files, usecase.ImageFile{Name: header.Filename, Data: data})
	}

	images, err := h.products.UploadImages(r.Context(), userIDFromContext(r.Context()), chi.URLParam(r, "id"), files)
	if err != nil {
		respondError(w, err)
		return
	}

	views := make([]productImageView, 0, len(images))
	for _, img := range images {
		views = append(views, productImageView{ID: img.ID, ImageURL: img.ImageURL})
	}
	respondOK(w, http.StatusOK, "images uploaded", views)
}
