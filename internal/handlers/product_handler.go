package handlers

import (
	"errors"
	"fmt"
	"math"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/stefan-mouope/terabia-catalog/internal/cache"
	"github.com/stefan-mouope/terabia-catalog/internal/catalog"
	"github.com/stefan-mouope/terabia-catalog/internal/middleware"
	"github.com/stefan-mouope/terabia-catalog/internal/models"
)

const (
	defaultCurrency = "FCFA"
	detailCacheTTL  = 5 * time.Minute
	listCacheTTL    = 2 * time.Minute

	// Browsers address uploaded files under this prefix; the record only
	// ever stores the path string.
	imageURLPrefix = "/uploads/products/"
)

var validate = validator.New()

type ProductHandler struct {
	store     catalog.ProductStore
	sellers   catalog.SellerDirectory
	cache     *cache.Cache
	uploadDir string
}

func NewProductHandler(store catalog.ProductStore, sellers catalog.SellerDirectory, c *cache.Cache, uploadDir string) *ProductHandler {
	return &ProductHandler{
		store:     store,
		sellers:   sellers,
		cache:     c,
		uploadDir: uploadDir,
	}
}

// createPayload is the coerced form input. Struct-level rules run after
// the field-by-field parse so a bad number is reported as such, not as a
// range violation.
type createPayload struct {
	Title      string  `validate:"required"`
	Price      float64 `validate:"gte=0"`
	Stock      int     `validate:"gte=0"`
	CategoryID int     `validate:"required"`
}

// CreateProduct handles POST /api/products (multipart form + optional
// image files). Validation failures are 400s; an unresolved seller or
// category reference is a 422.
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	actor := c.GetString(middleware.ActorKey)

	title := strings.TrimSpace(c.PostForm("title"))
	priceStr := strings.TrimSpace(c.PostForm("price"))
	stockStr := strings.TrimSpace(c.PostForm("stock"))
	categoryStr := strings.TrimSpace(c.PostForm("category_id"))

	if priceStr == "" {
		h.writeError(c, &catalog.ValidationError{Field: "price", Message: "price is required"})
		return
	}
	price, err := strconv.ParseFloat(priceStr, 64)
	if err != nil || math.IsNaN(price) || math.IsInf(price, 0) {
		h.writeError(c, &catalog.ValidationError{Field: "price", Message: "price must be a number"})
		return
	}

	// Unparseable stock falls back to 0. This is intentional: the mobile
	// form sometimes submits a blank stock field for unmeasured produce.
	stock, err := strconv.Atoi(stockStr)
	if err != nil {
		stock = 0
	}

	categoryID, err := strconv.Atoi(categoryStr)
	if err != nil {
		h.writeError(c, &catalog.ValidationError{Field: "category_id", Message: "category_id must be an integer"})
		return
	}

	payload := createPayload{Title: title, Price: price, Stock: stock, CategoryID: categoryID}
	if err := validate.Struct(payload); err != nil {
		h.writeError(c, validationMessage(err))
		return
	}

	sellerID := strings.TrimSpace(c.PostForm("seller_id"))
	if sellerID == "" {
		sellerID = actor
	}
	if sellerID != actor {
		c.JSON(http.StatusForbidden, gin.H{"error": "cannot create a product for another seller"})
		return
	}

	images, err := h.saveImages(c)
	if err != nil {
		h.writeError(c, err)
		return
	}

	currency := strings.TrimSpace(c.PostForm("currency"))
	if currency == "" {
		currency = defaultCurrency
	}

	product := models.Product{
		SellerID:     sellerID,
		CategoryID:   categoryID,
		Title:        title,
		Description:  strings.TrimSpace(c.PostForm("description")),
		Price:        price,
		Stock:        stock,
		Unit:         strings.TrimSpace(c.PostForm("unit")),
		Images:       images,
		LocationCity: strings.TrimSpace(c.PostForm("location_city")),
		Currency:     currency,
		IsActive:     true,
	}

	if err := h.store.Create(c.Request.Context(), &product); err != nil {
		h.writeError(c, err)
		return
	}

	h.cache.DeleteByPrefix("products:")
	c.JSON(http.StatusCreated, product)
}

// saveImages persists each uploaded file under a server-assigned name and
// returns the public paths in upload order. No files means an empty
// slice, never nil.
func (h *ProductHandler) saveImages(c *gin.Context) ([]string, error) {
	form, err := c.MultipartForm()
	if err != nil && err != http.ErrNotMultipart {
		return nil, &catalog.ValidationError{Field: "images", Message: "malformed multipart body"}
	}

	var files []*multipart.FileHeader
	if form != nil {
		files = form.File["images"]
	}

	images := make([]string, 0, len(files))
	if len(files) == 0 {
		return images, nil
	}

	dir := filepath.Join(h.uploadDir, "products")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, &catalog.StorageError{Op: "create upload dir", Err: err}
	}

	for _, file := range files {
		name := uuid.New().String() + strings.ToLower(filepath.Ext(file.Filename))
		if err := c.SaveUploadedFile(file, filepath.Join(dir, name)); err != nil {
			return nil, &catalog.StorageError{Op: "save upload", Err: err}
		}
		images = append(images, imageURLPrefix+name)
	}
	return images, nil
}

// GetProducts handles GET /api/products: the full catalog in store-native
// order.
func (h *ProductHandler) GetProducts(c *gin.Context) {
	const cacheKey = "products:all"
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.store.FindAll(c.Request.Context(), catalog.ListWindow{})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.cache.Set(cacheKey, products, listCacheTTL)
	c.JSON(http.StatusOK, products)
}

// GetProductByID handles GET /api/products/:id. The detail shape applies
// server-side defaults and embeds the seller projection so the public
// page never renders from missing data.
func (h *ProductHandler) GetProductByID(c *gin.Context) {
	id := strings.TrimSpace(c.Param("id"))
	if id == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "ID manquant"})
		return
	}

	cacheKey := "product:" + id
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, gin.H{"success": true, "data": cached})
		return
	}

	product, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, catalog.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "message": "Produit non trouvé"})
			return
		}
		h.writeError(c, err)
		return
	}

	var seller *models.Seller
	if product.SellerID != "" {
		seller, err = h.sellers.FindByID(c.Request.Context(), product.SellerID)
		if err != nil && !errors.Is(err, catalog.ErrNotFound) {
			h.writeError(c, err)
			return
		}
	}

	detail := models.NewProductDetail(product, seller)
	h.cache.Set(cacheKey, detail, detailCacheTTL)
	c.JSON(http.StatusOK, gin.H{"success": true, "data": detail})
}

// GetProductsBySeller handles GET /api/products/seller/:seller_id. The
// dashboard needs inactive products too, so no active filter applies.
func (h *ProductHandler) GetProductsBySeller(c *gin.Context) {
	sellerID := c.Param("seller_id")

	cacheKey := "products:seller:" + sellerID
	if cached, found := h.cache.Get(cacheKey); found {
		c.JSON(http.StatusOK, cached)
		return
	}

	products, err := h.store.FindBySeller(c.Request.Context(), sellerID, catalog.ListWindow{})
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.cache.Set(cacheKey, products, listCacheTTL)
	c.JSON(http.StatusOK, products)
}

// UpdateProduct handles PUT /api/products/:id with a partial JSON body.
// Fields absent from the payload keep their stored value. Only the owning
// seller may mutate the record.
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	id := c.Param("id")

	existing, ok := h.authorizeMutation(c, id)
	if !ok {
		return
	}

	var upd models.ProductUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		h.writeError(c, &catalog.ValidationError{Field: "body", Message: "malformed JSON body"})
		return
	}
	if err := validateUpdate(&upd); err != nil {
		h.writeError(c, err)
		return
	}

	updated, err := h.store.Update(c.Request.Context(), id, upd)
	if err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(id, existing.SellerID)
	c.JSON(http.StatusOK, updated)
}

// DeleteProduct handles DELETE /api/products/:id. The removal is
// physical; there is no soft-delete state.
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	id := c.Param("id")

	existing, ok := h.authorizeMutation(c, id)
	if !ok {
		return
	}

	if err := h.store.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}

	h.invalidate(id, existing.SellerID)
	c.JSON(http.StatusOK, gin.H{"message": "Product deleted successfully"})
}

// authorizeMutation loads the record and checks the acting seller owns
// it. It writes the response itself on failure.
func (h *ProductHandler) authorizeMutation(c *gin.Context, id string) (*models.Product, bool) {
	existing, err := h.store.FindByID(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return nil, false
	}
	if existing.SellerID != c.GetString(middleware.ActorKey) {
		c.JSON(http.StatusForbidden, gin.H{"error": "not your product"})
		return nil, false
	}
	return existing, true
}

func (h *ProductHandler) invalidate(id, sellerID string) {
	h.cache.Delete("product:" + id)
	h.cache.Delete("products:all")
	h.cache.Delete("products:seller:" + sellerID)
}

// validateUpdate rejects values that would break record invariants when a
// field is present. Absent fields are fine: partial payloads default
// nothing.
func validateUpdate(upd *models.ProductUpdate) error {
	if upd.Title != nil && strings.TrimSpace(*upd.Title) == "" {
		return &catalog.ValidationError{Field: "title", Message: "title cannot be empty"}
	}
	if upd.Price != nil && (*upd.Price < 0 || math.IsNaN(*upd.Price) || math.IsInf(*upd.Price, 0)) {
		return &catalog.ValidationError{Field: "price", Message: "price must be a non-negative number"}
	}
	if upd.Stock != nil && *upd.Stock < 0 {
		return &catalog.ValidationError{Field: "stock", Message: "stock cannot be negative"}
	}
	return nil
}

// validationMessage flattens the first validator violation into the
// taxonomy type the boundary maps to a 400.
func validationMessage(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		field := strings.ToLower(verrs[0].Field())
		return &catalog.ValidationError{Field: field, Message: fmt.Sprintf("%s is missing or out of range", field)}
	}
	return &catalog.ValidationError{Field: "payload", Message: "invalid payload"}
}

// writeError maps the error taxonomy to transport codes: validation 400,
// not-found 404, unresolved reference 422, anything else 500.
func (h *ProductHandler) writeError(c *gin.Context, err error) {
	var verr *catalog.ValidationError
	switch {
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
	case errors.Is(err, catalog.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
	case errors.Is(err, catalog.ErrConstraint):
		c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "seller or category does not exist"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Erreur serveur"})
	}
}
