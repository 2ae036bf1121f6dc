package dashboard

import (
	"context"
	"errors"
	"math"
	"strconv"

	"github.com/stefan-mouope/terabia-catalog/internal/models"
)

// Mode names the controller's modal state.
type Mode int

const (
	// Idle: no modal open.
	Idle Mode = iota
	// Creating: modal open, form reset to empty defaults.
	Creating
	// Editing: modal open, form pre-populated from the selected product.
	Editing
)

const defaultUnit = "kg"

// Products with this much stock or less get the "stock faible" badge.
// Pure presentation; nothing persisted backs it.
const lowStockThreshold = 5

// FormDraft holds the in-progress edit as the user typed it. Fields stay
// textual until submit; coercion is the submit step's job.
type FormDraft struct {
	Title        string
	Description  string
	Price        string
	Stock        string
	Unit         string
	CategoryID   string
	LocationCity string
}

// Controller owns the seller console's form and list state. It is
// single-threaded by contract: the rendering loop calls it, network
// results come back through ApplyProducts with the generation token the
// fetch was started under.
type Controller struct {
	client   *Client
	sellerID string
	city     string

	mode          Mode
	draft         FormDraft
	editing       *models.Product
	pendingDelete *models.Product

	products   []models.Product
	generation uint64
	refreshSeq int
	lastError  string
	submitting bool
}

func NewController(client *Client, sellerID, city string) *Controller {
	return &Controller{
		client:   client,
		sellerID: sellerID,
		city:     city,
	}
}

func (c *Controller) Mode() Mode { return c.mode }

func (c *Controller) Draft() *FormDraft { return &c.draft }

func (c *Controller) Products() []models.Product { return c.products }

func (c *Controller) LastError() string { return c.lastError }

func (c *Controller) Submitting() bool { return c.submitting }

// RefreshSeq is the monotonic counter dependent views key on. Any view
// holding a stale value re-fetches its data; mutations trade extra
// network calls for not having to patch three views incrementally.
func (c *Controller) RefreshSeq() int { return c.refreshSeq }

// BeginCreate opens the modal with an empty draft.
func (c *Controller) BeginCreate() {
	c.draft = FormDraft{Unit: defaultUnit, LocationCity: c.city}
	c.editing = nil
	c.lastError = ""
	c.mode = Creating
}

// BeginEdit opens the modal pre-populated from the selected product.
func (c *Controller) BeginEdit(p models.Product) {
	unit := p.Unit
	if unit == "" {
		unit = defaultUnit
	}
	city := p.LocationCity
	if city == "" {
		city = c.city
	}
	c.draft = FormDraft{
		Title:        p.Title,
		Description:  p.Description,
		Price:        strconv.FormatFloat(p.Price, 'f', -1, 64),
		Stock:        strconv.Itoa(p.Stock),
		Unit:         unit,
		CategoryID:   strconv.Itoa(p.CategoryID),
		LocationCity: city,
	}
	c.editing = &p
	c.lastError = ""
	c.mode = Editing
}

// Cancel closes the modal without touching the list.
func (c *Controller) Cancel() {
	c.mode = Idle
	c.editing = nil
}

// Submit coerces the draft and sends it. On success the modal closes and
// the refresh counter bumps; on failure everything stays as typed so the
// user can correct and resubmit.
func (c *Controller) Submit(ctx context.Context, images ...ImageUpload) error {
	if c.mode == Idle {
		return errors.New("no form open")
	}

	input, err := c.coerceDraft()
	if err != nil {
		c.lastError = err.Error()
		return err
	}

	c.submitting = true
	defer func() { c.submitting = false }()

	switch c.mode {
	case Creating:
		_, err = c.client.CreateProduct(ctx, *input, images)
	case Editing:
		upd := models.ProductUpdate{
			Title:        &input.Title,
			Description:  &input.Description,
			Price:        &input.Price,
			Stock:        &input.Stock,
			Unit:         &input.Unit,
			CategoryID:   &input.CategoryID,
			LocationCity: &input.LocationCity,
		}
		_, err = c.client.UpdateProduct(ctx, c.editing.ID.Hex(), upd)
	}
	if err != nil {
		c.lastError = err.Error()
		return err
	}

	c.mode = Idle
	c.editing = nil
	c.lastError = ""
	c.refreshSeq++
	return nil
}

func (c *Controller) coerceDraft() (*ProductInput, error) {
	if c.draft.Title == "" || c.draft.Price == "" || c.draft.Stock == "" || c.draft.CategoryID == "" {
		return nil, errors.New("Veuillez remplir tous les champs obligatoires (*)")
	}
	price, err := strconv.ParseFloat(c.draft.Price, 64)
	if err != nil || math.IsNaN(price) || price < 0 {
		return nil, errors.New("prix invalide")
	}
	stock, err := strconv.Atoi(c.draft.Stock)
	if err != nil || stock < 0 {
		return nil, errors.New("stock invalide")
	}
	categoryID, err := strconv.Atoi(c.draft.CategoryID)
	if err != nil {
		return nil, errors.New("catégorie invalide")
	}
	return &ProductInput{
		Title:        c.draft.Title,
		Description:  c.draft.Description,
		Price:        price,
		Stock:        stock,
		Unit:         c.draft.Unit,
		CategoryID:   categoryID,
		LocationCity: c.draft.LocationCity,
	}, nil
}

// RequestDelete opens the confirmation dialog for one candidate.
// Requesting another candidate replaces the first; the dialog never holds
// more than one.
func (c *Controller) RequestDelete(p models.Product) {
	c.pendingDelete = &p
}

func (c *Controller) CancelDelete() {
	c.pendingDelete = nil
}

func (c *Controller) DeleteCandidate() *models.Product {
	return c.pendingDelete
}

// ConfirmDelete removes the candidate and bumps the refresh counter. On
// failure the dialog stays open with the message.
func (c *Controller) ConfirmDelete(ctx context.Context) error {
	if c.pendingDelete == nil {
		return errors.New("nothing to delete")
	}
	if err := c.client.DeleteProduct(ctx, c.pendingDelete.ID.Hex()); err != nil {
		c.lastError = err.Error()
		return err
	}
	c.pendingDelete = nil
	c.lastError = ""
	c.refreshSeq++
	return nil
}

// BeginFetch tags a new list fetch. The returned generation must come
// back through ApplyProducts; a response whose generation predates the
// newest fetch is discarded instead of clobbering fresher data.
func (c *Controller) BeginFetch() uint64 {
	c.generation++
	return c.generation
}

// ApplyProducts installs a fetch result. It reports whether the result
// was applied or discarded as stale.
func (c *Controller) ApplyProducts(generation uint64, products []models.Product) bool {
	if generation < c.generation {
		return false
	}
	c.products = products
	return true
}

// Reload fetches the seller's list synchronously: one generation, one
// apply.
func (c *Controller) Reload(ctx context.Context) error {
	generation := c.BeginFetch()
	products, err := c.client.GetProductsBySeller(ctx, c.sellerID)
	if err != nil {
		c.lastError = err.Error()
		return err
	}
	c.ApplyProducts(generation, products)
	return nil
}

// LowStock lists the products the console badges as running out.
func (c *Controller) LowStock() []models.Product {
	low := make([]models.Product, 0)
	for _, p := range c.products {
		if p.Stock <= lowStockThreshold {
			low = append(low, p)
		}
	}
	return low
}
