// Package dashboard is the client side of the seller console: an HTTP
// client for the catalog API and the controller that owns the form/list
// state the console renders from.
package dashboard

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strconv"
	"time"

	"github.com/stefan-mouope/terabia-catalog/internal/models"
)

type Client struct {
	baseURL string
	token   string
	http    *http.Client
}

func NewClient(baseURL, token string) *Client {
	return &Client{
		baseURL: baseURL,
		token:   token,
		http:    &http.Client{Timeout: 15 * time.Second},
	}
}

// ProductInput is the coerced form draft sent on create.
type ProductInput struct {
	Title        string
	Description  string
	Price        float64
	Stock        int
	Unit         string
	CategoryID   int
	LocationCity string
}

// ImageUpload is one file attached to a create request. Order is
// preserved on the server.
type ImageUpload struct {
	Filename string
	Reader   io.Reader
}

func (c *Client) GetAllProducts(ctx context.Context) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products", nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProductsBySeller(ctx context.Context, sellerID string) ([]models.Product, error) {
	var products []models.Product
	if err := c.do(ctx, http.MethodGet, "/api/products/seller/"+sellerID, nil, "", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProductByID(ctx context.Context, id string) (*models.ProductDetail, error) {
	var envelope struct {
		Success bool                 `json:"success"`
		Data    models.ProductDetail `json:"data"`
	}
	if err := c.do(ctx, http.MethodGet, "/api/products/"+id, nil, "", &envelope); err != nil {
		return nil, err
	}
	return &envelope.Data, nil
}

func (c *Client) CreateProduct(ctx context.Context, input ProductInput, images []ImageUpload) (*models.Product, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	fields := map[string]string{
		"title":         input.Title,
		"description":   input.Description,
		"price":         strconv.FormatFloat(input.Price, 'f', -1, 64),
		"stock":         strconv.Itoa(input.Stock),
		"unit":          input.Unit,
		"category_id":   strconv.Itoa(input.CategoryID),
		"location_city": input.LocationCity,
	}
	for name, value := range fields {
		if err := writer.WriteField(name, value); err != nil {
			return nil, err
		}
	}
	for _, img := range images {
		part, err := writer.CreateFormFile("images", img.Filename)
		if err != nil {
			return nil, err
		}
		if _, err := io.Copy(part, img.Reader); err != nil {
			return nil, err
		}
	}
	if err := writer.Close(); err != nil {
		return nil, err
	}

	var product models.Product
	if err := c.do(ctx, http.MethodPost, "/api/products", &body, writer.FormDataContentType(), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, id string, upd models.ProductUpdate) (*models.Product, error) {
	payload, err := json.Marshal(upd)
	if err != nil {
		return nil, err
	}
	var product models.Product
	if err := c.do(ctx, http.MethodPut, "/api/products/"+id, bytes.NewReader(payload), "application/json", &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/products/"+id, nil, "", nil)
}

func (c *Client) do(ctx context.Context, method, path string, body io.Reader, contentType string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return err
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode >= 400 {
		return apiError(resp.StatusCode, raw)
	}
	if out == nil {
		return nil
	}
	return json.Unmarshal(raw, out)
}

// apiError extracts the server's human-readable message so the console
// can surface a single line per failed action.
func apiError(status int, raw []byte) error {
	var envelope struct {
		Error   string `json:"error"`
		Message string `json:"message"`
	}
	if json.Unmarshal(raw, &envelope) == nil {
		if envelope.Error != "" {
			return fmt.Errorf("%s", envelope.Error)
		}
		if envelope.Message != "" {
			return fmt.Errorf("%s", envelope.Message)
		}
	}
	return fmt.Errorf("request failed with status %d", status)
}
