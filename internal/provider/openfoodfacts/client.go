package openfoodfacts

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

const defaultBaseURL = "https://world.openfoodfacts.org"

// Food is one lookup candidate. Nutrient values are per 100 grams; the
// logging path normalizes them to per-unit amounts when the user confirms.
type Food struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Brand       string  `json:"brand"`
	Calories    int     `json:"calories"`
	Protein     float64 `json:"protein"`
	Carbs       float64 `json:"carbs"`
	Fat         float64 `json:"fat"`
	ServingSize string  `json:"serving_size"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

type offNutriments struct {
	EnergyKcal100g float64 `json:"energy-kcal_100g"`
	Proteins100g   float64 `json:"proteins_100g"`
	Carbs100g      float64 `json:"carbohydrates_100g"`
	Fat100g        float64 `json:"fat_100g"`
}

type offProduct struct {
	Code        string        `json:"code"`
	ProductName string        `json:"product_name"`
	Brands      string        `json:"brands"`
	ServingSize string        `json:"serving_size"`
	Nutriments  offNutriments `json:"nutriments"`
}

type offSearchResponse struct {
	Products []offProduct `json:"products"`
}

type offProductResponse struct {
	Status  int        `json:"status"`
	Product offProduct `json:"product"`
}

// Search queries the free Open Food Facts database, no API key needed.
func (c *Client) Search(ctx context.Context, query string, page int) ([]Food, error) {
	if page < 1 {
		page = 1
	}
	endpoint := fmt.Sprintf("%s/cgi/search.pl?search_terms=%s&search_simple=1&action=process&json=1&page=%d&page_size=20",
		c.baseURL(), url.QueryEscape(query), page)
	body, err := c.get(ctx, endpoint)
	if err != nil {
		return nil, err
	}
	var parsed offSearchResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, errors.New("decoding search response error: " + err.Error())
	}
	foods := make([]Food, 0, len(parsed.Products))
	for _, p := range parsed.Products {
		foods = append(foods, toFood(p))
	}
	return foods, nil
}

// Barcode resolves a single product. A product the database doesn't know
// returns (nil, nil), which callers treat as "log it manually".
func (c *Client) Barcode(ctx context.Context, code string) (*Food, error) {
	body, err := c.get(ctx, fmt.Sprintf("%s/api/v0/product/%s.json", c.baseURL(), url.PathEscape(code)))
	if err != nil {
		return nil, err
	}
	var parsed offProductResponse
	if err := sonic.Unmarshal(body, &parsed); err != nil {
		return nil, errors.New("decoding product response error: " + err.Error())
	}
	if parsed.Status != 1 {
		return nil, nil
	}
	food := toFood(parsed.Product)
	return &food, nil
}

func (c *Client) baseURL() string {
	base := strings.TrimRight(strings.TrimSpace(c.BaseURL), "/")
	if base == "" {
		base = defaultBaseURL
	}
	return base
}

func (c *Client) get(ctx context.Context, endpoint string) ([]byte, error) {
	httpClient := c.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, errors.New("creating food lookup request error: " + err.Error())
	}
	req.Header.Set("User-Agent", "trkr/1.0")
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, errors.New("executing food lookup request error: " + err.Error())
	}
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.New("reading food lookup response error: " + err.Error())
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("food lookup request failed with status %d", resp.StatusCode)
	}
	return body, nil
}

func toFood(p offProduct) Food {
	name := strings.TrimSpace(p.ProductName)
	if name == "" {
		name = "Unknown"
	}
	serving := p.ServingSize
	if serving == "" {
		serving = "100g"
	}
	return Food{
		ID:          p.Code,
		Name:        name,
		Brand:       strings.TrimSpace(p.Brands),
		Calories:    int(math.Round(p.Nutriments.EnergyKcal100g)),
		Protein:     math.Round(p.Nutriments.Proteins100g),
		Carbs:       math.Round(p.Nutriments.Carbs100g),
		Fat:         math.Round(p.Nutriments.Fat100g),
		ServingSize: serving,
	}
}
