package kakao

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/tripmap-microservice/internal/config"
	"github.com/tripmap-microservice/internal/domain"
	"github.com/tripmap-microservice/internal/domain/repository"
	"go.uber.org/zap"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	appKey     string
	logger     *zap.Logger
}

// NewKakaoClient создает новый клиент для Kakao Local API.
// Возвращает nil при отсутствии app key - рантайм провайдера недоступен.
func NewKakaoClient(cfg *config.KakaoConfig, logger *zap.Logger) repository.PlaceRepository {
	if cfg.AppKey == "" {
		return nil
	}
	return &client{
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.RequestTimeout) * time.Second,
		},
		baseURL: cfg.BaseURL,
		appKey:  cfg.AppKey,
		logger:  logger,
	}
}

// keywordSearchResponse - ответ /v2/local/search/keyword.json
type keywordSearchResponse struct {
	Documents []keywordDocument `json:"documents"`
	Meta      struct {
		TotalCount int `json:"total_count"`
	} `json:"meta"`
}

type keywordDocument struct {
	PlaceName         string `json:"place_name"`
	AddressName       string `json:"address_name"`
	RoadAddressName   string `json:"road_address_name"`
	CategoryGroupName string `json:"category_group_name"`
	X                 string `json:"x"` // longitude
	Y                 string `json:"y"` // latitude
}

// coord2AddressResponse - ответ /v2/local/geo/coord2address.json
type coord2AddressResponse struct {
	Documents []struct {
		RoadAddress *struct {
			AddressName string `json:"address_name"`
		} `json:"road_address"`
		Address *struct {
			AddressName string `json:"address_name"`
		} `json:"address"`
	} `json:"documents"`
}

// SearchKeyword выполняет поиск мест по ключевому слову
func (c *client) SearchKeyword(ctx context.Context, query string, limit int) ([]domain.PlaceResult, error) {
	if query == "" {
		return nil, fmt.Errorf("query cannot be empty")
	}
	if limit <= 0 || limit > 15 {
		limit = 15
	}

	reqURL := fmt.Sprintf("%s/v2/local/search/keyword.json?query=%s&size=%d",
		c.baseURL, url.QueryEscape(query), limit)

	c.logger.Debug("Calling Kakao keyword search",
		zap.String("query", query),
		zap.Int("limit", limit))

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return nil, err
	}

	var resp keywordSearchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to decode keyword search response", zap.Error(err))
		return nil, fmt.Errorf("failed to decode response: %w", err)
	}

	results := make([]domain.PlaceResult, 0, len(resp.Documents))
	for _, doc := range resp.Documents {
		lon, errX := strconv.ParseFloat(doc.X, 64)
		lat, errY := strconv.ParseFloat(doc.Y, 64)
		if errX != nil || errY != nil {
			c.logger.Warn("Skipping document with malformed coordinates",
				zap.String("place_name", doc.PlaceName))
			continue
		}

		// Дорожный адрес предпочтительнее участкового
		address := doc.RoadAddressName
		if address == "" {
			address = doc.AddressName
		}

		results = append(results, domain.PlaceResult{
			Name:     doc.PlaceName,
			Address:  address,
			Category: doc.CategoryGroupName,
			Position: domain.Coordinate{Lat: lat, Lon: lon},
		})
	}

	c.logger.Debug("Kakao keyword search successful",
		zap.Int("result_count", len(results)))

	return results, nil
}

// ReverseGeocode возвращает адрес для координаты
func (c *client) ReverseGeocode(ctx context.Context, coord domain.Coordinate) (string, error) {
	if !coord.Valid() {
		return "", fmt.Errorf("invalid coordinate")
	}

	reqURL := fmt.Sprintf("%s/v2/local/geo/coord2address.json?x=%f&y=%f",
		c.baseURL, coord.Lon, coord.Lat)

	body, err := c.doRequest(ctx, reqURL)
	if err != nil {
		return "", err
	}

	var resp coord2AddressResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		c.logger.Error("Failed to decode coord2address response", zap.Error(err))
		return "", fmt.Errorf("failed to decode response: %w", err)
	}

	if len(resp.Documents) == 0 {
		return "", fmt.Errorf("no address found for coordinate")
	}

	doc := resp.Documents[0]
	if doc.RoadAddress != nil && doc.RoadAddress.AddressName != "" {
		return doc.RoadAddress.AddressName, nil
	}
	if doc.Address != nil && doc.Address.AddressName != "" {
		return doc.Address.AddressName, nil
	}
	return "", fmt.Errorf("address document is empty")
}

func (c *client) doRequest(ctx context.Context, reqURL string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		c.logger.Error("Failed to create request", zap.Error(err))
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Authorization", "KakaoAK "+c.appKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.logger.Error("Failed to execute request", zap.Error(err))
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		c.logger.Error("Kakao API returned error",
			zap.Int("status_code", resp.StatusCode),
			zap.String("body", string(body)))
		return nil, fmt.Errorf("kakao API error: status %d, body: %s", resp.StatusCode, string(body))
	}

	return body, nil
}
