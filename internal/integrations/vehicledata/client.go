package vehicledata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client клиент провайдера данных о транспортных средствах
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	log        Logger
}

// NewClient создает новый экземпляр клиента провайдера
func NewClient(baseURL, apiKey string, timeout time.Duration, log Logger) *Client {
	return &Client{
		baseURL: baseURL,
		apiKey:  apiKey,
		httpClient: &http.Client{
			Timeout: timeout,
		},
		log: log,
	}
}

// Lookup получает данные ТС по регистрационному номеру
func (c *Client) Lookup(ctx context.Context, registration string) (*Vehicle, error) {
	normalized := strings.ToUpper(strings.ReplaceAll(registration, " ", ""))
	reqURL := fmt.Sprintf("%s/vehicles?registration=%s", c.baseURL, url.QueryEscape(normalized))

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to create request: %v", ErrInternal, err)
	}

	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to execute request: %v", ErrInternal, err)
	}
	defer resp.Body.Close()

	// Обработка статус-кодов
	switch resp.StatusCode {
	case http.StatusOK:
		// Продолжаем обработку
	case http.StatusBadRequest:
		return nil, fmt.Errorf("%w: invalid registration format", ErrInvalidResponse)
	case http.StatusNotFound:
		return nil, ErrVehicleNotFound
	default:
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("%w: unexpected status code %d: %s", ErrInvalidResponse, resp.StatusCode, string(body))
	}

	// Парсим ответ
	var vehicle Vehicle
	if err := json.NewDecoder(resp.Body).Decode(&vehicle); err != nil {
		return nil, fmt.Errorf("%w: failed to decode response: %v", ErrInvalidResponse, err)
	}

	return &vehicle, nil
}

// LookupWithGracefulDegradation получает данные ТС с graceful degradation.
// При недоступности провайдера возвращает ErrServiceDegraded: клиент может
// продолжить бронирование, введя данные ТС вручную.
func (c *Client) LookupWithGracefulDegradation(ctx context.Context, registration string) (*Vehicle, error) {
	c.log.Info("Fetching vehicle data for registration=%s", registration)

	vehicle, err := c.Lookup(ctx, registration)
	if err != nil {
		// Отсутствие номера в базе провайдера - бизнес-ошибка, пробрасываем её дальше
		if err == ErrVehicleNotFound {
			c.log.Info("No vehicle found for registration=%s", registration)
			return nil, err
		}

		// Для всех остальных ошибок (недоступность провайдера, timeout, ошибки парсинга)
		// применяем graceful degradation
		c.log.Error("Vehicle data provider unavailable, applying graceful degradation for registration=%s: %v", registration, err)
		return nil, fmt.Errorf("%w: registration=%s, error=%v", ErrServiceDegraded, registration, err)
	}

	c.log.Info("Successfully fetched vehicle for registration=%s, engine=%dcc", registration, vehicle.EngineCapacityCc)
	return vehicle, nil
}
