package farm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/google/uuid"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
)

// ErrNotEnoughMoney is returned when the server rejected an action for lack of funds.
var ErrNotEnoughMoney = errors.New("not enough money")

// Client exposes the farm API operations used by the CLI.
type Client interface {
	Farm(ctx context.Context) (*models.FarmSnapshot, error)
	Report(ctx context.Context) (string, error)
	HatchFirst(ctx context.Context, name string) (*ActionResult, error)
	BuyChicken(ctx context.Context, name string) (*ActionResult, error)
	SellChicken(ctx context.Context, id uuid.UUID) (*ActionResult, error)
	Feed(ctx context.Context) (*ActionResult, error)
	CollectEggs(ctx context.Context) (*ActionResult, error)
	SellEggs(ctx context.Context) (*ActionResult, error)
	BuyUpgrade(ctx context.Context, kind models.UpgradeKind) (*ActionResult, error)
	ConfirmDeath(ctx context.Context, chickenID uuid.UUID) (*ActionResult, error)
	DismissFundsNotice(ctx context.Context) (*ActionResult, error)
}

// APIClient is a resty-backed implementation of Client.
type APIClient struct {
	httpClient *resty.Client
}

// NewClient builds a farm API client for the server at baseURL.
func NewClient(baseURL string) *APIClient {
	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Content-Type", "application/json").
		SetTimeout(10 * time.Second)

	return &APIClient{httpClient: restyClient}
}

// ActionResult mirrors the body returned by farm mutations.
type ActionResult struct {
	Chicken *models.Chicken     `json:"chicken,omitempty"`
	Refund  int                 `json:"refund"`
	Earned  int                 `json:"earned"`
	Removed bool                `json:"removed"`
	Farm    models.FarmSnapshot `json:"farm"`
}

// APIError represents a rejected farm API call.
type APIError struct {
	StatusCode int
	Message    string
	Farm       *models.FarmSnapshot
}

func (e *APIError) Error() string {
	return fmt.Sprintf("farm api error: status=%d, message=%s", e.StatusCode, e.Message)
}

// Unwrap lets callers match payment failures with errors.Is(err, ErrNotEnoughMoney).
func (e *APIError) Unwrap() error {
	if e.StatusCode == http.StatusPaymentRequired {
		return ErrNotEnoughMoney
	}
	return nil
}

type errorBody struct {
	Error string               `json:"error"`
	Farm  *models.FarmSnapshot `json:"farm"`
}

func (c *APIClient) Farm(ctx context.Context) (*models.FarmSnapshot, error) {
	result := new(models.FarmSnapshot)
	if err := c.call(ctx, http.MethodGet, "/farm", nil, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *APIClient) Report(ctx context.Context) (string, error) {
	resp, err := c.httpClient.R().SetContext(ctx).Get("/report")
	if err != nil {
		return "", fmt.Errorf("fetch farm report: %w", err)
	}
	if resp.StatusCode() >= http.StatusBadRequest {
		return "", &APIError{StatusCode: resp.StatusCode(), Message: resp.String()}
	}
	return resp.String(), nil
}

func (c *APIClient) HatchFirst(ctx context.Context, name string) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/chickens/first", map[string]string{"name": name})
}

func (c *APIClient) BuyChicken(ctx context.Context, name string) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/chickens", map[string]string{"name": name})
}

func (c *APIClient) SellChicken(ctx context.Context, id uuid.UUID) (*ActionResult, error) {
	return c.action(ctx, http.MethodDelete, "/chickens/"+id.String(), nil)
}

func (c *APIClient) Feed(ctx context.Context) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/feed", nil)
}

func (c *APIClient) CollectEggs(ctx context.Context) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/eggs/collect", nil)
}

func (c *APIClient) SellEggs(ctx context.Context) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/eggs/sell", nil)
}

func (c *APIClient) BuyUpgrade(ctx context.Context, kind models.UpgradeKind) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/upgrades/"+string(kind), nil)
}

func (c *APIClient) ConfirmDeath(ctx context.Context, chickenID uuid.UUID) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/deaths/"+chickenID.String()+"/confirm", nil)
}

func (c *APIClient) DismissFundsNotice(ctx context.Context) (*ActionResult, error) {
	return c.action(ctx, http.MethodPost, "/notices/funds/dismiss", nil)
}

func (c *APIClient) action(ctx context.Context, method, path string, body any) (*ActionResult, error) {
	result := new(ActionResult)
	if err := c.call(ctx, method, path, body, result); err != nil {
		return nil, err
	}
	return result, nil
}

func (c *APIClient) call(ctx context.Context, method, path string, body, result any) error {
	apiErr := new(errorBody)

	req := c.httpClient.R().
		SetContext(ctx).
		SetResult(result).
		SetError(apiErr)
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("%s %s: %w", method, path, err)
	}

	if resp.StatusCode() >= http.StatusBadRequest {
		message := apiErr.Error
		if message == "" {
			message = http.StatusText(resp.StatusCode())
		}
		return &APIError{StatusCode: resp.StatusCode(), Message: message, Farm: apiErr.Farm}
	}

	return nil
}
