package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/sirupsen/logrus"
)

// Action names a remote operation of the shop API.
type Action string

const (
	ActionGetShop    Action = "get_shop"
	ActionAddShop    Action = "add_shop"
	ActionGetSales   Action = "get_sales"
	ActionDailyEntry Action = "daily_entry"

	ActionGetStock       Action = "get_stock"
	ActionAddProduct     Action = "add_product"
	ActionReorderProduct Action = "reorder_product"

	ActionGetCredit           Action = "get_credit"
	ActionAddCreditCustomer   Action = "add_credit_customer"
	ActionRecordCreditPayment Action = "record_credit_payment"
	ActionSendCreditReminder  Action = "send_credit_reminder"
)

// Messages shown for connection failures, by HTTP method.
const (
	MsgConnectionFailed = "Connection failed"
	MsgSaveFailed       = "Save failed"
)

const maxBodyBytes = 1 << 20

// Observer receives one observation per completed call.
type Observer interface {
	ObserveBackend(action, outcome string, d time.Duration)
}

// Client talks to the single configured shop API endpoint.
type Client struct {
	baseURL  string
	http     *http.Client
	log      logrus.FieldLogger
	observer Observer
}

// NewClient creates a client whose every request is bounded by timeout.
// observer may be nil.
func NewClient(baseURL string, timeout time.Duration, log logrus.FieldLogger, observer Observer) *Client {
	return &Client{
		baseURL:  baseURL,
		http:     &http.Client{Timeout: timeout},
		log:      log,
		observer: observer,
	}
}

// Get calls action with params encoded in the query string.
func (c *Client) Get(ctx context.Context, action Action, params map[string]string) (json.RawMessage, error) {
	u, err := url.Parse(c.baseURL)
	if err != nil {
		return nil, connectionError(action, MsgConnectionFailed, err)
	}
	q := u.Query()
	q.Set("action", string(action))
	for k, v := range params {
		q.Set(k, v)
	}
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, connectionError(action, MsgConnectionFailed, err)
	}
	return c.do(req, action, MsgConnectionFailed)
}

// Post calls action with body sent as a JSON object alongside the action name.
func (c *Client) Post(ctx context.Context, action Action, body map[string]any) (json.RawMessage, error) {
	payload := make(map[string]any, len(body)+1)
	for k, v := range body {
		payload[k] = v
	}
	payload["action"] = string(action)

	buf, err := json.Marshal(payload)
	if err != nil {
		return nil, connectionError(action, MsgSaveFailed, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL, bytes.NewReader(buf))
	if err != nil {
		return nil, connectionError(action, MsgSaveFailed, err)
	}
	req.Header.Set("Content-Type", "application/json")
	return c.do(req, action, MsgSaveFailed)
}

// GetJSON is Get followed by decoding the response into dest.
func (c *Client) GetJSON(ctx context.Context, action Action, params map[string]string, dest any) error {
	raw, err := c.Get(ctx, action, params)
	if err != nil {
		return err
	}
	return decode(action, raw, dest)
}

// PostJSON is Post followed by decoding the response into dest.
func (c *Client) PostJSON(ctx context.Context, action Action, body map[string]any, dest any) error {
	raw, err := c.Post(ctx, action, body)
	if err != nil {
		return err
	}
	return decode(action, raw, dest)
}

func (c *Client) do(req *http.Request, action Action, failMsg string) (json.RawMessage, error) {
	start := time.Now()
	log := c.log.WithFields(logrus.Fields{"action": action, "method": req.Method})

	raw, err := c.roundTrip(req, action, failMsg)
	outcome := "ok"
	switch {
	case IsConnection(err):
		outcome = "connection_error"
		log.WithField("detail", Detail(err)).Warn("shop api unreachable")
	case err != nil:
		outcome = "backend_error"
		log.WithField("error", Message(err)).Info("shop api rejected call")
	default:
		log.WithField("duration", time.Since(start).String()).Debug("shop api call")
	}
	if c.observer != nil {
		c.observer.ObserveBackend(string(action), outcome, time.Since(start))
	}
	return raw, err
}

func (c *Client) roundTrip(req *http.Request, action Action, failMsg string) (json.RawMessage, error) {
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, connectionError(action, failMsg, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, connectionError(action, failMsg, err)
	}
	body = bytes.TrimSpace(body)
	if !json.Valid(body) {
		return nil, connectionError(action, failMsg, fmt.Errorf("status %d: response is not JSON", resp.StatusCode))
	}
	if err := failure(action, body, resp.StatusCode); err != nil {
		return nil, err
	}
	return json.RawMessage(body), nil
}

// envelope holds the fields every API object response may carry.
type envelope struct {
	Error   json.RawMessage `json:"error"`
	Success *bool           `json:"success"`
}

// failure inspects a JSON body for the API's failure markers.
func failure(action Action, body []byte, status int) error {
	if len(body) == 0 || body[0] != '{' {
		if status >= http.StatusBadRequest {
			return &Error{Kind: KindBackend, Action: action, Message: fmt.Sprintf("request failed with status %d", status)}
		}
		return nil
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return &Error{Kind: KindBackend, Action: action, Message: "unexpected response from server"}
	}
	if len(env.Error) > 0 && string(env.Error) != "null" {
		return &Error{Kind: KindBackend, Action: action, Message: errorText(env.Error)}
	}
	if env.Success != nil && !*env.Success {
		return &Error{Kind: KindBackend, Action: action, Message: "Unknown error"}
	}
	if status >= http.StatusBadRequest {
		return &Error{Kind: KindBackend, Action: action, Message: fmt.Sprintf("request failed with status %d", status)}
	}
	return nil
}

func errorText(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "Unknown error"
		}
		return s
	}
	return string(raw)
}

func decode(action Action, raw json.RawMessage, dest any) error {
	if err := json.Unmarshal(raw, dest); err != nil {
		return &Error{Kind: KindBackend, Action: action, Message: "unexpected response from server", Detail: err.Error()}
	}
	return nil
}
