package resthttp

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
)

const defaultTimeout = 10 * time.Second

// New resty client with json headers
func New(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return resty.New().
		SetHeader("Content-Type", "application/json").
		SetHeader("Charset", "utf-8").
		SetTimeout(timeout)
}

// Error non 2xx response
type Error struct {
	StatusCode int
	Body       string
}

func (e *Error) Error() string {
	return fmt.Sprintf("http %d: %s", e.StatusCode, e.Body)
}

// ParseResponse decode a successful response into obj
func ParseResponse(r *resty.Response, obj interface{}) error {
	if !r.IsSuccess() {
		return &Error{
			StatusCode: r.StatusCode(),
			Body:       string(r.Body()),
		}
	}

	if obj == nil {
		return nil
	}

	return json.Unmarshal(r.Body(), obj)
}
