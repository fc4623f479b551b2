// Package directory talks to the back-office employee API that owns staff records.
package directory

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/employee"
	"github.com/cmlabs-hris/pharmacy-shift-go/internal/domain/schedule"
	"github.com/sony/gobreaker"
)

// HTTPDirectory implements employee.Directory over HTTP. Calls go through a circuit breaker
// so a failing back office does not stall every schedule and overtime request.
type HTTPDirectory struct {
	client  *http.Client
	baseURL string
	cb      *gobreaker.CircuitBreaker
	logger  *slog.Logger
}

var _ employee.Directory = (*HTTPDirectory)(nil)

// wireEmployee is the payload shape of the back office; _id may be a plain string or
// an extended-JSON object id.
type wireEmployee struct {
	ID       schedule.EmployeeRef `json:"_id"`
	Name     string               `json:"name"`
	Position string               `json:"position"`
}

func NewHTTPDirectory(baseURL string, timeout time.Duration, logger *slog.Logger) *HTTPDirectory {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	d := &HTTPDirectory{
		client:  &http.Client{Timeout: timeout},
		baseURL: strings.TrimRight(baseURL, "/"),
		logger:  logger,
	}
	d.cb = gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "employee-directory",
		MaxRequests: 5,
		Interval:    60 * time.Second,
		Timeout:     30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			// Trip if failure rate is at least 50% after at least 10 requests
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 10 && failureRatio >= 0.5
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, employee.ErrEmployeeNotFound)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
	return d
}

// Lookup implements employee.Directory. The back office is asked for the ids in one call;
// ids it does not know are simply absent from the result.
func (d *HTTPDirectory) Lookup(ctx context.Context, ids []string) (map[string]employee.Employee, error) {
	result := make(map[string]employee.Employee, len(ids))
	if len(ids) == 0 {
		return result, nil
	}

	q := url.Values{}
	q.Set("ids", strings.Join(ids, ","))

	var payload []wireEmployee
	if err := d.get(ctx, "/employees?"+q.Encode(), &payload); err != nil {
		return nil, err
	}

	wanted := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		wanted[id] = struct{}{}
	}
	for _, w := range payload {
		emp, err := w.toEmployee()
		if err != nil {
			d.logger.Warn("skipping directory entry", slog.String("error", err.Error()))
			continue
		}
		if _, ok := wanted[emp.ID]; ok {
			result[emp.ID] = emp
		}
	}
	return result, nil
}

// GetByID implements employee.Directory.
func (d *HTTPDirectory) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	var payload wireEmployee
	if err := d.get(ctx, "/employees/"+url.PathEscape(id), &payload); err != nil {
		return employee.Employee{}, err
	}
	return payload.toEmployee()
}

func (d *HTTPDirectory) get(ctx context.Context, path string, out interface{}) error {
	_, err := d.cb.Execute(func() (interface{}, error) {
		return nil, d.do(ctx, path, out)
	})
	if err != nil {
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			return fmt.Errorf("%w: %v", employee.ErrDirectoryUnavailable, err)
		}
		return err
	}
	return nil
}

func (d *HTTPDirectory) do(ctx context.Context, path string, out interface{}) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, d.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create directory request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := d.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", employee.ErrDirectoryUnavailable, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return employee.ErrEmployeeNotFound
	case resp.StatusCode >= 300:
		return fmt.Errorf("%w: status code %d", employee.ErrDirectoryUnavailable, resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode directory response: %w", err)
	}
	return nil
}

func (w wireEmployee) toEmployee() (employee.Employee, error) {
	id, err := schedule.NormalizeEmployeeID(w.ID)
	if err != nil {
		return employee.Employee{}, err
	}
	return employee.Employee{ID: id, Name: w.Name, Position: w.Position}, nil
}
