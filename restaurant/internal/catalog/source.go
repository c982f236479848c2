package catalog

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"time"

	cb "github.com/Astemirdum/restaurant-service/pkg/circuit_breaker"
	"github.com/Astemirdum/restaurant-service/restaurant/internal/model"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"
)

type Source interface {
	Fetch(ctx context.Context) ([]model.Restaurant, error)
}

func Decode(r io.Reader) ([]model.Restaurant, error) {
	var doc model.CatalogDocument
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, errors.Wrap(err, "decode catalog")
	}
	return doc.Restaurants, nil
}

type FileSource struct {
	path string
}

func NewFileSource(path string) *FileSource {
	return &FileSource{path: path}
}

func (s *FileSource) Fetch(ctx context.Context) ([]model.Restaurant, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f, err := os.Open(s.path)
	if err != nil {
		return nil, errors.Wrap(err, "open catalog")
	}
	defer f.Close()
	return Decode(f)
}

type HTTPSource struct {
	url    string
	client *http.Client
	cb     cb.CircuitBreaker
}

func NewHTTPSource(url string) *HTTPSource {
	return &HTTPSource{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		cb: cb.New(cb.Settings{
			RecordLength:     5,
			Timeout:          10 * time.Second,
			Percentile:       0.6,
			RecoveryRequests: 1,
		}),
	}
}

func (s *HTTPSource) Fetch(ctx context.Context) ([]model.Restaurant, error) {
	var items []model.Restaurant
	err := s.cb.Call(func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, s.url, http.NoBody)
		if err != nil {
			return err
		}
		req.Header.Set(echo.HeaderAccept, echo.MIMEApplicationJSON)
		resp, err := s.client.Do(req)
		if err != nil {
			return err
		}
		defer resp.Body.Close()
		if resp.StatusCode != http.StatusOK {
			return fmt.Errorf("catalog fetch: unexpected status %d", resp.StatusCode)
		}
		items, err = Decode(resp.Body)
		return err
	})
	return items, err
}
