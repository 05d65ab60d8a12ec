package client

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shunichi-ikebuchi/roman-calculator/pkg/numeral"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/server"
	"github.com/shunichi-ikebuchi/roman-calculator/pkg/service"
)

func newTestClient(t *testing.T) *Client {
	t.Helper()
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	srv := server.New(service.New(numeral.NewCalculator(numeral.WithMaxLength(10))), server.WithLogger(logger))
	ts := httptest.NewServer(srv.Handler())
	t.Cleanup(ts.Close)
	return NewClient(ClientConfig{BaseURL: ts.URL + "/"})
}

func TestClientCalculations(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	require.NoError(t, c.Health(ctx))

	sum, err := c.Add(ctx, "XIV", "LX")
	require.NoError(t, err)
	assert.Equal(t, "LXXIV", sum.Result)

	diff, err := c.Subtract(ctx, "ID", "XLV")
	require.NoError(t, err)
	assert.Equal(t, "CDLIV", diff.Result)

	exp, err := c.Expand(ctx, "XIV")
	require.NoError(t, err)
	assert.Equal(t, "XIIII", exp.Additive)
	assert.Equal(t, "XIV", exp.Minimal)
}

func TestClientErrorKinds(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	_, err := c.Subtract(ctx, "V", "X")
	assert.ErrorIs(t, err, numeral.ErrUnderflow)

	_, err = c.Add(ctx, "MMMMMM", "MMMMM")
	assert.True(t, numeral.IsKind(err, numeral.KindNumeralTooLarge))

	_, err = c.Expand(ctx, "ABC")
	assert.True(t, numeral.IsKind(err, numeral.KindInvalidSymbol))

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestClientNonJSONError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusBadGateway)
	}))
	defer ts.Close()

	c := NewClient(ClientConfig{BaseURL: ts.URL})
	_, err := c.Add(context.Background(), "I", "I")

	var apiErr *APIError
	require.True(t, errors.As(err, &apiErr))
	assert.Equal(t, http.StatusBadGateway, apiErr.StatusCode)
	assert.Equal(t, "boom", apiErr.Description)
	assert.Empty(t, numeral.KindOf(err))
}
