package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	portsrepo "github.com/SscSPs/transaction_service/internal/core/ports/repositories"
	"github.com/SscSPs/transaction_service/internal/core/services"
	"github.com/SscSPs/transaction_service/internal/dto"
	"github.com/SscSPs/transaction_service/internal/handlers"
	"github.com/SscSPs/transaction_service/internal/platform/config"
	"github.com/SscSPs/transaction_service/internal/repositories/memory"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateTransaction_RejectsSubCentAmounts(t *testing.T) {
	gin.SetMode(gin.TestMode)
	require.NoError(t, handlers.RegisterValidations())

	now := func() time.Time { return time.Date(2024, 1, 20, 12, 0, 0, 0, time.UTC) }
	container := services.NewServiceContainer(portsrepo.RepositoryProvider{TransactionRepo: memory.NewTransactionRepository()}, nil, now)
	r := gin.New()
	handlers.RegisterRoutes(r, &config.Config{IsProduction: true, RecentDaysDefault: 30}, container, nil)

	post := func(amount string) *httptest.ResponseRecorder {
		body := `{"transactionDate":"2024-01-15","amount":` + amount + `,"description":"Split","category":"other"}`
		w := httptest.NewRecorder()
		req, _ := http.NewRequest(http.MethodPost, "/api/v1/transactions", bytes.NewBufferString(body))
		req.Header.Set("Content-Type", "application/json")
		r.ServeHTTP(w, req)
		return w
	}

	for _, amount := range []string{"0.004", "1999.995"} {
		w := post(amount)
		require.Equal(t, http.StatusBadRequest, w.Code, amount)
		var resp dto.ErrorResponse
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
		assert.Contains(t, resp.Error, "decimal places", amount)
	}

	w := httptest.NewRecorder()
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/transactions", nil)
	r.ServeHTTP(w, req)
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String(), "rejected amounts are never stored")

	w = post("125.500")
	assert.Equal(t, http.StatusCreated, w.Code, "trailing zeros are cent precise")
}
