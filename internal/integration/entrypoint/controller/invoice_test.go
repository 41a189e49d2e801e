package controller

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gestao-consultoria/backend/internal/application/usecase/invoice"
	domainerror "github.com/gestao-consultoria/backend/internal/domain/error"
	"github.com/gestao-consultoria/backend/internal/integration/entrypoint/dto"
)

func newInvoiceEngine(repo *fakeInvoices) *gin.Engine {
	gin.SetMode(gin.TestMode)

	ctrl := NewInvoiceController(
		invoice.NewListInvoicesUseCase(repo),
		invoice.NewCreateInvoiceUseCase(repo),
	)

	engine := gin.New()
	engine.GET("/invoices", ctrl.List)
	engine.POST("/invoices", ctrl.Create)
	return engine
}

const validInvoiceBody = `{
	"number": "NF-100",
	"client_name": "Acme Ltda",
	"issue_date": "2024-03-01",
	"due_date": "2024-03-31",
	"gross_value": 10000,
	"taxes": {"iss": 5, "irrf": 1.5, "pis": 0.65, "cofins": 3, "csll": 1},
	"total_installments": 3
}`

func postInvoice(engine *gin.Engine, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, "/invoices", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, req)
	return rec
}

func TestInvoiceController_Create(t *testing.T) {
	engine := newInvoiceEngine(&fakeInvoices{})

	rec := postInvoice(engine, validInvoiceBody)
	require.Equal(t, http.StatusCreated, rec.Code)

	var resp dto.InvoiceResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "NF-100", resp.Number)
	assert.Equal(t, "2024-03-31", resp.DueDate)
	assert.Equal(t, "10000.00", resp.GrossValue)
	assert.Equal(t, "8885.00", resp.NetValue)
	assert.Equal(t, "1115.00", resp.Taxes.Total)
	assert.Equal(t, 3, resp.TotalInstallments)
}

func TestInvoiceController_CreateErrors(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		repoErr    error
		wantStatus int
		wantCode   string
	}{
		{
			name:       "missing required fields",
			body:       `{"number": "NF-1"}`,
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeMissingInvoiceFields),
		},
		{
			name:       "bad date",
			body:       strings.Replace(validInvoiceBody, "2024-03-31", "31/03/2024", 1),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidInvoiceDate),
		},
		{
			name:       "non positive gross value",
			body:       strings.Replace(validInvoiceBody, `"gross_value": 10000`, `"gross_value": 0`, 1),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidGrossValue),
		},
		{
			name:       "rate above 100",
			body:       strings.Replace(validInvoiceBody, `"iss": 5`, `"iss": 101`, 1),
			wantStatus: http.StatusBadRequest,
			wantCode:   string(domainerror.ErrCodeInvalidTaxRate),
		},
		{
			name:       "storage failure",
			body:       validInvoiceBody,
			repoErr:    errors.New("connection reset"),
			wantStatus: http.StatusInternalServerError,
			wantCode:   string(domainerror.ErrCodeInvoiceStorageFailed),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			engine := newInvoiceEngine(&fakeInvoices{err: tt.repoErr})

			rec := postInvoice(engine, tt.body)
			assert.Equal(t, tt.wantStatus, rec.Code)

			var resp dto.ErrorResponse
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.NotEmpty(t, resp.Error)
		})
	}
}

func TestInvoiceController_CreateDuplicate(t *testing.T) {
	engine := newInvoiceEngine(&fakeInvoices{})

	require.Equal(t, http.StatusCreated, postInvoice(engine, validInvoiceBody).Code)

	rec := postInvoice(engine, validInvoiceBody)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Contains(t, rec.Body.String(), string(domainerror.ErrCodeInvoiceAlreadyExists))
}

func TestInvoiceController_List(t *testing.T) {
	engine := newInvoiceEngine(&fakeInvoices{})
	require.Equal(t, http.StatusCreated, postInvoice(engine, validInvoiceBody).Code)

	rec := httptest.NewRecorder()
	engine.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/invoices", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	var resp dto.InvoiceListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Invoices, 1)
	assert.Equal(t, "Acme Ltda", resp.Invoices[0].ClientName)
}
