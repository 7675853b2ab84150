package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/flx/storefront/internal/interfaces/http/dto"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type checkoutLine struct {
	ProductName string `json:"product_name" binding:"required,max=20"`
	Quantity    int    `json:"quantity" binding:"required,min=1"`
}

type checkoutBody struct {
	CustomerEmail string         `json:"customer_email" binding:"required,email"`
	Items         []checkoutLine `json:"items" binding:"required,min=1,dive"`
	Status        string         `json:"status" binding:"omitempty,oneof=PAID SHIPPED"`
}

func validationRouter() *gin.Engine {
	SetupValidator()

	router := gin.New()
	router.Use(RequestID())
	router.POST("/orders", func(c *gin.Context) {
		var req checkoutBody
		if err := c.ShouldBindJSON(&req); err != nil {
			HandleValidationError(c, err)
			return
		}
		c.JSON(http.StatusOK, dto.NewSuccessResponse(req))
	})
	return router
}

func postJSON(t *testing.T, router http.Handler, body string) (*httptest.ResponseRecorder, dto.Response) {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/orders", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	var resp dto.Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestHandleValidationError(t *testing.T) {
	router := validationRouter()

	t.Run("field details use json paths", func(t *testing.T) {
		w, resp := postJSON(t, router, `{"customer_email":"not-an-email","items":[{"product_name":"Mug","quantity":0}],"status":"LOST"}`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeValidation, resp.Error.Code)
		assert.NotEmpty(t, resp.Error.RequestID)

		got := map[string]string{}
		for _, d := range resp.Error.Details {
			got[d.Field] = d.Message
		}
		assert.Equal(t, map[string]string{
			"customer_email":    "Invalid email format",
			"items[0].quantity": "This field is required",
			"status":            "Must be one of: PAID SHIPPED",
		}, got)
	})

	t.Run("empty items", func(t *testing.T) {
		_, resp := postJSON(t, router, `{"customer_email":"ada@example.com","items":[]}`)

		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "items", resp.Error.Details[0].Field)
		assert.Equal(t, "Must contain at least 1 item(s)", resp.Error.Details[0].Message)
	})

	t.Run("string length", func(t *testing.T) {
		_, resp := postJSON(t, router, `{"customer_email":"ada@example.com","items":[{"product_name":"`+strings.Repeat("m", 21)+`","quantity":1}]}`)

		require.NotNil(t, resp.Error)
		require.Len(t, resp.Error.Details, 1)
		assert.Equal(t, "items[0].product_name", resp.Error.Details[0].Field)
		assert.Equal(t, "Must be at most 20 characters", resp.Error.Details[0].Message)
	})

	t.Run("malformed json", func(t *testing.T) {
		w, resp := postJSON(t, router, `{"customer_email":`)

		assert.Equal(t, http.StatusBadRequest, w.Code)
		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	})

	t.Run("wrong json type", func(t *testing.T) {
		_, resp := postJSON(t, router, `{"customer_email":"ada@example.com","items":[{"product_name":"Mug","quantity":"two"}]}`)

		require.NotNil(t, resp.Error)
		assert.Equal(t, dto.ErrCodeInvalidJSON, resp.Error.Code)
	})

	t.Run("valid body", func(t *testing.T) {
		w, resp := postJSON(t, router, `{"customer_email":"ada@example.com","items":[{"product_name":"Mug","quantity":2}],"status":"PAID"}`)

		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, resp.Success)
	})
}
