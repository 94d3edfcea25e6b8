package response

import (
	"Sabzee/internal/api/dto"
	"Sabzee/internal/service"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func record(fn func(c *gin.Context)) (*httptest.ResponseRecorder, dto.Response) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)

	fn(c)

	var body dto.Response
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestSuccess(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Success(c, gin.H{"hello": "world"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, Ok, body.Code)
	assert.Equal(t, "success", body.Message)
}

func TestErrorMapsSentinels(t *testing.T) {
	tests := []struct {
		err      error
		wantCode int
	}{
		{service.ErrPostNotFound, 404},
		{service.ErrNotOwner, 401},
		{service.ErrFarmerOnly, 403},
		{service.ErrAlreadyLiked, 400},
		{service.ErrOutOfStock, 400},
	}

	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			w, body := record(func(c *gin.Context) {
				Error(c, tt.err)
			})
			assert.Equal(t, tt.wantCode, w.Code)
			assert.Equal(t, tt.wantCode, body.Code)
			assert.Equal(t, tt.err.Error(), body.Message)
		})
	}
}

func TestErrorHidesUnclassifiedErrors(t *testing.T) {
	w, body := record(func(c *gin.Context) {
		Error(c, assert.AnError)
	})

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Equal(t, service.UnExpectedError.Error(), body.Message)
}

func TestErrorFormatsValidationFailures(t *testing.T) {
	type loginForm struct {
		Email    string `validate:"required,email"`
		Password string `validate:"required"`
	}
	err := validator.New().Struct(loginForm{Email: "nope"})
	require.Error(t, err)

	w, body := record(func(c *gin.Context) {
		Error(c, err)
	})

	assert.Equal(t, http.StatusBadRequest, w.Code)
	// Every offending field is reported, not just the first.
	assert.Contains(t, body.Message, "Email must be a valid email address")
	assert.Contains(t, body.Message, "Password is required")
}
