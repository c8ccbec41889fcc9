package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/vegfinder/backend/internal/catalog"
	"github.com/pageza/vegfinder/backend/internal/metrics"
	"github.com/pageza/vegfinder/backend/internal/mocks"
	"github.com/pageza/vegfinder/backend/internal/model"
	"github.com/pageza/vegfinder/backend/internal/service"
	"github.com/pageza/vegfinder/backend/internal/testhelpers"
	"github.com/pageza/vegfinder/backend/internal/view"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func setupRecipeTestRouter(t *testing.T, svc service.IRecipeService) *gin.Engine {
	t.Helper()
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	router := gin.New()
	RegisterRoutes(router, Handlers{
		Recipe: NewRecipeHandler(svc, nil),
		Health: NewHealthHandler(svc.CatalogSize, nil),
		UI:     NewUIHandler(svc, renderer, view.DefaultPageSize, nil),
	})
	return router
}

func sampleService() *service.RecipeService {
	return service.NewRecipeService(catalog.New(testhelpers.SampleRecipes()), nil)
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func decodeRecipes(t *testing.T, w *httptest.ResponseRecorder) []model.RecipeResponse {
	t.Helper()
	var resp SearchResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp.Recipes
}

func TestSearchRecipes(t *testing.T) {
	router := setupRecipeTestRouter(t, sampleService())

	for _, path := range []string{"/predict", "/api/v1/recipes/search"} {
		t.Run(path, func(t *testing.T) {
			w := postJSON(router, path, `{"ingredients": "Potato, tomato"}`)
			assert.Equal(t, http.StatusOK, w.Code)

			recipes := decodeRecipes(t, w)
			require.Len(t, recipes, 1)
			assert.Equal(t, "Aloo Tamatar Sabzi", recipes[0].Name)
			assert.NotEmpty(t, recipes[0].Instructions)
			assert.NotEmpty(t, recipes[0].Image)
		})
	}
}

func TestSearchRecipesResponseShape(t *testing.T) {
	router := setupRecipeTestRouter(t, sampleService())

	w := postJSON(router, "/predict", `{"ingredients": "eggplant"}`)
	require.Equal(t, http.StatusOK, w.Code)

	var raw map[string][]map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &raw))
	require.Len(t, raw["recipes"], 1)
	for _, key := range []string{"recipe_name", "ingredients", "instructions", "image"} {
		assert.Contains(t, raw["recipes"][0], key)
	}
	// missing image is an empty string, not null
	assert.Equal(t, "", raw["recipes"][0]["image"])
}

func TestSearchRecipesNoMatches(t *testing.T) {
	router := setupRecipeTestRouter(t, sampleService())

	w := postJSON(router, "/predict", `{"ingredients": "saffron"}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"recipes": []}`, w.Body.String())
}

func TestSearchRecipesClientErrors(t *testing.T) {
	router := setupRecipeTestRouter(t, sampleService())

	tests := []struct {
		name string
		body string
		want string
	}{
		{"empty", `{"ingredients": ""}`, "no ingredients supplied"},
		{"whitespace", `{"ingredients": "   "}`, "no ingredients supplied"},
		{"missing field", `{}`, "no ingredients supplied"},
		{"non-veg", `{"ingredients": "chicken, rice"}`, "non-vegetarian request"},
		{"non-veg case", `{"ingredients": "Rice, EGG"}`, "non-vegetarian request"},
		{"malformed", `{"ingredients":`, "invalid request body"},
		{"wrong type", `{"ingredients": 42}`, "invalid request body"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := postJSON(router, "/predict", tt.body)
			assert.Equal(t, http.StatusBadRequest, w.Code)

			var resp map[string]string
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.want, resp["error"])
			assert.NotContains(t, resp, "recipes")
		})
	}
}

func TestSearchRecipesServiceFailure(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	svc.On("FindByIngredients", mock.Anything, "potato").Return(nil, errors.New("boom"))
	router := setupRecipeTestRouter(t, svc)
	before := testutil.ToFloat64(metrics.SearchRequests.WithLabelValues(metrics.OutcomeError))

	w := postJSON(router, "/predict", `{"ingredients": "potato"}`)
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "failed to search recipes"}`, w.Body.String())
	assert.Equal(t, before+1, testutil.ToFloat64(metrics.SearchRequests.WithLabelValues(metrics.OutcomeError)))

	w = getPage(router, "/recipes?ingredients=potato")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), msgSearchFailed)
	assert.Equal(t, before+2, testutil.ToFloat64(metrics.SearchRequests.WithLabelValues(metrics.OutcomeError)))
	svc.AssertExpectations(t)
}

func TestSearchRecipesWrappedSentinel(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	svc.On("FindByIngredients", mock.Anything, "fish").
		Return(nil, errors.Join(service.ErrNonVegetarian, errors.New("fish")))
	router := setupRecipeTestRouter(t, svc)

	w := postJSON(router, "/predict", `{"ingredients": "fish"}`)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSearchRecipesRunsLimiter(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	limited := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}

	router := gin.New()
	h := NewRecipeHandler(svc, limited)
	h.RegisterLegacyRoutes(router)

	w := postJSON(router, "/predict", `{"ingredients": "potato"}`)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	svc.AssertNotCalled(t, "FindByIngredients", mock.Anything, mock.Anything)
}

func TestUIResultsRunsLimiter(t *testing.T) {
	svc := new(mocks.MockRecipeService)
	limited := func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{"error": "rate limit exceeded"})
	}
	renderer, err := view.NewRenderer()
	require.NoError(t, err)

	router := gin.New()
	NewUIHandler(svc, renderer, view.DefaultPageSize, limited).RegisterRoutes(router)

	w := getPage(router, "/recipes?ingredients=potato")
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	svc.AssertNotCalled(t, "FindByIngredients", mock.Anything, mock.Anything)

	// the search form itself is never limited
	w = getPage(router, "/")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestHealthCheck(t *testing.T) {
	router := setupRecipeTestRouter(t, sampleService())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status": "ok", "recipes": 4}`, w.Body.String())
}

func TestHealthCheckDegraded(t *testing.T) {
	router := gin.New()
	NewHealthHandler(func() int { return 10 }, map[string]Pinger{
		"redis":    func(context.Context) error { return errors.New("down") },
		"database": func(context.Context) error { return nil },
	}).RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{
		"status": "degraded",
		"recipes": 10,
		"dependencies": {"redis": "unavailable", "database": "ok"}
	}`, w.Body.String())
}

func TestHealthCheckReportsBreakerState(t *testing.T) {
	state, healthy := "closed", true
	router := gin.New()
	NewHealthHandler(func() int { return 4 }, nil).
		ReportState("cache_breaker", func() (string, bool) { return state, healthy }).
		RegisterRoutes(router)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.JSONEq(t, `{"status":"ok","recipes":4,"dependencies":{"cache_breaker":"closed"}}`, w.Body.String())

	state, healthy = "open", false
	w = httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"status":"degraded","recipes":4,"dependencies":{"cache_breaker":"open"}}`, w.Body.String())
}

func getPage(router *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
	return w
}

func TestUIPages(t *testing.T) {
	router := setupRecipeTestRouter(t, sampleService())

	t.Run("index", func(t *testing.T) {
		w := getPage(router, "/")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "text/html"))
		assert.Contains(t, w.Body.String(), "<form")
	})

	t.Run("results", func(t *testing.T) {
		w := getPage(router, "/recipes?ingredients=potato")
		assert.Equal(t, http.StatusOK, w.Code)
		body := w.Body.String()
		assert.Contains(t, body, "Aloo Tamatar Sabzi")
		assert.Contains(t, body, "Masala Dosa")
		assert.NotContains(t, body, "Chicken Biryani")
	})

	t.Run("empty result", func(t *testing.T) {
		w := getPage(router, "/recipes?ingredients=saffron")
		assert.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "No vegetarian recipes found.")
	})

	t.Run("non-veg", func(t *testing.T) {
		w := getPage(router, "/recipes?ingredients=chicken")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Only vegetarian items are allowed!")
	})

	t.Run("blank", func(t *testing.T) {
		w := getPage(router, "/recipes?ingredients=+")
		assert.Equal(t, http.StatusBadRequest, w.Code)
		assert.Contains(t, w.Body.String(), "Please enter at least one ingredient!")
	})
}

func TestUIShowMore(t *testing.T) {
	many := make([]model.Recipe, 8)
	for i := range many {
		many[i] = model.Recipe{Name: "Dish", Ingredients: "rice", Instructions: "Cook.", Veg: true}
	}
	svc := new(mocks.MockRecipeService)
	svc.On("FindByIngredients", mock.Anything, "rice").Return(many, nil)
	svc.On("CatalogSize").Return(8).Maybe()
	router := setupRecipeTestRouter(t, svc)

	w := getPage(router, "/recipes?ingredients=rice")
	assert.Equal(t, view.DefaultPageSize, strings.Count(w.Body.String(), "<details>"))
	assert.Contains(t, w.Body.String(), "Show More Recipes")

	w = getPage(router, "/recipes?ingredients=rice&all=1")
	assert.Equal(t, 8, strings.Count(w.Body.String(), "<details>"))
	assert.NotContains(t, w.Body.String(), "Show More Recipes")
}
