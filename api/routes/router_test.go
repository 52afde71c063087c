package routes

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/angelmondragon/jewelcatalog/internal/backup"
	"github.com/angelmondragon/jewelcatalog/internal/bootstrap"
	"github.com/angelmondragon/jewelcatalog/internal/catalog"
	"github.com/angelmondragon/jewelcatalog/pkg/config"
	"github.com/angelmondragon/jewelcatalog/pkg/kv"
	"github.com/angelmondragon/jewelcatalog/pkg/logger"
	"github.com/angelmondragon/jewelcatalog/pkg/metrics"
)

type failingStore struct {
	kv.Store
}

func (failingStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

type stubRunner struct {
	report backup.Report
}

func (s stubRunner) Export(context.Context) (backup.Report, error) {
	return s.report, nil
}

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: config.AppEnvDev},
		Catalog: config.CatalogConfig{DefaultCategoryName: "Archive", CategorySort: config.CategorySortLocale},
	}
}

func newTestRouter(t *testing.T) (http.Handler, catalog.Service) {
	t.Helper()
	cfg := testConfig()
	reg := prometheus.NewRegistry()
	store := kv.NewInstrumented(kv.NewMemory(), config.StoreDriverMemory, metrics.NewStoreMetrics(reg))
	svc, err := bootstrap.NewCatalog(store, cfg.Catalog, logger.Nop())
	require.NoError(t, err)
	runner := stubRunner{report: backup.Report{Success: true, Errors: []string{}}}
	return NewRouter(cfg, logger.Nop(), store, config.StoreDriverMemory, svc, runner, reg), svc
}

func do(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp := httptest.NewRecorder()
	h.ServeHTTP(resp, req)
	return resp
}

type envelope struct {
	Data  json.RawMessage `json:"data"`
	Error struct {
		Code    string         `json:"code"`
		Message string         `json:"message"`
		Details map[string]any `json:"details"`
	} `json:"error"`
}

func decode(t *testing.T, resp *httptest.ResponseRecorder) envelope {
	t.Helper()
	var env envelope
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &env), resp.Body.String())
	return env
}

func TestHealthEndpoints(t *testing.T) {
	h, _ := newTestRouter(t)

	live := do(t, h, http.MethodGet, "/health/live", "")
	assert.Equal(t, http.StatusOK, live.Code)
	assert.Equal(t, config.AppEnvDev, live.Header().Get("X-JewelCatalog-Env"))
	assert.NotEmpty(t, live.Header().Get("X-Request-Id"))

	ready := do(t, h, http.MethodGet, "/health/ready", "")
	assert.Equal(t, http.StatusOK, ready.Code)
	assert.Contains(t, ready.Body.String(), `"store":"memory"`)
}

func TestHealthReadyReportsStoreOutage(t *testing.T) {
	cfg := testConfig()
	h := NewRouter(cfg, logger.Nop(), failingStore{Store: kv.NewMemory()}, "redis", nil, nil, prometheus.NewRegistry())

	resp := do(t, h, http.MethodGet, "/health/ready", "")
	if resp.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", resp.Code)
	}
	env := decode(t, resp)
	assert.Equal(t, "STORAGE_UNAVAILABLE", env.Error.Code)
	assert.NotContains(t, resp.Body.String(), "connection refused")
}

func TestJewelleryLifecycle(t *testing.T) {
	h, _ := newTestRouter(t)

	created := do(t, h, http.MethodPost, "/api/v1/jewellery",
		`{"image":"file:///photos/ring.jpg","name":"Gold Band","categories":["Rings"],"metal":"Gold"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())

	var item struct {
		ID         string   `json:"id"`
		ImgID      string   `json:"imgId"`
		Categories []string `json:"categories"`
		Weight     *string  `json:"weight"`
	}
	require.NoError(t, json.Unmarshal(decode(t, created).Data, &item))
	assert.Equal(t, "001", item.ImgID)
	assert.Equal(t, []string{"Rings", "Archive"}, item.Categories)
	assert.Nil(t, item.Weight)

	byImage := do(t, h, http.MethodGet, "/api/v1/jewellery/by-image/001", "")
	assert.Equal(t, http.StatusOK, byImage.Code)
	assert.Contains(t, byImage.Body.String(), item.ID)

	patched := do(t, h, http.MethodPatch, "/api/v1/jewellery/"+item.ID, `{"name":"Rose Band","weight":"4g"}`)
	assert.Equal(t, http.StatusNoContent, patched.Code, patched.Body.String())

	filtered := do(t, h, http.MethodGet, "/api/v1/jewellery?category=rings", "")
	assert.Equal(t, http.StatusOK, filtered.Code)
	assert.Contains(t, filtered.Body.String(), "Rose Band")
	assert.Contains(t, filtered.Body.String(), `"weight":"4g"`)

	deleted := do(t, h, http.MethodDelete, "/api/v1/jewellery/"+item.ID, "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	missing := do(t, h, http.MethodGet, "/api/v1/jewellery/by-image/001", "")
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestJewelleryCreateRejectsBadBodies(t *testing.T) {
	h, _ := newTestRouter(t)

	unknown := do(t, h, http.MethodPost, "/api/v1/jewellery", `{"image":"x","name":"Ring","colour":"red"}`)
	assert.Equal(t, http.StatusBadRequest, unknown.Code)

	blank := do(t, h, http.MethodPost, "/api/v1/jewellery", `{"image":"x","name":"   "}`)
	require.Equal(t, http.StatusBadRequest, blank.Code)
	env := decode(t, blank)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Contains(t, env.Error.Details, "name")
}

func TestPatchUnknownJewelleryIsNotFound(t *testing.T) {
	h, _ := newTestRouter(t)

	resp := do(t, h, http.MethodPatch, "/api/v1/jewellery/nope", `{"name":"x"}`)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCategoryRoutes(t *testing.T) {
	h, _ := newTestRouter(t)

	created := do(t, h, http.MethodPost, "/api/v1/categories", `{"name":"Wedding Rings","icon":"file:///icons/w.png"}`)
	require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
	var category struct {
		ID string `json:"id"`
	}
	require.NoError(t, json.Unmarshal(decode(t, created).Data, &category))

	dup := do(t, h, http.MethodPost, "/api/v1/categories", `{"name":"wedding rings","icon":"file:///icons/x.png"}`)
	assert.Equal(t, http.StatusConflict, dup.Code)

	item := do(t, h, http.MethodPost, "/api/v1/jewellery", `{"image":"x","name":"Solitaire","categories":["Wedding Rings"]}`)
	require.Equal(t, http.StatusCreated, item.Code)

	all := do(t, h, http.MethodGet, "/api/v1/categories", "")
	assert.Equal(t, http.StatusOK, all.Code)
	assert.Contains(t, all.Body.String(), `"isDefault":true`)

	custom := do(t, h, http.MethodGet, "/api/v1/categories?custom=true", "")
	assert.NotContains(t, custom.Body.String(), `"isDefault":true`)

	counts := do(t, h, http.MethodGet, "/api/v1/categories?counts=true", "")
	assert.Contains(t, counts.Body.String(), `"itemCount":1`)

	badFlag := do(t, h, http.MethodGet, "/api/v1/categories?counts=maybe", "")
	assert.Equal(t, http.StatusBadRequest, badFlag.Code)

	byName := do(t, h, http.MethodGet, "/api/v1/categories/Wedding%20Rings/jewellery", "")
	assert.Equal(t, http.StatusOK, byName.Code)
	assert.Contains(t, byName.Body.String(), "Solitaire")

	renamed := do(t, h, http.MethodPatch, "/api/v1/categories/"+category.ID, `{"name":"Bridal"}`)
	assert.Equal(t, http.StatusNoContent, renamed.Code, renamed.Body.String())

	forbidden := do(t, h, http.MethodDelete, "/api/v1/categories/archive", "")
	assert.Equal(t, http.StatusForbidden, forbidden.Code)

	deleted := do(t, h, http.MethodDelete, "/api/v1/categories/"+category.ID, "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)
}

func TestCategoryJewelleryDecodesNameOnce(t *testing.T) {
	h, _ := newTestRouter(t)

	for _, name := range []string{"50% Off", "a%41", "Rings/Bands"} {
		created := do(t, h, http.MethodPost, "/api/v1/categories", `{"name":"`+name+`","icon":"file:///icons/x.png"}`)
		require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
		item := do(t, h, http.MethodPost, "/api/v1/jewellery", `{"image":"x","name":"Item `+name+`","categories":["`+name+`"]}`)
		require.Equal(t, http.StatusCreated, item.Code, item.Body.String())
	}

	tests := []struct {
		path string
		want string
	}{
		{path: "/api/v1/categories/50%25%20Off/jewellery", want: "Item 50% Off"},
		{path: "/api/v1/categories/a%2541/jewellery", want: "Item a%41"},
		{path: "/api/v1/categories/Rings%2FBands/jewellery", want: "Item Rings/Bands"},
	}
	for _, tt := range tests {
		resp := do(t, h, http.MethodGet, tt.path, "")
		require.Equal(t, http.StatusOK, resp.Code, "%s: %s", tt.path, resp.Body.String())

		var items []struct {
			Name string `json:"name"`
		}
		require.NoError(t, json.Unmarshal(decode(t, resp).Data, &items))
		require.Len(t, items, 1, tt.path)
		assert.Equal(t, tt.want, items[0].Name)
	}
}

func TestWishlistRoutes(t *testing.T) {
	h, svc := newTestRouter(t)

	item := do(t, h, http.MethodPost, "/api/v1/jewellery", `{"image":"x","name":"Pearl Drop","categories":["Earrings"]}`)
	require.Equal(t, http.StatusCreated, item.Code)
	items, err := svc.GetJewelleryItems(context.Background())
	require.NoError(t, err)
	require.Len(t, items, 1)

	built := do(t, h, http.MethodPost, "/api/v1/wishlists/build",
		`{"customerName":"Asha","itemIds":["`+items[0].ID+`"]}`)
	require.Equal(t, http.StatusCreated, built.Code, built.Body.String())
	assert.Contains(t, built.Body.String(), `"jewelleryIds":"001"`)
	assert.Contains(t, built.Body.String(), `"categories":["Earrings"]`)

	empty := do(t, h, http.MethodPost, "/api/v1/wishlists/build", `{"customerName":"Asha","itemIds":[]}`)
	assert.Equal(t, http.StatusBadRequest, empty.Code)

	manual := do(t, h, http.MethodPost, "/api/v1/wishlists", `{"customerName":"Ravi","categories":[],"jewelleryIds":"","images":[]}`)
	require.Equal(t, http.StatusCreated, manual.Code, manual.Body.String())

	list := do(t, h, http.MethodGet, "/api/v1/wishlists", "")
	assert.Equal(t, http.StatusOK, list.Code)
	var lists []struct {
		ID           string `json:"id"`
		CustomerName string `json:"customerName"`
	}
	require.NoError(t, json.Unmarshal(decode(t, list).Data, &lists))
	require.Len(t, lists, 2)
	assert.Equal(t, "Ravi", lists[0].CustomerName)

	deleted := do(t, h, http.MethodDelete, "/api/v1/wishlists/"+lists[0].ID, "")
	assert.Equal(t, http.StatusNoContent, deleted.Code)
}

func TestBackupAndMetrics(t *testing.T) {
	h, _ := newTestRouter(t)

	resp := do(t, h, http.MethodPost, "/api/v1/backup", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), `"success":true`)

	do(t, h, http.MethodGet, "/api/v1/jewellery", "")
	scrape := do(t, h, http.MethodGet, "/metrics", "")
	assert.Equal(t, http.StatusOK, scrape.Code)
	assert.Contains(t, scrape.Body.String(), "kv_operation_duration_seconds")
}
