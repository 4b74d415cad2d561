package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"travelcraft/internal/api/controllers"
	"travelcraft/internal/models/request_models"
	"travelcraft/internal/repositories"
	"travelcraft/internal/services"
	mem "travelcraft/pkg/memcache"
	"travelcraft/pkg/utils"
)

type fakeRenderer struct{ calls atomic.Int32 }

func (f *fakeRenderer) Render(region services.ItineraryRegion, opts services.ExportOptions) ([]byte, error) {
	f.calls.Add(1)
	return []byte("%PDF-" + strings.Join(region.Lines, "|")), nil
}

type testEnv struct {
	app      *httptest.Server
	client   *http.Client
	calls    *atomic.Int32
	lastReq  *atomic.Value
	renderer *fakeRenderer
}

func newTestEnv(t *testing.T, status int, body string) *testEnv {
	gin.SetMode(gin.TestMode)

	calls := &atomic.Int32{}
	lastReq := &atomic.Value{}
	planService := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		var req request_models.PlanRequest
		_ = json.NewDecoder(r.Body).Decode(&req)
		lastReq.Store(req)
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(planService.Close)

	logger := zap.NewNop()
	catalog := services.NewCatalogService()
	forms := services.NewFormService(repositories.NewMemorySessionRepository(mem.NewSessionEntries(), time.Hour), catalog)
	planner := services.NewPlannerService(forms, services.NewHTTPPlanClient(planService.URL, 0), logger)
	renderer := &fakeRenderer{}
	exporter := services.NewExportService(forms, renderer, services.DefaultExportOptions, logger)

	router := NewRouter(RouterConfig{SessionTTL: time.Hour},
		controllers.NewPlannerController(catalog, forms, planner, exporter, logger),
		controllers.NewTripAPIController(forms, planner, exporter, logger),
		controllers.NewCatalogController(catalog))

	app := httptest.NewServer(router)
	t.Cleanup(app.Close)

	jar, err := cookiejar.New(nil)
	require.NoError(t, err)

	return &testEnv{
		app:      app,
		client:   &http.Client{Jar: jar},
		calls:    calls,
		lastReq:  lastReq,
		renderer: renderer,
	}
}

func (e *testEnv) post(t *testing.T, path string, form url.Values) string {
	resp, err := e.client.PostForm(e.app.URL+path, form)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func (e *testEnv) api(t *testing.T, method, path, body string) (int, utils.APIResponse) {
	req, err := http.NewRequest(method, e.app.URL+path, strings.NewReader(body))
	require.NoError(t, err)
	req.Header.Set("Content-Type", "application/json")

	resp, err := e.client.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	var out utils.APIResponse
	if resp.StatusCode != http.StatusNoContent {
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	}
	return resp.StatusCode, out
}

func (e *testEnv) fillPage(t *testing.T) {
	e.post(t, "/form/country", url.Values{"country": {"イタリア"}})
	e.post(t, "/form/cities", url.Values{"city": {"ローマ"}, "included": {"true"}})
	e.post(t, "/form/cities", url.Values{"city": {"ミラノ"}, "included": {"true"}})
	e.post(t, "/form/schedule", url.Values{"arrival": {"2025-04-01T09:30"}, "departure": {"2025-04-03T18:00"}})
}

func TestPage_InitialRender(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"x"}`)

	resp, err := env.client.Get(env.app.URL + "/")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)
	page := string(body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, page, "TravelCraft")
	assert.Contains(t, page, "-- 選択してください --")
	assert.Contains(t, page, `<option value="フランス">`)
	assert.NotContains(t, page, "都市を選択")
	assert.NotContains(t, page, `id="itinerary"`)
	assert.Contains(t, page, `value="relax" class="active"`)
	assert.NotContains(t, page, "alert(")
}

func TestPage_MissingStyleBecomesNotice(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"x"}`)

	page := env.post(t, "/form/style", url.Values{})

	assert.Contains(t, page, "alert(")
	assert.Contains(t, page, "旅のスタイルを選択してください")
	assert.Contains(t, page, `value="relax" class="active"`)
}

func TestPage_CountryShowsCatalogCitiesInOrder(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"x"}`)

	page := env.post(t, "/form/country", url.Values{"country": {"スペイン"}})

	barcelona := strings.Index(page, "バルセロナ")
	madrid := strings.Index(page, "マドリード")
	seville := strings.Index(page, "セビリア")
	assert.True(t, barcelona > 0 && barcelona < madrid && madrid < seville)
	assert.NotContains(t, page, "ローマ")
}

func TestPage_ValidationNoticeWithoutNetworkCall(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"x"}`)

	env.post(t, "/form/country", url.Values{"country": {"イタリア"}})
	page := env.post(t, "/plan", nil)

	assert.Contains(t, page, "alert(")
	assert.Contains(t, page, "全ての項目を入力してください")
	assert.Equal(t, int32(0), env.calls.Load())

	// the notice is shown once
	page = env.post(t, "/form/style", url.Values{"style": {"tight"}})
	assert.NotContains(t, page, "alert(")
	assert.Contains(t, page, `value="tight" class="active"`)
}

func TestPage_GenerateRendersLines(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"Day 1: Rome\nDay 2: Milan"}`)
	env.fillPage(t)

	page := env.post(t, "/plan", nil)

	assert.Equal(t, int32(1), env.calls.Load())
	assert.Contains(t, page, `id="itinerary"`)
	assert.Equal(t, 2, strings.Count(page, "<li>"))
	first := strings.Index(page, "<li>Day 1: Rome</li>")
	second := strings.Index(page, "<li>Day 2: Milan</li>")
	assert.True(t, first > 0 && first < second)

	sent := env.lastReq.Load().(request_models.PlanRequest)
	assert.Equal(t, []string{"ローマ", "ミラノ"}, sent.Cities)
	assert.Equal(t, "relax", string(sent.Style))
}

func TestPage_ChangingCountryClearsCities(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"x"}`)
	env.fillPage(t)

	page := env.post(t, "/form/country", url.Values{"country": {"イタリア"}})
	assert.NotContains(t, page, " checked")

	page = env.post(t, "/plan", nil)
	assert.Contains(t, page, "全ての項目を入力してください")
	assert.Equal(t, int32(0), env.calls.Load())
}

func TestPage_ServiceFailureKeepsPage(t *testing.T) {
	env := newTestEnv(t, http.StatusInternalServerError, `{"plan":"nope"}`)
	env.fillPage(t)

	page := env.post(t, "/plan", nil)

	assert.Equal(t, int32(1), env.calls.Load())
	assert.Contains(t, page, "旅プランの生成に失敗しました")
	assert.NotContains(t, page, `id="itinerary"`)
}

func TestPage_UnknownInputsBecomeNotices(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"x"}`)

	page := env.post(t, "/form/country", url.Values{"country": {"ドイツ"}})
	assert.Contains(t, page, "alert(")

	env.post(t, "/form/country", url.Values{"country": {"フランス"}})
	page = env.post(t, "/form/cities", url.Values{"city": {"ローマ"}, "included": {"true"}})
	assert.Contains(t, page, "alert(")
	assert.NotContains(t, page, `value="ローマ"`)

	page = env.post(t, "/form/style", url.Values{"style": {"slow"}})
	assert.Contains(t, page, "alert(")
	assert.Contains(t, page, `value="relax" class="active"`)
}

func TestPage_ExportBeforePlanIsNoop(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"x"}`)

	resp, err := env.client.Get(env.app.URL + "/plan/export")
	require.NoError(t, err)
	resp.Body.Close()

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.Empty(t, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, int32(0), env.renderer.calls.Load())
}

func TestPage_ExportDownloadsPDF(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"Day 1: Rome\nDay 2: Milan"}`)
	env.fillPage(t)
	env.post(t, "/plan", nil)

	resp, err := env.client.Get(env.app.URL + "/plan/export")
	require.NoError(t, err)
	defer resp.Body.Close()
	body, _ := io.ReadAll(resp.Body)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Equal(t, `attachment; filename="travel_plan.pdf"`, resp.Header.Get("Content-Disposition"))
	assert.Equal(t, "%PDF-Day 1: Rome|Day 2: Milan", string(body))
}

func TestAPI_Catalog(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"x"}`)

	code, resp := env.api(t, http.MethodGet, "/api/catalog", "")
	assert.Equal(t, http.StatusOK, code)
	assert.Len(t, resp.Data, 3)

	code, resp = env.api(t, http.MethodGet, "/api/catalog/"+url.PathEscape("フランス"), "")
	assert.Equal(t, http.StatusOK, code)
	data := resp.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{"パリ", "リヨン", "ニース"}, data["cities"])

	code, _ = env.api(t, http.MethodGet, "/api/catalog/"+url.PathEscape("ドイツ"), "")
	assert.Equal(t, http.StatusNotFound, code)
}

func TestAPI_FullFlow(t *testing.T) {
	env := newTestEnv(t, http.StatusOK, `{"plan":"Day 1: Rome\nDay 2: Milan"}`)

	code, resp := env.api(t, http.MethodPost, "/api/plan", "")
	assert.Equal(t, http.StatusBadRequest, code)
	assert.Equal(t, "error", resp.Status)
	assert.NotEmpty(t, resp.TraceID)

	code, _ = env.api(t, http.MethodPut, "/api/form/country", `{"country":"イタリア"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = env.api(t, http.MethodPut, "/api/form/cities", `{"city":"フィレンツェ","included":true}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = env.api(t, http.MethodPut, "/api/form/schedule", `{"arrival":"2025-04-01T09:30","departure":"2025-04-03T18:00"}`)
	require.Equal(t, http.StatusOK, code)
	code, _ = env.api(t, http.MethodPut, "/api/form/style", `{"style":"tight"}`)
	require.Equal(t, http.StatusOK, code)

	code, _ = env.api(t, http.MethodPut, "/api/form/style", `{"style":"slow"}`)
	assert.Equal(t, http.StatusBadRequest, code)

	code, resp = env.api(t, http.MethodPost, "/api/plan", "")
	require.Equal(t, http.StatusOK, code)
	plan := resp.Data.(map[string]interface{})
	assert.Equal(t, []interface{}{"Day 1: Rome", "Day 2: Milan"}, plan["lines"])

	sent := env.lastReq.Load().(request_models.PlanRequest)
	assert.Equal(t, request_models.PlanRequest{
		Country:   "イタリア",
		Cities:    []string{"フィレンツェ"},
		Arrival:   "2025-04-01T09:30",
		Departure: "2025-04-03T18:00",
		Style:     "tight",
	}, sent)

	code, resp = env.api(t, http.MethodGet, "/api/form", "")
	require.Equal(t, http.StatusOK, code)
	state := resp.Data.(map[string]interface{})
	assert.Equal(t, "Day 1: Rome\nDay 2: Milan", state["plan"])
}

func TestAPI_PlanServiceFailure(t *testing.T) {
	env := newTestEnv(t, http.StatusServiceUnavailable, ``)

	env.api(t, http.MethodPut, "/api/form/country", `{"country":"フランス"}`)
	env.api(t, http.MethodPut, "/api/form/cities", `{"city":"ニース","included":true}`)
	env.api(t, http.MethodPut, "/api/form/schedule", `{"arrival":"a","departure":"b"}`)

	code, resp := env.api(t, http.MethodPost, "/api/plan", "")
	assert.Equal(t, http.StatusBadGateway, code)
	assert.Contains(t, resp.Message, "503")

	code, _ = env.api(t, http.MethodGet, "/api/plan/export", "")
	assert.Equal(t, http.StatusNoContent, code)
}
