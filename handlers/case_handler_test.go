package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/tzathaw95-arch/Myanlex/models"
	"github.com/tzathaw95-arch/Myanlex/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRouter(t *testing.T) (*gin.Engine, *store.CaseStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cases := store.NewCaseStore(nil)
	cases.Init(context.Background())

	h := NewCaseHandler(cases, nil)

	r := gin.New()
	r.GET("/api/cases", h.SearchCases)
	r.GET("/api/cases/categories", h.GetCategories)
	r.GET("/api/cases/:id", h.GetCase)
	r.POST("/api/cases", h.CreateCase)
	r.PUT("/api/cases/:id", h.UpdateCase)
	r.DELETE("/api/cases/:id", h.DeleteCase)
	return r, cases
}

func doJSON(t *testing.T, r *gin.Engine, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestSearchCasesReturnsSeedSet(t *testing.T) {
	r, cases := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/cases", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Success bool               `json:"success"`
		Data    []models.LegalCase `json:"data"`
		Count   int                `json:"count"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	assert.Equal(t, cases.Count(), resp.Count)
	assert.Len(t, resp.Data, cases.Count())
}

func TestSearchCasesFacetFilters(t *testing.T) {
	r, cases := newTestRouter(t)
	cases.Save(&models.LegalCase{
		ID:       "c-labor",
		CaseName: "Severance pay dispute",
		Court:    "High Court of Yangon Region",
		Date:     "2022-03-01",
		CaseType: "Labor",
		Status:   models.StatusGoodLaw,
	})

	w := doJSON(t, r, http.MethodGet, "/api/cases?type=Labor&year=2022", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []models.LegalCase `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Data, 1)
	assert.Equal(t, "c-labor", resp.Data[0].ID)
}

func TestGetCaseNotFound(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/cases/does-not-exist", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCreateCaseAppliesManualEntryDefaults(t *testing.T) {
	r, cases := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/cases", map[string]interface{}{
		"caseName": "Hand-entered precedent",
		"status":   "NOT_A_STATUS",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	var resp struct {
		Data models.LegalCase `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))

	assert.NotEmpty(t, resp.Data.ID)
	assert.Equal(t, models.ManualEntrySource, resp.Data.SourcePDFName)
	assert.Equal(t, models.StatusGoodLaw, resp.Data.Status)
	assert.True(t, resp.Data.ExtractedSuccessfully)
	assert.NotNil(t, resp.Data.Judges)

	stored := cases.GetByID(resp.Data.ID)
	require.NotNil(t, stored)
	assert.Equal(t, "Hand-entered precedent", stored.CaseName)
}

func TestCreateCaseRequiresName(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodPost, "/api/cases", map[string]interface{}{
		"summary": "no name given",
	})
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUpdateCasePreservesStatusWhenInvalid(t *testing.T) {
	r, cases := newTestRouter(t)
	cases.Save(&models.LegalCase{ID: "c-1", CaseName: "Original", Status: models.StatusCaution})

	w := doJSON(t, r, http.MethodPut, "/api/cases/c-1", map[string]interface{}{
		"caseName": "Edited",
	})
	require.Equal(t, http.StatusOK, w.Code)

	stored := cases.GetByID("c-1")
	require.NotNil(t, stored)
	assert.Equal(t, "Edited", stored.CaseName)
	assert.Equal(t, models.StatusCaution, stored.Status)
}

func TestDeleteCase(t *testing.T) {
	r, cases := newTestRouter(t)
	cases.Save(&models.LegalCase{ID: "c-1", CaseName: "Doomed", Status: models.StatusGoodLaw})

	w := doJSON(t, r, http.MethodDelete, "/api/cases/c-1", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Nil(t, cases.GetByID("c-1"))
}

func TestGetCategories(t *testing.T) {
	r, _ := newTestRouter(t)

	w := doJSON(t, r, http.MethodGet, "/api/cases/categories", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Data []string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp.Data, "Criminal")
}
