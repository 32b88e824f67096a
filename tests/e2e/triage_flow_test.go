//go:build e2e

package e2e_test

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestE2E_Triage_InboundToClassified walks the main product flow: a webhook
// delivery arrives, shows up pending, gets classified, and is reflected in
// the dashboard and the CSV export.
func TestE2E_Triage_InboundToClassified(t *testing.T) {
	ts := setupTestServer(t)
	token := registerAndLogin(t, ts)

	marker := fmt.Sprintf("e2e-flow-%d", time.Now().UnixNano())

	// 1. Inbound delivery through the webhook.
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/webhook/inbound", strings.NewReader(fmt.Sprintf(`{
		"from": "citizen@example.com",
		"to": ["%s", "ouvidoria@example.com"],
		"subject": "Reclamação %s",
		"html": "<p>Poste apagado na pra&ccedil;a &lt;central&gt;</p>",
		"date": "2024-05-01T10:00:00Z"
	}`, systemAddress, marker)))
	require.NoError(t, err)
	req.Header.Set("X-Webhook-Secret", webhookSecret)
	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	// 2. The record is listed as pending.
	status, records := ts.doJSONList(t, http.MethodGet, "/api/emails?search="+marker, token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, records, 1)
	rec := records[0]
	id, _ := rec["id"].(string)
	require.NotEmpty(t, id)
	assert.Equal(t, false, rec["classificado"])
	assert.Equal(t, "ouvidoria@example.com", rec["destinatario"], "system address must not survive consolidation")
	assert.Nil(t, rec["estado"])

	// 3. Classify it in a batch together with an unknown ID.
	status, body := ts.doJSON(t, http.MethodPost, "/api/emails/classify", map[string]any{
		"items": []map[string]any{
			{"id": id, "estado": "PI", "municipio": "Teresina"},
			{"id": "00000000-0000-0000-0000-000000000001", "estado": "PI", "municipio": "Teresina"},
		},
	}, token)
	require.Equal(t, http.StatusOK, status, "classify: %v", body)
	assert.Equal(t, float64(1), body["updated"])
	failed, _ := body["failed"].([]any)
	require.Len(t, failed, 1)

	// 4. The record is now classified and stamped with the collaborator.
	status, body = ts.doJSON(t, http.MethodGet, "/api/emails/"+id, nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, true, body["classificado"])
	assert.Equal(t, "PI", body["estado"])
	assert.Equal(t, "Teresina", body["municipio"])
	assert.NotEmpty(t, body["colaborador_id"])

	// 5. Dashboard state ranking sees the classification.
	status, states := ts.doJSONList(t, http.MethodGet, "/api/dashboard/by-state", token)
	require.Equal(t, http.StatusOK, status)
	found := false
	for _, s := range states {
		if s["estado"] == "PI" {
			found = true
		}
	}
	assert.True(t, found, "expected PI in by-state ranking")

	// 6. CSV export carries the record with standard quoting.
	exportReq, err := http.NewRequest(http.MethodGet, ts.URL+"/api/emails/export?search="+marker, nil)
	require.NoError(t, err)
	exportReq.Header.Set("Authorization", "Bearer "+token)
	exportResp, err := ts.Client.Do(exportReq)
	require.NoError(t, err)
	defer exportResp.Body.Close()
	require.Equal(t, http.StatusOK, exportResp.StatusCode)
	assert.Contains(t, exportResp.Header.Get("Content-Type"), "text/csv")

	rows, err := csv.NewReader(exportResp.Body).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 2, "header plus one record")
	assert.Equal(t, []string{"Remetente", "Destinatário", "Data", "Estado", "Município"}, rows[0])
	assert.Equal(t, "citizen@example.com", rows[1][0])
	assert.Equal(t, "01/05/2024", rows[1][2])
	assert.Equal(t, "PI", rows[1][3])
}

func TestE2E_Triage_ManualEntryAndStats(t *testing.T) {
	ts := setupTestServer(t)
	token := registerAndLogin(t, ts)

	marker := fmt.Sprintf("e2e-manual-%d", time.Now().UnixNano())

	status, stats := ts.doJSON(t, http.MethodGet, "/api/dashboard/stats", nil, token)
	require.Equal(t, http.StatusOK, status)
	before := stats["classificados"].(float64)

	status, body := ts.doJSON(t, http.MethodPost, "/api/emails", map[string]any{
		"remetente":    "citizen@example.com",
		"destinatario": "ouvidoria@example.com",
		"assunto":      "Ofício " + marker,
		"data_envio":   "2024-05-02T09:00:00",
		"estado":       "SP",
		"municipio":    "Campinas",
	}, token)
	require.Equal(t, http.StatusCreated, status, "create: %v", body)
	assert.Equal(t, true, body["classificado"], "manual entries are classified on arrival")
	assert.NotEmpty(t, body["colaborador_id"])

	status, stats = ts.doJSON(t, http.MethodGet, "/api/dashboard/stats", nil, token)
	require.Equal(t, http.StatusOK, status)
	assert.GreaterOrEqual(t, stats["classificados"].(float64), before+1)
}

func TestE2E_Triage_UpdateCanClearLocation(t *testing.T) {
	ts := setupTestServer(t)
	token := registerAndLogin(t, ts)

	marker := fmt.Sprintf("e2e-clear-%d", time.Now().UnixNano())

	status, body := ts.doJSON(t, http.MethodPost, "/api/emails", map[string]any{
		"remetente":    "citizen@example.com",
		"destinatario": "ouvidoria@example.com",
		"assunto":      "Denúncia " + marker,
		"data_envio":   "2024-05-03T14:00:00Z",
		"estado":       "PI",
		"municipio":    "Teresina",
	}, token)
	require.Equal(t, http.StatusCreated, status)
	id, _ := body["id"].(string)

	// Clearing the municipio demotes the record back to pending.
	status, body = ts.doJSON(t, http.MethodPatch, "/api/emails/"+id, map[string]any{
		"municipio": nil,
	}, token)
	require.Equal(t, http.StatusOK, status, "patch: %v", body)
	assert.Equal(t, false, body["classificado"])
	assert.Equal(t, "PI", body["estado"])
	assert.Nil(t, body["municipio"])
}

func TestE2E_Webhook_RejectionsStoreNothing(t *testing.T) {
	ts := setupTestServer(t)
	token := registerAndLogin(t, ts)

	marker := fmt.Sprintf("e2e-reject-%d", time.Now().UnixNano())

	// Missing subject: rejected whole.
	req, err := http.NewRequest(http.MethodPost, ts.URL+"/webhook/inbound", strings.NewReader(fmt.Sprintf(`{
		"from": "citizen+%s@example.com",
		"to": ["ouvidoria@example.com"],
		"date": "2024-05-01T10:00:00Z"
	}`, marker)))
	require.NoError(t, err)
	req.Header.Set("X-Webhook-Secret", webhookSecret)
	resp, err := ts.Client.Do(req)
	require.NoError(t, err)
	raw, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	require.Equal(t, http.StatusBadRequest, resp.StatusCode, string(raw))

	status, records := ts.doJSONList(t, http.MethodGet, "/api/emails?search="+marker, token)
	require.Equal(t, http.StatusOK, status)
	assert.Empty(t, records, "a rejected delivery must not be stored")
}

func TestE2E_Locations_ServedAndCached(t *testing.T) {
	ts := setupTestServer(t)
	token := registerAndLogin(t, ts)

	status, states := ts.doJSONList(t, http.MethodGet, "/api/estados", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, states, 2)
	assert.Equal(t, "PI", states[0]["sigla"])

	status, municipios := ts.doJSONList(t, http.MethodGet, "/api/estados/PI/municipios", token)
	require.Equal(t, http.StatusOK, status)
	require.Len(t, municipios, 2)
	assert.Equal(t, "Teresina", municipios[0]["nome"])
}
