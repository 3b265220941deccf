package server

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"docqa/internal/adapter/chunker"
	"docqa/internal/adapter/embedding"
	"docqa/internal/adapter/fs"
	"docqa/internal/domain"
	"docqa/internal/usecase"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	ch := chunker.NewPageChunker(500, 100, 2000)
	session := usecase.NewSession(ch, embedding.NewMockEmbedder(16), nil, nil, false)
	ingestor := usecase.NewIngestor(session, fs.NewWalker(nil, nil), nil)

	srv := httptest.NewServer(NewServer(session, ingestor, "", nil).Router())
	t.Cleanup(srv.Close)
	return srv
}

func uploadText(t *testing.T, srv *httptest.Server, name, content string) *http.Response {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	part, err := w.CreateFormFile("file", name)
	require.NoError(t, err)
	_, err = part.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, w.Close())

	resp, err := http.Post(srv.URL+"/api/v1/documents", w.FormDataContentType(), &body)
	require.NoError(t, err)
	return resp
}

func TestUploadAndAsk(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadText(t, srv, "resume.txt", "Name: Asha CGPA: 8.75 Semester: 6")
	defer resp.Body.Close()
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var uploaded struct {
		Chunks  int    `json:"chunks"`
		Summary string `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&uploaded))
	assert.Equal(t, 1, uploaded.Chunks)
	assert.Contains(t, uploaded.Summary, "CGPA: 8.75")

	askBody, _ := json.Marshal(map[string]interface{}{"question": "What is the CGPA?"})
	askResp, err := http.Post(srv.URL+"/api/v1/ask", "application/json", bytes.NewReader(askBody))
	require.NoError(t, err)
	defer askResp.Body.Close()
	require.Equal(t, http.StatusOK, askResp.StatusCode)

	var answered struct {
		Results []domain.QueryResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(askResp.Body).Decode(&answered))
	require.Len(t, answered.Results, 1)
	assert.Equal(t, "8.75", answered.Results[0].Answer)
	assert.Equal(t, domain.ContextDirect, answered.Results[0].Context)
	assert.Nil(t, answered.Results[0].Score)
}

func TestAskWithoutDocuments(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"question": "anything"})
	resp, err := http.Post(srv.URL+"/api/v1/ask", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var answered struct {
		Results []domain.QueryResult `json:"results"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&answered))
	assert.Empty(t, answered.Results)
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	srv := newTestServer(t)

	body, _ := json.Marshal(map[string]string{"question": ""})
	resp, err := http.Post(srv.URL+"/api/v1/ask", "application/json", bytes.NewReader(body))
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestUploadRejectsUnsupportedType(t *testing.T) {
	srv := newTestServer(t)

	resp := uploadText(t, srv, "archive.zip", "not really a zip")
	defer resp.Body.Close()
	assert.Equal(t, http.StatusUnprocessableEntity, resp.StatusCode)
}

func TestSummaryEndpoint(t *testing.T) {
	srv := newTestServer(t)
	uploadText(t, srv, "words.txt", "one two three four five six seven").Body.Close()

	resp, err := http.Get(srv.URL + "/api/v1/summary?words=5")
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var out struct {
		Summary string `json:"summary"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "one two three four five ...", out.Summary)
}

func TestResetEndpoint(t *testing.T) {
	srv := newTestServer(t)
	uploadText(t, srv, "doc.txt", "some document content here").Body.Close()

	req, _ := http.NewRequest(http.MethodDelete, srv.URL+"/api/v1/documents", nil)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)

	listResp, err := http.Get(srv.URL + "/api/v1/documents")
	require.NoError(t, err)
	defer listResp.Body.Close()

	var listed struct {
		Chunks int `json:"chunks"`
	}
	require.NoError(t, json.NewDecoder(listResp.Body).Decode(&listed))
	assert.Equal(t, 0, listed.Chunks)
}

func TestHealth(t *testing.T) {
	srv := newTestServer(t)

	resp, err := http.Get(srv.URL + "/health")
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
