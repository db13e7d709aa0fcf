package web

import (
	"bytes"
	"encoding/binary"
	"encoding/json"
	"fmt"
	"hash/crc32"
	"image"
	"image/color"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/agriscan/internal/catalog"
	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/scan"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	return newTestServerWith(t, Options{MaxUploadBytes: 1 << 20})
}

func newTestServerWith(t *testing.T, opts Options) *Server {
	t.Helper()
	scores := []float64{1, 6, 3, 0, 0, 0, 0, 0, 0, 0}
	engine := diagnosis.NewEngine(catalog.Default(), &diagnosis.FixtureScorer{Scores: scores})
	return New(scan.NewService(engine, nil), opts)
}

// client replays the session cookie across requests.
type client struct {
	t      *testing.T
	srv    *Server
	cookie *http.Cookie
}

func (c *client) do(req *http.Request) *http.Response {
	c.t.Helper()
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	resp, err := c.srv.App().Test(req, -1)
	require.NoError(c.t, err)
	for _, ck := range resp.Cookies() {
		if ck.Name == SessionCookie {
			c.cookie = ck
		}
	}
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	defer resp.Body.Close()
	var v T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&v))
	return v
}

func pngBody(t *testing.T) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 12, 8))
	for y := 0; y < 8; y++ {
		for x := 0; x < 12; x++ {
			img.Set(x, y, color.RGBA{G: 150, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func multipartRequest(t *testing.T, target, filename string, data []byte) *http.Request {
	t.Helper()
	return multipartRequestWith(t, target, nil, filename, data)
}

func multipartRequestWith(t *testing.T, target string, fields map[string]string, filename string, data []byte) *http.Request {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if filename != "" {
		part, err := w.CreateFormFile("image", filename)
		require.NoError(t, err)
		_, err = part.Write(data)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &body)
	req.Header.Set("Content-Type", w.FormDataContentType())
	return req
}

func TestHealthz(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	resp := c.do(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	body := decode[map[string]string](t, resp)
	assert.Equal(t, "ok", body["status"])
	assert.Equal(t, "fixture", body["scorer"])
}

func TestLabels(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	labels := decode[[]labelView](t, c.do(httptest.NewRequest(http.MethodGet, "/api/labels", nil)))
	require.Len(t, labels, 10)
	assert.Equal(t, "Tomato Bacterial Spot", labels[0].Label)
	assert.Equal(t, "Healthy Tomato", labels[9].Label)
	assert.Equal(t, "healthy", labels[9].Category)
}

func TestPresets(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	presets := decode[[]presetView](t, c.do(httptest.NewRequest(http.MethodGet, "/api/presets", nil)))
	require.Len(t, presets, 3)
	assert.Equal(t, "Early Blight", presets[0].Name)
	assert.InDelta(t, 0.92, presets[0].Result.Predictions[0].Confidence, 1e-9)
}

func TestApplyPreset(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}

	resp := c.do(httptest.NewRequest(http.MethodPost, "/api/presets/late%20blight", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	v := decode[sessionView](t, resp)

	require.NotNil(t, v.Result)
	assert.Equal(t, catalog.Label("Tomato Late Blight"), v.Result.Predictions[0].Label)
	assert.Equal(t, "Apply chlorothalonil (0.05%) immediately", v.Treatments[0])
	require.NotNil(t, v.Chart)
	assert.Equal(t, "Late Blight", v.Chart.Bars[0].Label)
	assert.Len(t, v.PreventionTips, 4)
}

func TestUnknownPresetKeepsSession(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	c.do(httptest.NewRequest(http.MethodPost, "/api/presets/Healthy", nil))

	resp := c.do(httptest.NewRequest(http.MethodPost, "/api/presets/Rust", nil))
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Contains(t, decode[errorView](t, resp).Error, "Rust")

	v := decode[sessionView](t, c.do(httptest.NewRequest(http.MethodGet, "/api/session", nil)))
	require.NotNil(t, v.Result)
	assert.Equal(t, catalog.Label("Healthy Tomato"), v.Result.Predictions[0].Label)
}

func TestScanUpload(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	resp := c.do(multipartRequest(t, "/api/scan", "leaf.png", pngBody(t)))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	v := decode[sessionView](t, resp)
	assert.Equal(t, scan.MethodUpload, v.Method)
	assert.Equal(t, "Ready to scan", v.Status)
	require.NotNil(t, v.Result)
	require.Len(t, v.Result.Predictions, 3)
	assert.Equal(t, catalog.Label("Tomato Early Blight"), v.Result.Predictions[0].Label)
	assert.InDelta(t, 0.6, v.Result.Predictions[0].Confidence, 1e-9)
	require.NotNil(t, v.Image)
	assert.Equal(t, "image/png", v.Image.MIME)
	assert.Equal(t, "upload", v.Image.Source)
	assert.Equal(t, 12, v.Image.Width)
}

func TestScanCameraCapture(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	req := multipartRequestWith(t, "/api/scan", map[string]string{"method": "camera"}, "frame.png", pngBody(t))
	resp := c.do(req)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	v := decode[sessionView](t, resp)
	assert.Equal(t, scan.MethodCamera, v.Method)
	require.NotNil(t, v.Image)
	assert.Equal(t, "camera", v.Image.Source)
}

func TestScanRejectsHugeDimensions(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	data := pngBody(t)
	binary.BigEndian.PutUint32(data[16:20], 60000)
	binary.BigEndian.PutUint32(data[20:24], 60000)
	binary.BigEndian.PutUint32(data[29:33], crc32.ChecksumIEEE(data[12:29]))

	resp := c.do(multipartRequest(t, "/api/scan", "bomb.png", data))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestScanWithoutImage(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	resp := c.do(multipartRequest(t, "/api/scan", "", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)

	v := decode[sessionView](t, resp)
	assert.Equal(t, scan.MethodCamera, v.Method)
	assert.NotNil(t, v.Result)
	assert.Nil(t, v.Image)
}

func TestScanRejectsText(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	c.do(httptest.NewRequest(http.MethodPost, "/api/presets/Healthy", nil))

	resp := c.do(multipartRequest(t, "/api/scan", "notes.txt", []byte("not an image at all")))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Contains(t, decode[errorView](t, resp).Error, "Unsupported image format")

	v := decode[sessionView](t, c.do(httptest.NewRequest(http.MethodGet, "/api/session", nil)))
	require.NotNil(t, v.Result, "failed scan must keep the prior result")
	assert.Equal(t, catalog.Label("Healthy Tomato"), v.Result.Predictions[0].Label)
	assert.NotEmpty(t, v.Error)
}

func TestNewScan(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	c.do(httptest.NewRequest(http.MethodPost, "/api/presets/Healthy", nil))

	v := decode[sessionView](t, c.do(httptest.NewRequest(http.MethodDelete, "/api/session", nil)))
	assert.Nil(t, v.Result)
	assert.Equal(t, "Ready to scan", v.Status)
}

func TestSessionsAreIsolated(t *testing.T) {
	srv := newTestServer(t)
	a := &client{t: t, srv: srv}
	b := &client{t: t, srv: srv}

	a.do(httptest.NewRequest(http.MethodPost, "/api/presets/Healthy", nil))
	v := decode[sessionView](t, b.do(httptest.NewRequest(http.MethodGet, "/api/session", nil)))
	assert.Nil(t, v.Result)
	assert.NotEqual(t, a.cookie.Value, b.cookie.Value)
	assert.Equal(t, 2, srv.Store().Len())
}

func TestForgedCookieGetsFreshSession(t *testing.T) {
	srv := newTestServer(t)
	owner := &client{t: t, srv: srv}
	owner.do(httptest.NewRequest(http.MethodPost, "/api/presets/Healthy", nil))

	for _, forged := range []string{"mine", strings.Repeat("a", 64), "00000000-0000-0000-0000-000000000000"} {
		c := &client{t: t, srv: srv, cookie: &http.Cookie{Name: SessionCookie, Value: forged}}
		v := decode[sessionView](t, c.do(httptest.NewRequest(http.MethodGet, "/api/session", nil)))
		assert.NotEqual(t, forged, c.cookie.Value)
		assert.NotEqual(t, forged, v.ID)
		assert.Nil(t, v.Result)
	}
	assert.Equal(t, 4, srv.Store().Len())

	// The issued cookie keeps working.
	v := decode[sessionView](t, owner.do(httptest.NewRequest(http.MethodGet, "/api/session", nil)))
	assert.NotNil(t, v.Result)
}

func TestSessionCountIsCapped(t *testing.T) {
	srv := newTestServerWith(t, Options{MaxUploadBytes: 1 << 20, MaxSessions: 5})
	for i := 0; i < 50; i++ {
		req := httptest.NewRequest(http.MethodGet, "/api/session", nil)
		req.AddCookie(&http.Cookie{Name: SessionCookie, Value: fmt.Sprintf("forged-%d", i)})
		resp, err := srv.App().Test(req, -1)
		require.NoError(t, err)
		resp.Body.Close()

		resp, err = srv.App().Test(httptest.NewRequest(http.MethodGet, "/api/labels", nil), -1)
		require.NoError(t, err)
		resp.Body.Close()
	}
	assert.LessOrEqual(t, srv.Store().Len(), 5)
}

func TestIndexPage(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	resp := c.do(httptest.NewRequest(http.MethodGet, "/", nil))
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Contains(t, string(body), "AgriScan")
	assert.Contains(t, string(body), "Ready to scan")
	assert.Contains(t, string(body), `<option value="Early Blight">`)
}

func TestClassifyFragment(t *testing.T) {
	c := &client{t: t, srv: newTestServer(t)}
	req := httptest.NewRequest(http.MethodPost, "/classify", strings.NewReader("preset=Early+Blight"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("HX-Request", "true")

	resp := c.do(req)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	html := string(body)
	assert.Contains(t, html, "Tomato Early Blight")
	assert.Contains(t, html, "Confidence: 92.0%")
	assert.Contains(t, html, "Remove infected leaves immediately")
	assert.NotContains(t, html, "<!DOCTYPE html>")
}
