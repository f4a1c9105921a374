package jerseyHandler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"

	"JerseyVision/internal/api/jersey"
	"JerseyVision/internal/middleware"
	"JerseyVision/pkg/utils"
)

type fakeJerseyService struct {
	response *jersey.PredictResponse
	err      error
	called   bool
}

func (s *fakeJerseyService) Predict(ctx context.Context, imageData []byte) (*jersey.PredictResponse, error) {
	s.called = true
	if s.err != nil {
		return nil, s.err
	}
	return s.response, nil
}

func newTestApp(service *fakeJerseyService) *fiber.App {
	logger := logrus.New()
	logger.SetOutput(io.Discard)

	app := fiber.New()
	mw := middleware.New(logger)
	app.Use(mw.NewRequestIDMiddleware())

	h := New(logger, validator.New(), mw, service, utils.New())
	h.Start(app)

	return app
}

func pngUpload(t *testing.T, fieldName, fileName string) (*bytes.Buffer, string) {
	t.Helper()

	var img bytes.Buffer
	if err := png.Encode(&img, image.NewRGBA(image.Rect(0, 0, 64, 64))); err != nil {
		t.Fatalf("encode png: %v", err)
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile(fieldName, fileName)
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write(img.Bytes()); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	return body, writer.FormDataContentType()
}

func TestPredictHandlerSuccess(t *testing.T) {
	service := &fakeJerseyService{
		response: &jersey.PredictResponse{
			Results:          []jersey.NumberResult{{Number: "10", Accuracy: 99}},
			Count:            1,
			ProcessingTimeMS: 12.34,
		},
	}
	app := newTestApp(service)

	body, contentType := pngUpload(t, "image", "jersey.png")
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}
	if !service.called {
		t.Fatal("service was not invoked")
	}

	var got jersey.PredictResponse
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got.Count != 1 || len(got.Results) != 1 || got.Results[0].Number != "10" {
		t.Errorf("unexpected response payload: %+v", got)
	}
}

func TestPredictHandlerMissingField(t *testing.T) {
	service := &fakeJerseyService{}
	app := newTestApp(service)

	body, contentType := pngUpload(t, "photo", "jersey.png")
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if service.called {
		t.Error("service must not run for requests without the image field")
	}

	var got map[string]string
	if err := json.NewDecoder(resp.Body).Decode(&got); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if got["error"] == "" || got["detail"] == "" {
		t.Errorf("error payload missing error/detail: %v", got)
	}
}

func TestPredictHandlerUnsupportedExtension(t *testing.T) {
	service := &fakeJerseyService{}
	app := newTestApp(service)

	body, contentType := pngUpload(t, "image", "jersey.gif")
	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", contentType)

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if service.called {
		t.Error("service must not run for unsupported formats")
	}
}

func TestPredictHandlerUndecodableImage(t *testing.T) {
	service := &fakeJerseyService{}
	app := newTestApp(service)

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("image", "broken.png")
	if err != nil {
		t.Fatalf("create form file: %v", err)
	}
	if _, err := part.Write([]byte("corrupted bytes")); err != nil {
		t.Fatalf("write form file: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, "/predict", body)
	req.Header.Set("Content-Type", writer.FormDataContentType())

	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status = %d, want 400", resp.StatusCode)
	}
	if service.called {
		t.Error("service must not run for undecodable payloads")
	}
}
