package api

import (
	"bytes"
	"errors"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rpupo63/research-lab-backend/services"
)

func multipartRequest(t *testing.T, field, filename, contentType, content string) *http.Request {
	t.Helper()

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	if field != "" {
		header := make(textproto.MIMEHeader)
		header.Set("Content-Disposition", `form-data; name="`+field+`"; filename="`+filename+`"`)
		header.Set("Content-Type", contentType)
		part, err := writer.CreatePart(header)
		require.NoError(t, err)
		_, err = part.Write([]byte(content))
		require.NoError(t, err)
	} else {
		require.NoError(t, writer.WriteField("caption", "no file here"))
	}
	require.NoError(t, writer.Close())

	req := httptest.NewRequest(http.MethodPost, "/upload", &body)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	return req
}

func TestUploadFile(t *testing.T) {
	uploader := &fakeUploader{}
	api := newTestAPI(t, nil, uploader)

	rec := httptest.NewRecorder()
	api.router.ServeHTTP(rec, multipartRequest(t, "file", "retreat.jpg", "image/jpeg", "jpeg-bytes"))
	requireStatus(t, rec, http.StatusCreated)

	object := decode[services.StoredObject](t, rec)
	assert.Equal(t, "lab-website/0f8fad5b-retreat.jpg", object.Key)
	assert.Equal(t, "https://lab-assets.s3.us-east-1.amazonaws.com/lab-website/0f8fad5b-retreat.jpg", object.URL)
	assert.Equal(t, "retreat.jpg", object.Filename)
	assert.Equal(t, int64(len("jpeg-bytes")), object.Size)

	assert.Equal(t, "retreat.jpg", uploader.filename)
	assert.Equal(t, "image/jpeg", uploader.contentType)
	assert.Equal(t, "jpeg-bytes", uploader.body)
}

func TestUploadFailures(t *testing.T) {
	t.Run("no file field", func(t *testing.T) {
		api := newTestAPI(t, nil, &fakeUploader{})

		rec := httptest.NewRecorder()
		api.router.ServeHTTP(rec, multipartRequest(t, "", "", "", ""))
		requireStatus(t, rec, http.StatusBadRequest)
		assert.Equal(t, "file", decode[ErrorResponse](t, rec).Field)
	})

	t.Run("not multipart", func(t *testing.T) {
		api := newTestAPI(t, nil, &fakeUploader{})

		rec := api.do(t, http.MethodPost, "/upload", `{"file":"x"}`)
		requireStatus(t, rec, http.StatusBadRequest)
		assert.Equal(t, "file", decode[ErrorResponse](t, rec).Field)
	})

	t.Run("storage rejects", func(t *testing.T) {
		api := newTestAPI(t, nil, &fakeUploader{err: errors.New("AccessDenied: bucket policy")})

		rec := httptest.NewRecorder()
		api.router.ServeHTTP(rec, multipartRequest(t, "file", "a.png", "image/png", "png"))
		requireStatus(t, rec, http.StatusBadGateway)
		assert.JSONEq(t, `{"error":"upload failed","status":"error"}`, rec.Body.String())
	})

	t.Run("storage not configured", func(t *testing.T) {
		api := newTestAPI(t, nil, nil)

		rec := httptest.NewRecorder()
		api.router.ServeHTTP(rec, multipartRequest(t, "file", "a.png", "image/png", "png"))
		requireStatus(t, rec, http.StatusServiceUnavailable)
		assert.Equal(t, "upload service not configured", decode[ErrorResponse](t, rec).Error)
	})
}
