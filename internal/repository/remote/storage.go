package remote

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"go-jobboard-gateway/config"
	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"
)

// storageRepository uploads documents to the platform's object storage.
// Uploads get a longer timeout than API calls since document files can be
// a few megabytes.
type storageRepository struct {
	baseURL string
	apiKey  string
	bucket  string
	httpc   *http.Client
}

func NewStorageRepository(cfg *config.Config) domain.DocumentStore {
	return &storageRepository{
		baseURL: cfg.PlatformAPIURL,
		apiKey:  cfg.PlatformAPIKey,
		bucket:  cfg.StorageBucket,
		httpc:   &http.Client{Timeout: 30 * time.Second},
	}
}

func (r *storageRepository) Upload(ctx context.Context, accessToken, filename, contentType string, data []byte) (*domain.DocumentRef, error) {
	uploadURL := fmt.Sprintf("%s/storage/v1/object/%s/%s", r.baseURL, r.bucket, filename)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, uploadURL, bytes.NewReader(data))
	if err != nil {
		return nil, apperror.Internal(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Content-Type", contentType)
	if r.apiKey != "" {
		req.Header.Set("apikey", r.apiKey)
	}
	req.Header.Set("x-upsert", "true") // Overwrite if exists

	resp, err := r.httpc.Do(req)
	if err != nil {
		return nil, apperror.Upstream("Storage service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		respBody, _ := io.ReadAll(resp.Body)
		return nil, statusError(resp.StatusCode, storageMessage(respBody))
	}

	var uploaded struct {
		ID  string `json:"Id"`
		Key string `json:"Key"`
	}
	_ = json.NewDecoder(resp.Body).Decode(&uploaded)

	return &domain.DocumentRef{
		ID:   uploaded.ID,
		Name: filename,
		URL:  fmt.Sprintf("%s/storage/v1/object/public/%s/%s", r.baseURL, r.bucket, filename),
	}, nil
}

// Delete removes a previously uploaded file given its public URL. A missing
// file is not an error; replacement flows delete best-effort.
func (r *storageRepository) Delete(ctx context.Context, accessToken, fileURL string) error {
	const publicPrefix = "/storage/v1/object/public/"
	idx := strings.Index(fileURL, publicPrefix)
	if idx < 0 {
		return apperror.BadRequest("Not a storage URL")
	}
	objectPath := fileURL[idx+len(publicPrefix):]

	deleteURL := fmt.Sprintf("%s/storage/v1/object/%s", r.baseURL, objectPath)
	req, err := http.NewRequestWithContext(ctx, http.MethodDelete, deleteURL, nil)
	if err != nil {
		return apperror.Internal(err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	if r.apiKey != "" {
		req.Header.Set("apikey", r.apiKey)
	}

	resp, err := r.httpc.Do(req)
	if err != nil {
		return apperror.Upstream("Storage service unreachable", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 && resp.StatusCode != http.StatusNotFound {
		respBody, _ := io.ReadAll(resp.Body)
		return statusError(resp.StatusCode, storageMessage(respBody))
	}
	return nil
}

func storageMessage(body []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   string `json:"error"`
	}
	if err := json.Unmarshal(body, &parsed); err == nil {
		if parsed.Message != "" {
			return parsed.Message
		}
		if parsed.Error != "" {
			return parsed.Error
		}
	}
	if len(body) > 0 && len(body) < 200 {
		return string(body)
	}
	return "Storage request failed"
}
