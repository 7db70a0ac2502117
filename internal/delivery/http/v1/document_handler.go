package v1

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"io"
	"net/http"
	"strings"
	"time"

	_ "image/png"

	_ "golang.org/x/image/webp"

	"go-jobboard-gateway/config"
	"go-jobboard-gateway/internal/delivery/http/middleware"
	"go-jobboard-gateway/internal/delivery/http/response"
	"go-jobboard-gateway/internal/domain"
	"go-jobboard-gateway/pkg/apperror"
	"go-jobboard-gateway/pkg/logger"
	"go-jobboard-gateway/pkg/security"

	"github.com/gin-gonic/gin"
	"golang.org/x/image/draw"
)

const maxUploadBytes = 10 << 20 // 10 MB

type DocumentHandler struct {
	documents     domain.DocumentStore
	uploadLimiter *security.UploadLimiter
}

func NewDocumentHandler(protected *gin.RouterGroup, documents domain.DocumentStore, cfg *config.Config) {
	handler := &DocumentHandler{
		documents:     documents,
		uploadLimiter: security.NewUploadLimiter(10, 100),
	}

	group := protected.Group("/documents")
	group.Use(middleware.RateLimitMiddleware(middleware.UploadRateLimitConfig(cfg)))
	{
		group.POST("", handler.Upload)
	}
}

// Upload godoc
// @Summary      Upload a document
// @Description  Upload a CV or verification document. Images are downscaled and re-encoded as JPEG before storage.
// @Tags         documents
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "Document file"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      429  {object}  response.Response
// @Router       /documents [post]
func (h *DocumentHandler) Upload(c *gin.Context) {
	userID := c.GetString(string(domain.KeyUserID))
	accessToken := c.GetString(string(domain.KeyAccessToken))
	if accessToken == "" {
		c.Error(apperror.Unauthorized("User not authenticated"))
		return
	}

	allowed, retryAfter, err := h.uploadLimiter.AllowUpload(c.Request.Context(), c.ClientIP(), userID)
	if err == nil && !allowed {
		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.Error(apperror.TooManyRequests("Upload quota exceeded. Please try again later."))
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.Error(apperror.BadRequest("A file is required"))
		return
	}
	if file.Size > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 10 MB limit"))
		return
	}

	src, err := file.Open()
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	defer src.Close()

	fileBytes, err := io.ReadAll(io.LimitReader(src, maxUploadBytes+1))
	if err != nil {
		c.Error(apperror.Internal(err))
		return
	}
	if len(fileBytes) > maxUploadBytes {
		c.Error(apperror.BadRequest("File exceeds the 10 MB limit"))
		return
	}

	contentType := http.DetectContentType(fileBytes)
	if v := security.ValidateFile(file.Filename, fileBytes, contentType); !v.Valid {
		c.Error(apperror.BadRequest(v.Error))
		return
	}

	isImage := strings.HasPrefix(contentType, "image/")
	finalBytes := fileBytes
	var finalFilename string

	if isImage {
		compressed, compressErr := compressImage(fileBytes, 1200, 80)
		if compressErr != nil {
			logger.Log.Warn("Image compression failed, using original", "error", compressErr)
		} else {
			finalBytes = compressed
			contentType = "image/jpeg"
		}
		finalFilename = fmt.Sprintf("%d_%s.jpg", time.Now().UnixNano(), sanitizeFilename(file.Filename))
	} else {
		finalFilename = fmt.Sprintf("%d_%s.%s", time.Now().UnixNano(), sanitizeFilename(file.Filename), getExtension(file.Filename))
	}

	ref, err := h.documents.Upload(c.Request.Context(), accessToken, finalFilename, contentType, finalBytes)
	if err != nil {
		c.Error(err)
		return
	}

	// Best-effort cleanup of the file being replaced
	if oldURL := c.Query("old_url"); oldURL != "" {
		if delErr := h.documents.Delete(c.Request.Context(), accessToken, oldURL); delErr != nil {
			logger.Log.Warn("Failed to delete replaced document", "error", delErr)
		}
	}

	response.Success(c, http.StatusCreated, "File uploaded", ref)
}

// compressImage downscales to maxDimension on the long edge and re-encodes
// as JPEG. Aspect ratio is preserved.
func compressImage(data []byte, maxDimension, quality int) ([]byte, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	newWidth, newHeight := width, height
	if width > height {
		if width > maxDimension {
			newWidth = maxDimension
			newHeight = int(float64(height) * float64(maxDimension) / float64(width))
		}
	} else {
		if height > maxDimension {
			newHeight = maxDimension
			newWidth = int(float64(width) * float64(maxDimension) / float64(height))
		}
	}

	resized := image.NewRGBA(image.Rect(0, 0, newWidth, newHeight))
	draw.CatmullRom.Scale(resized, resized.Bounds(), img, bounds, draw.Over, nil)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, resized, &jpeg.Options{Quality: quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

func getExtension(filename string) string {
	parts := strings.Split(filename, ".")
	if len(parts) > 1 {
		return parts[len(parts)-1]
	}
	return ""
}

// sanitizeFilename strips everything but ASCII alphanumerics, underscores
// and dashes. Object storage rejects non-ASCII keys.
func sanitizeFilename(filename string) string {
	ext := getExtension(filename)
	baseName := strings.TrimSuffix(filename, "."+ext)
	baseName = strings.ReplaceAll(baseName, " ", "_")

	var result strings.Builder
	for _, r := range baseName {
		if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') || r == '_' || r == '-' {
			result.WriteRune(r)
		}
	}
	if result.Len() == 0 {
		return "file"
	}
	return result.String()
}
