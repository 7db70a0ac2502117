package security

import (
	"bytes"
	"path/filepath"
	"strings"
)

// FileValidationResult reports the outcome of document validation.
type FileValidationResult struct {
	Valid        bool
	Extension    string
	DetectedMIME string
	Error        string
}

// Uploads are CVs, verification documents and profile images, so the
// allow-list is images plus common document formats. Each entry carries
// the content signatures the file must start with.
var fileSignatures = map[string][][]byte{
	".jpg":  {{0xFF, 0xD8, 0xFF}},
	".jpeg": {{0xFF, 0xD8, 0xFF}},
	".png":  {{0x89, 0x50, 0x4E, 0x47, 0x0D, 0x0A, 0x1A, 0x0A}},
	".webp": {{0x52, 0x49, 0x46, 0x46}},
	".pdf":  {{0x25, 0x50, 0x44, 0x46}},
	".doc":  {{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}},
	".docx": {{0x50, 0x4B, 0x03, 0x04}},
}

// MIME types accepted after content sniffing. application/octet-stream is
// deliberately absent; an undetectable type is rejected rather than trusted.
var allowedMIMETypes = map[string]bool{
	"image/jpeg":         true,
	"image/png":          true,
	"image/webp":         true,
	"application/pdf":    true,
	"application/msword": true,
	"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
	// DOC/DOCX containers are often sniffed as their generic container type.
	"application/zip": true,
}

// ValidateFile checks an upload in three layers: the extension must be on
// the allow-list, the content must start with that extension's signature,
// and the sniffed MIME type must itself be allowed. detectedMIME is the
// result of content sniffing, not the client-supplied header.
func ValidateFile(filename string, data []byte, detectedMIME string) FileValidationResult {
	result := FileValidationResult{DetectedMIME: detectedMIME}

	ext := strings.ToLower(filepath.Ext(filename))
	result.Extension = ext
	if ext == "" {
		result.Error = "file has no extension"
		return result
	}

	signatures, allowed := fileSignatures[ext]
	if !allowed {
		result.Error = "file type not allowed: " + ext
		return result
	}

	if !matchesSignature(data, signatures) {
		result.Error = "file content does not match its extension"
		return result
	}

	if detectedMIME == "application/octet-stream" {
		// Office documents routinely sniff as octet-stream; the signature
		// check above already pinned their real format.
		if ext != ".doc" && ext != ".docx" {
			result.Error = "file type could not be determined"
			return result
		}
	} else if !allowedMIMETypes[detectedMIME] {
		result.Error = "MIME type not allowed: " + detectedMIME
		return result
	}

	result.Valid = true
	return result
}

func matchesSignature(data []byte, signatures [][]byte) bool {
	for _, sig := range signatures {
		if len(data) >= len(sig) && bytes.HasPrefix(data, sig) {
			return true
		}
	}
	return false
}
