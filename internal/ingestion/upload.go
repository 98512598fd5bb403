package ingestion

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/jonathan/intelliresume/internal/types"
)

// AllowedUploadExtensions lists the file types accepted as resume uploads.
var AllowedUploadExtensions = []string{".txt", ".md"}

// maxControlRatio is the share of control characters above which content is
// treated as binary.
const maxControlRatio = 0.30

var binaryMagic = [][]byte{
	[]byte("%PDF"),
	[]byte("PK\x03\x04"),
}

// UploadError reports an upload that was rejected before its text was used.
type UploadError struct {
	FileName string
	Reason   string
}

func (e *UploadError) Error() string {
	return fmt.Sprintf("upload %q rejected: %s", e.FileName, e.Reason)
}

// Upload is the cleaned text of an accepted resume upload.
type Upload struct {
	FileName string `json:"file_name"`
	Text     string `json:"text"`
	Hash     string `json:"hash"`
}

// ReadUpload validates an uploaded resume and returns its cleaned text.
// size is the declared size; a negative value means unknown, in which case
// the limit is enforced while reading.
func ReadUpload(name string, size int64, r io.Reader) (*Upload, error) {
	base := filepath.Base(name)
	if !allowedExtension(base) {
		return nil, &UploadError{
			FileName: base,
			Reason:   fmt.Sprintf("unsupported file type; allowed: %s", strings.Join(AllowedUploadExtensions, ", ")),
		}
	}
	if size > types.MaxUploadedResumeBytes {
		return nil, &UploadError{FileName: base, Reason: tooLarge()}
	}

	data, err := io.ReadAll(io.LimitReader(r, types.MaxUploadedResumeBytes+1))
	if err != nil {
		return nil, fmt.Errorf("failed to read upload %q: %w", base, err)
	}
	if int64(len(data)) > types.MaxUploadedResumeBytes {
		return nil, &UploadError{FileName: base, Reason: tooLarge()}
	}
	if looksBinary(data) {
		return nil, &UploadError{FileName: base, Reason: "file content is not plain text"}
	}

	text := CleanText(strings.ToValidUTF8(string(data), ""))
	if text == "" {
		return nil, &UploadError{FileName: base, Reason: "file is empty"}
	}

	sum := sha256.Sum256([]byte(text))
	return &Upload{
		FileName: base,
		Text:     text,
		Hash:     hex.EncodeToString(sum[:]),
	}, nil
}

func allowedExtension(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range AllowedUploadExtensions {
		if ext == allowed {
			return true
		}
	}
	return false
}

func tooLarge() string {
	return fmt.Sprintf("file exceeds %d MB", types.MaxUploadedResumeBytes/(1<<20))
}

func looksBinary(data []byte) bool {
	for _, magic := range binaryMagic {
		if bytes.HasPrefix(data, magic) {
			return true
		}
	}
	if len(data) == 0 {
		return false
	}
	var control, total int
	for _, r := range string(data) {
		total++
		if r == utf8.RuneError || (r < 0x20 && r != '\n' && r != '\r' && r != '\t') {
			control++
		}
	}
	return float64(control)/float64(total) > maxControlRatio
}
