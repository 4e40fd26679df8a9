package registration

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strconv"
	"strings"

	qrcode "github.com/skip2/go-qrcode"

	"github.com/clubhubdev/clubhub-backend/config"
)

// QR payload format: REG:<id>|EVT:<id>|NAME:<name>|EMAIL:<email>
var regIDPattern = regexp.MustCompile(`REG:(\d+)`)

// BuildQRPayload encodes a registration into the scannable payload
func BuildQRPayload(regID, eventID uint, name, email string) string {
	return fmt.Sprintf("REG:%d|EVT:%d|NAME:%s|EMAIL:%s", regID, eventID, name, email)
}

// ExtractRegistrationID pulls the registration ID out of a scanned code.
// Structured payloads win; a bare numeric string is accepted as a manual
// fallback. Anything else is an invalid format.
func ExtractRegistrationID(code string) (uint, bool) {
	if m := regIDPattern.FindStringSubmatch(code); m != nil {
		id, err := strconv.ParseUint(m[1], 10, 32)
		if err != nil {
			return 0, false
		}
		return uint(id), true
	}

	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return 0, false
	}
	for _, r := range trimmed {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	id, err := strconv.ParseUint(trimmed, 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

var unsafeFilenameChars = regexp.MustCompile(`[^a-zA-Z0-9._-]`)

func sanitizeEmailForFilename(email string) string {
	return unsafeFilenameChars.ReplaceAllString(email, "_")
}

// qrFilePath returns where the PNG for a registration lives on disk
func qrFilePath(regID uint, email string) string {
	filename := fmt.Sprintf("registration_%d_%s.png", regID, sanitizeEmailForFilename(email))
	return filepath.Join(config.UploadPath, "qrcodes", filename)
}

// writeQRImage renders the payload as a PNG at the given path
func writeQRImage(payload, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return qrcode.WriteFile(payload, qrcode.Medium, 256, path)
}
