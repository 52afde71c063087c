package backup

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"regexp"
	"strings"

	"github.com/gabriel-vasile/mimetype"
)

const fallbackExt = ".jpg"

var unsafeNameRe = regexp.MustCompile(`[^a-zA-Z0-9]`)

var errNotExportable = errors.New("payload is not a data uri or file reference")

// exportable reports whether an image/icon value is something the exporter can write.
func exportable(payload string) bool {
	return strings.HasPrefix(payload, "data:") || strings.HasPrefix(payload, "file://")
}

// readPayload returns the raw bytes behind a data uri or a file:// reference.
func readPayload(payload string) ([]byte, error) {
	switch {
	case strings.HasPrefix(payload, "data:"):
		return decodeDataURI(payload)
	case strings.HasPrefix(payload, "file://"):
		u, err := url.Parse(payload)
		if err != nil {
			return nil, fmt.Errorf("parse file reference: %w", err)
		}
		f, err := os.Open(u.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return io.ReadAll(f)
	default:
		return nil, errNotExportable
	}
}

func decodeDataURI(payload string) ([]byte, error) {
	header, data, ok := strings.Cut(strings.TrimPrefix(payload, "data:"), ",")
	if !ok {
		return nil, errors.New("data uri has no payload")
	}
	if strings.HasSuffix(header, ";base64") {
		decoded, err := base64.StdEncoding.DecodeString(data)
		if err != nil {
			return nil, fmt.Errorf("decode base64 payload: %w", err)
		}
		return decoded, nil
	}
	unescaped, err := url.PathUnescape(data)
	if err != nil {
		return nil, fmt.Errorf("decode data uri: %w", err)
	}
	return []byte(unescaped), nil
}

// extensionFor picks a file extension from the image bytes. Anything that is
// not recognised as an image is written as .jpg.
func extensionFor(data []byte) string {
	mt := mimetype.Detect(data)
	if !strings.HasPrefix(mt.String(), "image/") || mt.Extension() == "" {
		return fallbackExt
	}
	return mt.Extension()
}

func sanitize(name string) string {
	return unsafeNameRe.ReplaceAllString(name, "_")
}

func itemFileName(id, name string, data []byte) string {
	return "jewellery_" + id + "_" + sanitize(name) + extensionFor(data)
}

func categoryFileName(name string, data []byte) string {
	return "category_" + sanitize(name) + extensionFor(data)
}
