package services

import (
	"net/url"
	"strings"
)

const defaultQRCodeSize = "150x150"

// QRCodeBuilder forms links to the external QR-image endpoint. It never
// fetches or renders the image.
type QRCodeBuilder struct {
	baseURL string
	size    string
}

func NewQRCodeBuilder(baseURL, size string) QRCodeBuilder {
	if size == "" {
		size = defaultQRCodeSize
	}
	return QRCodeBuilder{baseURL: baseURL, size: size}
}

// URL returns <base>?data=<url-encoded link>&size=<size>.
func (b QRCodeBuilder) URL(link string) string {
	sep := "?"
	if strings.Contains(b.baseURL, "?") {
		sep = "&"
	}
	return b.baseURL + sep + "data=" + url.QueryEscape(link) + "&size=" + url.QueryEscape(b.size)
}
