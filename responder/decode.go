package responder

import (
	"net/http"
	"strings"

	"golang.org/x/text/encoding/unicode"

	"github.com/lambda-feedback/mirror/models"
)

// decodeBody decodes body as UTF-8 without ever failing. Undecodable
// bytes are dropped or replaced depending on decoding.
func decodeBody(body []byte, decoding models.Decoding) string {
	if decoding == models.DecodingReplace {
		if decoded, err := unicode.UTF8.NewDecoder().Bytes(body); err == nil {
			return string(decoded)
		}
	}

	return strings.ToValidUTF8(string(body), "")
}

// flattenHeaders converts header into a name to value mapping, joining
// repeated headers with ", ". The host is added as Host.
func flattenHeaders(header http.Header, host string) map[string]string {
	flat := make(map[string]string, len(header)+1)

	for name, values := range header {
		flat[name] = strings.Join(values, ", ")
	}

	if _, ok := flat["Host"]; !ok && host != "" {
		flat["Host"] = host
	}

	return flat
}
