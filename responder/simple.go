package responder

import (
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/lambda-feedback/mirror/models"
)

const healthPath = "/health"

// simple answers /health with OK and any other path with a greeting
// carrying the current time. Every method is accepted.
func (r *EchoResponder) simple(req models.Request) Response {
	path, _, _ := strings.Cut(req.Path, "?")

	if path == healthPath {
		return newTextResponse(http.StatusOK, MessageHealthy)
	}

	return newTextResponse(http.StatusOK, fmt.Sprintf(GreetingFormat, r.now().Format(time.RFC3339)))
}
