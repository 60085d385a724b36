package gateway

import (
	"net/http"
	"net/http/httptest"

	"github.com/gin-gonic/gin"
)

// LocalURL is the gateway address served by LocalClient
const LocalURL = "http://gateway.local" + Route

// localTransport serves requests from an in-process engine
type localTransport struct {
	engine *gin.Engine
}

func (t localTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	rec := httptest.NewRecorder()
	t.engine.ServeHTTP(rec, req)
	resp := rec.Result()
	resp.Request = req
	return resp, nil
}

// LocalClient returns an HTTP client that answers LocalURL requests with an
// in-process gateway, for commands that run without a server
func LocalClient(g *Gateway) *http.Client {
	engine := gin.New()
	g.Register(engine)
	return &http.Client{Transport: localTransport{engine: engine}}
}
