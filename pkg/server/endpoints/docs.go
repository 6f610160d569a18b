package endpoints

import (
	"bytes"
	_ "embed"
	"net/http"
	"sync"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"

	"github.com/cerbhq/cerberus/pkg/server"
)

//go:embed API.md
var apiReference []byte

var (
	docsOnce sync.Once
	docsHTML []byte
	docsErr  error
)

// renderDocs converts the embedded API reference to HTML once per process.
func renderDocs() ([]byte, error) {
	docsOnce.Do(func() {
		md := goldmark.New(goldmark.WithExtensions(extension.Table))
		var buf bytes.Buffer
		buf.WriteString(`<!DOCTYPE html>
<html>
  <head>
    <meta charset="utf-8">
    <meta name="viewport" content="width=device-width">
    <title>Cerberus API</title>
  </head>
  <body>
`)
		if docsErr = md.Convert(apiReference, &buf); docsErr != nil {
			return
		}
		buf.WriteString("\n  </body>\n</html>\n")
		docsHTML = buf.Bytes()
	})
	return docsHTML, docsErr
}

// RegisterDocsEndpoints registers the rendered API reference (no auth required)
func RegisterDocsEndpoints(s *server.Server) {
	s.Router.HandleFunc("/docs", handleDocs()).Methods("GET")
}

func handleDocs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		html, err := renderDocs()
		if err != nil {
			respondWithError(w, http.StatusInternalServerError, "Failed to render documentation")
			return
		}

		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		_, _ = w.Write(html)
	}
}
