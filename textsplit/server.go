package textsplit

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strconv"

	"github.com/Alfex4936/textsplit/internal/log"
	"github.com/Alfex4936/textsplit/internal/model"
	"github.com/Alfex4936/textsplit/internal/util"
)

// DefaultMaxBody is the default byte ceiling for one request's text.
const DefaultMaxBody = 8 << 20

// Server exposes Split over HTTP. Every request gets its own Buffer, so a
// Server may serve requests concurrently.
type Server struct {
	cfg     Config
	maxBody int
	log     log.Logger
}

// NewServer returns a Server splitting with cfg. Request texts longer than
// maxBody bytes are refused with 413; maxBody <= 0 selects DefaultMaxBody.
func NewServer(cfg Config, maxBody int, l log.Logger) *Server {
	if maxBody <= 0 {
		maxBody = DefaultMaxBody
	}
	if l == nil {
		l = log.DefaultLogger()
	}
	return &Server{cfg: cfg.Normalize(), maxBody: maxBody, log: l.Named("server")}
}

// Handler routes the API.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/v1/split", s.SplitHandler)
	mux.HandleFunc("/health", HealthHandler)
	mux.HandleFunc("/openapi.json", OpenAPIHandler)
	mux.HandleFunc("/", DocsHandler)
	return mux
}

// SplitHandler handles POST /v1/split.
//
// A JSON body is a model.SplitRequest. Any other content type is split as
// raw bytes, with the separator in the "sep" query parameter (escapes such
// as \n are decoded) and an optional "limit".
func (s *Server) SplitHandler(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
		return
	}
	defer r.Body.Close()

	bytesPolicy := s.cfg.Bytes
	if bytesPolicy.MaxCapacity == 0 || bytesPolicy.MaxCapacity > s.maxBody {
		bytesPolicy.MaxCapacity = s.maxBody
	}
	buf := NewBuffer(bytesPolicy)

	var (
		sep   []byte
		limit int
	)
	ct, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if ct == "application/json" {
		var req model.SplitRequest
		// the JSON envelope may carry escapes, so give it some headroom over maxBody
		dec := json.NewDecoder(io.LimitReader(r.Body, int64(s.maxBody)*2+4096))
		if err := dec.Decode(&req); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			return
		}
		if _, err := buf.WriteString(req.Text); err != nil {
			s.fail(w, err)
			return
		}
		sep, limit = []byte(req.Separator), req.Limit
	} else {
		q := r.URL.Query()
		var err error
		if sep, err = util.Unescape(q.Get("sep")); err != nil {
			http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
			return
		}
		if v := q.Get("limit"); v != "" {
			if limit, err = strconv.Atoi(v); err != nil {
				http.Error(w, fmt.Sprintf("Invalid request: limit: %v", err), http.StatusBadRequest)
				return
			}
		}
		if _, err := buf.ReadFrom(r.Body); err != nil {
			s.fail(w, err)
			return
		}
	}

	views, err := Split(buf, sep, s.cfg.Views)
	if err != nil {
		s.fail(w, err)
		return
	}
	res, err := NewResult(views, sep, limit)
	if err != nil {
		s.fail(w, err)
		return
	}
	s.log.Debugw("split", "bytes", res.ByteCount, "views", res.ViewCount)

	// JSON 응답 (HTML 이스케이프 비활성화)
	w.Header().Set("Content-Type", "application/json")
	if err := util.EncodeNoEscape(w, res, true); err != nil {
		s.log.Warnw("write response", "err", err)
	}
}

func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, ErrInvalidArgument):
		status = http.StatusBadRequest
	case errors.Is(err, ErrOutOfMemory):
		status = http.StatusRequestEntityTooLarge
	case errors.Is(err, ErrIO):
		status = http.StatusBadRequest
	}
	if status == http.StatusInternalServerError {
		s.log.Errorw("split failed", "err", err)
	}
	http.Error(w, fmt.Sprintf("Split failed: %v", err), status)
}

// HealthHandler handles GET /health requests
func HealthHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "ok",
		"service": "textsplit",
	})
}

// OpenAPIHandler serves the OpenAPI 3.0 spec at GET /openapi.json
func OpenAPIHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	fmt.Fprint(w, openAPISpec)
}

// DocsHandler serves the Redoc UI at GET /
func DocsHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	fmt.Fprint(w, redocHTML)
}

const openAPISpec = `{
  "openapi": "3.0.3",
  "info": {
    "title": "textsplit API",
    "description": "Split text on an exact separator",
    "version": "1.0.0"
  },
  "paths": {
    "/v1/split": {
      "post": {
        "summary": "Split",
        "description": "JSON bodies carry text and separator. Any other content type is split as raw bytes using the sep query parameter. Empty fields are kept; a trailing separator does not produce a trailing empty field.",
        "parameters": [
          { "name": "sep", "in": "query", "schema": { "type": "string" }, "description": "separator for raw bodies; escapes such as \\n are decoded" },
          { "name": "limit", "in": "query", "schema": { "type": "integer" }, "description": "maximum number of views returned for raw bodies (0 = all)" }
        ],
        "requestBody": {
          "required": true,
          "content": {
            "application/json": {
              "schema": { "$ref": "#/components/schemas/SplitRequest" },
              "examples": {
                "csv": { "value": { "text": "a,,b", "separator": "," } },
                "limit": { "value": { "text": "x|y|z", "separator": "|", "limit": 2 } }
              }
            },
            "text/plain": { "schema": { "type": "string" } }
          }
        },
        "responses": {
          "200": {
            "description": "split result",
            "content": {
              "application/json": {
                "schema": { "$ref": "#/components/schemas/Result" },
                "example": {
                  "separator": ",",
                  "byteCount": 4,
                  "viewCount": 3,
                  "views": [
                    { "idx": 0, "begin": 0, "end": 1, "text": "a" },
                    { "idx": 1, "begin": 2, "end": 2, "text": "" },
                    { "idx": 2, "begin": 3, "end": 4, "text": "b" }
                  ]
                }
              }
            }
          },
          "400": { "description": "invalid JSON, empty separator or bad escape" },
          "405": { "description": "method other than POST" },
          "413": { "description": "text larger than the server's byte ceiling" }
        }
      }
    },
    "/health": {
      "get": {
        "summary": "Health",
        "responses": {
          "200": {
            "description": "service is up",
            "content": {
              "application/json": {
                "example": { "status": "ok", "service": "textsplit" }
              }
            }
          }
        }
      }
    }
  },
  "components": {
    "schemas": {
      "SplitRequest": {
        "type": "object",
        "required": ["text", "separator"],
        "properties": {
          "text":      { "type": "string", "example": "a,,b" },
          "separator": { "type": "string", "minLength": 1, "example": "," },
          "limit":     { "type": "integer", "description": "maximum number of views returned (0 = all)" }
        }
      },
      "Result": {
        "type": "object",
        "properties": {
          "separator": { "type": "string" },
          "byteCount": { "type": "integer" },
          "viewCount": { "type": "integer", "description": "total number of fields, even when truncated" },
          "truncated": { "type": "boolean" },
          "views":     { "type": "array", "items": { "$ref": "#/components/schemas/Span" } }
        }
      },
      "Span": {
        "type": "object",
        "properties": {
          "idx":   { "type": "integer" },
          "begin": { "type": "integer", "description": "byte offset, inclusive" },
          "end":   { "type": "integer", "description": "byte offset, exclusive" },
          "text":  { "type": "string" }
        }
      }
    }
  }
}`

const redocHTML = `<!DOCTYPE html>
<html>
<head>
  <title>textsplit API Docs</title>
  <meta charset="utf-8"/>
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <style>body { margin: 0; padding: 0; }</style>
</head>
<body>
  <redoc spec-url="/openapi.json" expand-responses="200" hide-download-button></redoc>
  <script src="https://cdn.jsdelivr.net/npm/redoc@latest/bundles/redoc.standalone.js"></script>
</body>
</html>`
