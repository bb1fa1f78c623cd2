package api

import (
	"encoding/json"
	stderrors "errors"
	"net/http"

	"github.com/matzehuels/deptree/pkg/deptree"
	"github.com/matzehuels/deptree/pkg/errors"
	"github.com/matzehuels/deptree/pkg/manifest"
	"github.com/matzehuels/deptree/pkg/render"
)

// maxBodySize bounds request bodies to keep arbitrary-sized graphs out.
const maxBodySize = 4 << 20 // 4 MiB

// validateRequest is the JSON body for /v1/validate and /v1/render.
type validateRequest struct {
	Relations []manifest.Relation `json:"relations"`
}

// validateResponse reports the outcome of validation.
type validateResponse struct {
	Valid  bool     `json:"valid"`
	Keys   int      `json:"keys,omitempty"`
	Edges  int      `json:"edges,omitempty"`
	Roots  []string `json:"roots,omitempty"`
	Leaves []string `json:"leaves,omitempty"`
	Cycle  []string `json:"cycle,omitempty"`
	Error  string   `json:"error,omitempty"`
}

// errorResponse is the generic error body.
type errorResponse struct {
	Error string      `json:"error"`
	Code  errors.Code `json:"code,omitempty"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// handleValidate builds a tree from the posted relations. A cycle yields
// HTTP 422 with the cycle path; malformed input yields 400.
func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	tree, ok := s.buildTree(w, r)
	if !ok {
		return
	}

	writeJSON(w, http.StatusOK, validateResponse{
		Valid:  true,
		Keys:   tree.Len(),
		Edges:  tree.EdgeCount(),
		Roots:  tree.Roots(),
		Leaves: tree.Leaves(),
	})
}

// handleRender validates the posted relations and returns the rendered
// tree. The format query parameter selects text (default) or dot.
func (s *Server) handleRender(w http.ResponseWriter, r *http.Request) {
	format := r.URL.Query().Get("format")
	if format == "" {
		format = "text"
	}
	if format != "text" && format != "dot" {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "unknown format " + format + " (want text or dot)",
			Code:  errors.ErrCodeInvalidFormat,
		})
		return
	}

	tree, ok := s.buildTree(w, r)
	if !ok {
		return
	}

	switch format {
	case "text":
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_ = render.Text(w, tree)
	case "dot":
		w.Header().Set("Content-Type", "text/vnd.graphviz")
		_, _ = w.Write([]byte(render.ToDOT(tree, render.Options{Name: r.URL.Query().Get("name")})))
	}
}

// buildTree decodes the request body and validates the relations, writing
// the error response itself when validation fails.
func (s *Server) buildTree(w http.ResponseWriter, r *http.Request) (*deptree.Tree[string], bool) {
	var req validateRequest
	body := http.MaxBytesReader(w, r.Body, maxBodySize)
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: "invalid JSON body: " + err.Error(),
			Code:  errors.ErrCodeInvalidInput,
		})
		return nil, false
	}

	b, err := manifest.FromRelations(req.Relations)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{
			Error: errors.UserMessage(err),
			Code:  errors.GetCode(err),
		})
		return nil, false
	}

	tree, err := b.Build()
	if err != nil {
		var cerr *deptree.CycleError[string]
		if stderrors.As(err, &cerr) {
			writeJSON(w, http.StatusUnprocessableEntity, validateResponse{
				Valid: false,
				Cycle: cerr.Path,
				Error: cerr.Error(),
			})
			return nil, false
		}
		s.logger.Error("build failed", "err", err, "request_id", reqID(r.Context()))
		writeJSON(w, http.StatusInternalServerError, errorResponse{
			Error: "internal error",
			Code:  errors.ErrCodeInternal,
		})
		return nil, false
	}
	return tree, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
