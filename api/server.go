package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/cors"

	"github.com/talhanaseem08/ParserGen/driver"
	"github.com/talhanaseem08/ParserGen/grammar"
	"github.com/talhanaseem08/ParserGen/spec"
)

type generateRequest struct {
	Grammar    string `json:"grammar"`
	ParserType string `json:"parser_type"`
}

type parseRequest struct {
	Grammar    string `json:"grammar"`
	Input      string `json:"input"`
	ParserType string `json:"parser_type"`
}

type errorResponse struct {
	Error string `json:"error"`
}

type conflictsResponse struct {
	Error     string        `json:"error"`
	Conflicts conflictLists `json:"conflicts"`
}

type conflictLists struct {
	ShiftReduce  []*spec.ShiftReduceConflict  `json:"shift_reduce"`
	ReduceReduce []*spec.ReduceReduceConflict `json:"reduce_reduce"`
}

// NewHandler builds the API handler with request logging and permissive
// CORS, so browser-based grammar editors can call it from anywhere.
func NewHandler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/generate", handleGenerate)
	mux.HandleFunc("/api/parse", handleParse)
	mux.HandleFunc("/api/health", handleHealth)
	return cors.AllowAll().Handler(logRequests(mux))
}

// ListenAndServe serves the API on addr until the listener fails.
func ListenAndServe(addr string) error {
	tracer().Infof("listening on %v", addr)
	srv := &http.Server{
		Addr:    addr,
		Handler: NewHandler(),
	}
	return srv.ListenAndServe()
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(sw, r)
		tracer().Infof("%v %v -> %v", r.Method, r.URL.Path, sw.status)
	})
}

func handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func handleGenerate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	tab, errResp := buildTable(req.Grammar, req.ParserType)
	if errResp != nil {
		writeJSON(w, http.StatusBadRequest, errResp)
		return
	}
	writeJSON(w, http.StatusOK, tab.Report())
}

func handleParse(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, errorResponse{Error: "method not allowed"})
		return
	}
	var req parseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if req.Grammar == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Grammar input is required"})
		return
	}
	if req.Input == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Input string is required"})
		return
	}

	tab, errResp := buildTable(req.Grammar, req.ParserType)
	if errResp != nil {
		writeJSON(w, http.StatusBadRequest, errResp)
		return
	}
	if !tab.Valid() {
		writeJSON(w, http.StatusBadRequest, &conflictsResponse{
			Error: fmt.Sprintf("Grammar is not %v. Cannot parse with conflicts.", tab.Mode().DisplayName()),
			Conflicts: conflictLists{
				ShiftReduce:  tab.ShiftReduceConflicts(),
				ReduceReduce: tab.ReduceReduceConflicts(),
			},
		})
		return
	}

	p, err := driver.NewParser(tab)
	if err != nil {
		tracer().Errorf("parser setup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal error"})
		return
	}
	// tokenizer and parse failures are part of the result, not HTTP
	// errors
	writeJSON(w, http.StatusOK, p.Parse(req.Input))
}

// buildTable runs the shared pipeline: read the grammar text, build the
// grammar, generate tables in the requested mode. Any parser type other
// than slr1 means lr0.
func buildTable(grammarText, parserType string) (*grammar.ParsingTable, *errorResponse) {
	if grammarText == "" {
		return nil, &errorResponse{Error: "Grammar input is required"}
	}
	root, err := spec.Parse(strings.NewReader(grammarText))
	if err != nil {
		return nil, &errorResponse{Error: err.Error()}
	}
	if len(root.Productions) == 0 {
		return nil, &errorResponse{Error: "Invalid grammar format"}
	}
	g, err := grammar.NewGrammar(root)
	if err != nil {
		return nil, &errorResponse{Error: err.Error()}
	}

	mode := grammar.ModeLR0
	if parserType == "slr1" {
		mode = grammar.ModeSLR1
	}
	tab, err := grammar.GenerateTable(g, mode)
	if err != nil {
		return nil, &errorResponse{Error: err.Error()}
	}
	return tab, nil
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		tracer().Errorf("response encoding failed: %v", err)
	}
}
