// Package docserver provides a self-hostable backend implementing the
// document-store protocol the pictree client expects.
//
// The server keeps each document as one JSON blob in a diskv keyspace.
// It implements exactly the three verbs of the protocol and nothing more:
// documents are replaced wholesale and the last write wins, mirroring the
// hosted stores the client was built against. It is suitable for personal
// use and for tests; it is not a concurrency-controlled database.
//
//	srv := docserver.New(dataDir, "library")
//	http.ListenAndServe(":8750", srv.Handler())
package docserver

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"os"

	"github.com/peterbourgon/diskv/v3"

	"github.com/pictree/pictree/internal/logging"
)

// document mirrors the client's wire shape. Data stays raw: the server
// stores forests without interpreting them.
type document struct {
	ID   string          `json:"id"`
	Data json.RawMessage `json:"data"`
}

// Server serves one resource collection of documents from disk.
type Server struct {
	d        *diskv.Diskv
	dataDir  string
	resource string
	log      *slog.Logger
}

// New creates a Server storing documents under dataDir, served at
// /{resource}.
func New(dataDir, resource string) *Server {
	return &Server{
		d: diskv.New(diskv.Options{
			BasePath:     dataDir,
			CacheSizeMax: 1024 * 1024, // 1MB
		}),
		dataDir:  dataDir,
		resource: resource,
		log:      logging.New("docserver"),
	}
}

// Handler returns the HTTP handler implementing the protocol.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /"+s.resource, s.handleGet)
	mux.HandleFunc("PUT /"+s.resource+"/{id}", s.handlePut)
	mux.HandleFunc("POST /"+s.resource, s.handlePost)
	return mux
}

// handleGet returns the stored document, or 404 when the resource holds
// none. The resource is a single-document collection; when several keys
// exist (which only a foreign writer could cause) the first is served.
func (s *Server) handleGet(w http.ResponseWriter, r *http.Request) {
	for key := range s.d.Keys(r.Context().Done()) {
		data, err := s.d.Read(key)
		if err != nil {
			s.log.Warn("read document", "key", key, "error", err)
			continue
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write(data)
		return
	}
	http.NotFound(w, r)
}

// handlePut replaces an existing document's data. Unknown ids get 404 so
// the client falls back to creation.
func (s *Server) handlePut(w http.ResponseWriter, r *http.Request) {
	docID := r.PathValue("id")
	if !s.d.Has(docID) {
		http.NotFound(w, r)
		return
	}

	doc, err := readDocument(r.Body, docID)
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	if err := s.write(doc); err != nil {
		http.Error(w, "writing document", http.StatusInternalServerError)
		return
	}
	s.log.Info("document updated", "id", docID, "bytes", len(doc.Data))
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(doc)
}

// handlePost creates a document with the id named in the body. Creating an
// id that already exists overwrites it; the protocol carries no versioning
// to detect such races and none is added here.
func (s *Server) handlePost(w http.ResponseWriter, r *http.Request) {
	doc, err := readDocument(r.Body, "")
	if err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}
	if doc.ID == "" {
		http.Error(w, "document id required", http.StatusBadRequest)
		return
	}

	if err := s.write(doc); err != nil {
		http.Error(w, "writing document", http.StatusInternalServerError)
		return
	}
	s.log.Info("document created", "id", doc.ID, "bytes", len(doc.Data))
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)
	json.NewEncoder(w).Encode(doc)
}

func (s *Server) write(doc document) error {
	data, err := json.Marshal(doc)
	if err != nil {
		return err
	}
	return s.d.Write(doc.ID, data)
}

func readDocument(body io.Reader, docID string) (document, error) {
	raw, err := io.ReadAll(body)
	if err != nil {
		return document{}, errors.New("reading request body")
	}
	var doc document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return document{}, errors.New("malformed document")
	}
	if docID != "" {
		doc.ID = docID
	}
	if doc.Data == nil {
		doc.Data = json.RawMessage("[]")
	}
	return doc, nil
}

// ListenAndServe runs the server on addr until the listener fails.
func (s *Server) ListenAndServe(addr string) error {
	if err := os.MkdirAll(s.dataDir, 0755); err != nil {
		return err
	}
	s.log.Info("serving documents", "addr", addr, "resource", s.resource, "data", s.dataDir)
	return http.ListenAndServe(addr, s.Handler())
}
