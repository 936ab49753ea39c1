// Package main provides an HTTP API server for the radixtree library.
package main

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"os"
	"strings"
	"sync"

	"github.com/7thcode/radixtree/radixtree"
)

// Server holds the tree instance and provides HTTP handlers.
type Server struct {
	tree *radixtree.Tree
	mu   sync.RWMutex
}

// Response is a generic JSON response.
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// KeyRequest is the request body for INSERT and ERASE operations.
type KeyRequest struct {
	Key string `json:"key"`
}

// KeyResult reports the outcome of an INSERT or ERASE.
type KeyResult struct {
	Key     string `json:"key"`
	Changed bool   `json:"changed"`
}

// ContainsResult reports the outcome of a CONTAINS lookup.
type ContainsResult struct {
	Key      string `json:"key"`
	Contains bool   `json:"contains"`
}

// KeysResult lists every distinct present key, from an Apply walk.
type KeysResult struct {
	Keys  []string `json:"keys"`
	Count int      `json:"count"`
}

var server = &Server{tree: radixtree.New()}

func main() {
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	corsHandler := func(h http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Access-Control-Allow-Origin", "*")
			w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
			w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

			if r.Method == "OPTIONS" {
				w.WriteHeader(http.StatusOK)
				return
			}

			h(w, r)
		}
	}

	http.HandleFunc("/api/insert", corsHandler(server.handleInsert))
	http.HandleFunc("/api/erase", corsHandler(server.handleErase))
	http.HandleFunc("/api/contains", corsHandler(server.handleContains))
	http.HandleFunc("/api/size", corsHandler(server.handleSize))
	http.HandleFunc("/api/keys", corsHandler(server.handleKeys))
	http.HandleFunc("/api/print", corsHandler(server.handlePrint))

	log.Printf("radixtree API server starting on port %s...\n", port)
	log.Fatal(http.ListenAndServe(":"+port, nil))
}

func writeJSON(w http.ResponseWriter, status int, resp Response) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(resp)
}

func decodeKey(r *http.Request) (string, error) {
	var req KeyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		return "", fmt.Errorf("invalid request body: %w", err)
	}
	if req.Key == "" {
		return "", fmt.Errorf("key is required")
	}
	return req.Key, nil
}

func (s *Server) handleInsert(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: "method not allowed"})
		return
	}

	key, err := decodeKey(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wasAbsent := s.tree.Insert([]byte(key))

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    KeyResult{Key: key, Changed: wasAbsent},
	})
}

func (s *Server) handleErase(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodDelete && r.Method != http.MethodPost {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: "method not allowed"})
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		var err error
		key, err = decodeKey(r)
		if err != nil {
			writeJSON(w, http.StatusBadRequest, Response{Error: err.Error()})
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	wasPresent := s.tree.Erase([]byte(key))

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    KeyResult{Key: key, Changed: wasPresent},
	})
}

func (s *Server) handleContains(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: "method not allowed"})
		return
	}

	key := r.URL.Query().Get("key")
	if key == "" {
		writeJSON(w, http.StatusBadRequest, Response{Error: "key is required"})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    ContainsResult{Key: key, Contains: s.tree.Contains([]byte(key))},
	})
}

func (s *Server) handleSize(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: "method not allowed"})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]int{"size": s.tree.Size()},
	})
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: "method not allowed"})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var keys []string
	s.tree.Apply(func(key []byte) bool {
		keys = append(keys, string(key))
		return true
	})

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    KeysResult{Keys: keys, Count: len(keys)},
	})
}

func (s *Server) handlePrint(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeJSON(w, http.StatusMethodNotAllowed, Response{Error: "method not allowed"})
		return
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var buf strings.Builder
	s.tree.Print(&buf)

	writeJSON(w, http.StatusOK, Response{
		Success: true,
		Data:    map[string]string{"dump": buf.String()},
	})
}
