package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"os"

	"storefront-crawler/internal/ioformats"
	"storefront-crawler/internal/resolver"
	"storefront-crawler/internal/runner"
	"storefront-crawler/pkg/logger"
)

type storeResolver interface {
	runner.StoreResolver
	Slots() int
}

type storeReq struct {
	Domain string `json:"domain"`
}

type batchReq struct {
	Domains []string `json:"domains"`
}

func newMux(stores storeResolver, l *logger.Logger, workers int) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// POST /store  { "domain": "shop.example.com" }
	mux.HandleFunc("/store", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req storeReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Domain == "" {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		store, err := stores.Resolve(r.Context(), req.Domain)
		if err != nil {
			code := http.StatusBadGateway
			if errors.Is(err, resolver.ErrInvalidDomain) {
				code = http.StatusBadRequest
			}
			writeJSON(w, code, map[string]string{"error": err.Error()})
			return
		}
		writeJSON(w, http.StatusOK, store)
	})

	// POST /stores/batch  { "domains": ["a.example.com", "..."] } -> NDJSON
	mux.HandleFunc("/stores/batch", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		var req batchReq
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil || len(req.Domains) == 0 {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid payload"})
			return
		}
		records := runner.New(stores, l, io.Discard, workers).Run(r.Context(), req.Domains)
		items := make([]any, len(records))
		for i := range records {
			items[i] = records[i]
		}
		w.Header().Set("Content-Type", "application/x-ndjson")
		if err := ioformats.WriteNDJSON(w, items); err != nil {
			l.Errorf("write batch: %v", err)
		}
	})

	// POST /stores/upload (multipart file=...) -> CSV table
	mux.HandleFunc("/stores/upload", func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			writeJSON(w, http.StatusMethodNotAllowed, map[string]string{"error": "method not allowed"})
			return
		}
		if err := r.ParseMultipartForm(32 << 20); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "multipart parse error"})
			return
		}
		f, _, err := r.FormFile("file")
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "file part 'file' required"})
			return
		}
		defer f.Close()

		// copy to temp file to reuse the domain list reader
		tmp, err := os.CreateTemp("", "upload-*.csv")
		if err != nil {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "temp file error"})
			return
		}
		if _, err := io.Copy(tmp, f); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "copy error"})
			return
		}
		tmp.Close()
		defer os.Remove(tmp.Name())

		domains, err := ioformats.ReadDomains(tmp.Name())
		if err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		records := runner.New(stores, l, io.Discard, workers).Run(r.Context(), domains)
		if len(records) == 0 {
			writeJSON(w, http.StatusUnprocessableEntity, map[string]string{"error": ioformats.ErrNoRecords.Error()})
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		if err := ioformats.WriteStores(w, records, stores.Slots()); err != nil {
			l.Errorf("write upload: %v", err)
		}
	})

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}
