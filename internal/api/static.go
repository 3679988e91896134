package api

import (
	"errors"
	"io/fs"
	"net/http"
	"os"
	"path/filepath"

	"github.com/dgallion1/docsite/internal/site"
)

// handleStatic serves the built site from out_dir. With live reload on,
// the page gets the reload snippet injected.
func (s *Server) handleStatic(w http.ResponseWriter, r *http.Request) {
	p := r.URL.Path
	if s.events != nil && (p == "/" || p == "/"+site.IndexFile) {
		s.servePage(w, r)
		return
	}
	http.FileServer(http.Dir(s.cfg.OutDir)).ServeHTTP(w, r)
}

func (s *Server) servePage(w http.ResponseWriter, r *http.Request) {
	page, err := os.ReadFile(filepath.Join(s.cfg.OutDir, site.IndexFile))
	if errors.Is(err, fs.ErrNotExist) {
		http.NotFound(w, r)
		return
	}
	if err != nil {
		s.log.Error("read page", "error", err)
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	if r.Method != http.MethodHead {
		w.Write(site.InjectLiveReload(page))
	}
}
