package handler

import (
	"io"
	"io/fs"
	"net/http"
	"path"
	"strings"

	"github.com/julienschmidt/httprouter"

	httputil "leadform/pkg/http"
	"leadform/pkg/logger"
)

const (
	pageCacheControl  = "no-store"
	assetCacheControl = "public, max-age=31536000, immutable"
)

var pageRoutes = map[string]string{
	"/":              "home.html",
	"/register":      "index.html",
	"/register.html": "index.html",
	"/index.html":    "index.html",
	"/success":       "success.html",
	"/success.html":  "success.html",
}

// PageHandler serves the form pages and their assets from fsys.
type PageHandler struct {
	fsys fs.FS
	log  *logger.Logger
}

func NewPageHandler(fsys fs.FS, log *logger.Logger) *PageHandler {
	return &PageHandler{fsys: fsys, log: log}
}

func (h *PageHandler) page(name string) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
		h.serve(w, r, name, pageCacheControl)
	}
}

// Asset serves any other file under fsys. HTML is never cached; directories
// are never listed.
func (h *PageHandler) Asset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet && r.Method != http.MethodHead {
		h.notFound(w)
		return
	}

	name := strings.TrimPrefix(path.Clean("/"+r.URL.Path), "/")
	if name == "" {
		h.notFound(w)
		return
	}
	cacheControl := assetCacheControl
	if path.Ext(name) == ".html" {
		cacheControl = pageCacheControl
	}
	h.serve(w, r, name, cacheControl)
}

func (h *PageHandler) serve(w http.ResponseWriter, r *http.Request, name, cacheControl string) {
	f, err := h.fsys.Open(name)
	if err != nil {
		h.notFound(w)
		return
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		h.notFound(w)
		return
	}

	content, ok := f.(io.ReadSeeker)
	if !ok {
		h.log.Error("static file is not seekable", "file", name)
		h.notFound(w)
		return
	}

	w.Header().Set("Cache-Control", cacheControl)
	http.ServeContent(w, r, info.Name(), info.ModTime(), content)
}

func (h *PageHandler) notFound(w http.ResponseWriter) {
	if err := httputil.WriteText(w, http.StatusNotFound, "Not found"); err != nil {
		h.log.Error("failed to write response", "handler", "Asset", "operation", "WriteText", "error", err)
	}
}
