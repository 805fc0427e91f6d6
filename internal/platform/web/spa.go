package web

import (
	"bytes"
	"io"
	"io/fs"
	"mime"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
)

// RegisterSPA は管理画面のビルド成果物を配信する。
// 実ファイルがあればそれを返し、なければ index.html にフォールバックする（API は対象外）
func RegisterSPA(r *gin.Engine, fsys fs.FS, apiPrefix string) {
	r.NoRoute(func(c *gin.Context) {
		if strings.HasPrefix(c.Request.URL.Path, apiPrefix) {
			c.Status(http.StatusNotFound)
			return
		}

		reqPath := strings.TrimPrefix(path.Clean(c.Request.URL.Path), "/")
		if reqPath == "" {
			reqPath = "index.html"
		}

		if serveFile(c, fsys, reqPath) {
			return
		}
		if serveFile(c, fsys, "index.html") {
			return
		}
		c.Status(http.StatusNotFound)
	})
}

func serveFile(c *gin.Context, fsys fs.FS, name string) bool {
	f, err := fsys.Open(name)
	if err != nil {
		return false
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil || info.IsDir() {
		return false
	}

	if ct := mime.TypeByExtension(path.Ext(name)); ct != "" {
		c.Header("Content-Type", ct)
	}
	// index.html 以外はキャッシュ（SPAの基本運用）
	if !strings.HasSuffix(name, "index.html") {
		c.Header("Cache-Control", "public, max-age=86400, immutable")
	} else {
		c.Header("Cache-Control", "no-cache")
	}

	if rs, ok := f.(io.ReadSeeker); ok {
		http.ServeContent(c.Writer, c.Request, name, info.ModTime(), rs)
		return true
	}
	b, err := io.ReadAll(f)
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return true
	}
	http.ServeContent(c.Writer, c.Request, name, modTimeOr(info.ModTime()), bytes.NewReader(b))
	return true
}

func modTimeOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Unix(0, 0)
	}
	return t
}
