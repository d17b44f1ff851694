package handlers

import (
	"io/fs"
	"net/http"
	"os"
	"path"
	"strings"

	"github.com/labstack/echo/v4"
)

// Static serves the front-end bundle in dir. Regular files are served
// directly; directories and unknown paths get index.html for client-side
// routing.
func Static(dir string) echo.HandlerFunc {
	root := os.DirFS(dir)
	fileServer := http.FileServer(http.FS(root))

	return func(c echo.Context) error {
		if isFile(root, c.Request().URL.Path) {
			fileServer.ServeHTTP(c.Response(), c.Request())
			return nil
		}

		indexFile, err := root.Open("index.html")
		if err != nil {
			return c.NoContent(http.StatusNotFound)
		}
		defer indexFile.Close()

		return c.Stream(http.StatusOK, "text/html", indexFile)
	}
}

func isFile(root fs.FS, urlPath string) bool {
	name := strings.TrimPrefix(path.Clean("/"+urlPath), "/")
	if name == "" || name == "index.html" {
		return false
	}
	info, err := fs.Stat(root, name)
	return err == nil && info.Mode().IsRegular()
}
