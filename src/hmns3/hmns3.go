// Package hmns3 is a tiny S3-compatible server that keeps buckets as
// directories. It understands just enough of the protocol for mashinka deploy
// to be tried locally.
package hmns3

import (
	"encoding/xml"
	"fmt"
	"io"
	"io/fs"
	"net/http"
	"os"
	"path"
	"path/filepath"
	"strings"

	"git.handmade.network/hmn/mashinka/src/deploy"
	"git.handmade.network/hmn/mashinka/src/logging"
	"git.handmade.network/hmn/mashinka/src/mashinka"
	"github.com/spf13/cobra"
)

func init() {
	var addr string

	s3Command := &cobra.Command{
		Use:   "s3 [storage folder]",
		Short: "Run a local s3 server that stores in the filesystem",
		RunE: func(cmd *cobra.Command, args []string) error {
			targetFolder := "./tmp"
			if len(args) > 0 {
				targetFolder = args[0]
			}
			if err := os.MkdirAll(targetFolder, fs.ModePerm); err != nil {
				return err
			}

			logging.Info().Str("addr", addr).Str("folder", targetFolder).Msg("serving local s3")
			return http.ListenAndServe(addr, NewServer(targetFolder))
		},
	}
	s3Command.Flags().StringVar(&addr, "addr", ":9000", "Address to listen on")

	mashinka.MashinkaCommand.AddCommand(s3Command)
}

type server struct {
	root string
}

// NewServer serves buckets as directories under root.
func NewServer(root string) http.Handler {
	return &server{root: root}
}

func (s *server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	bucket, key := bucketKey(r)
	logging.Debug().
		Str("method", r.Method).
		Str("bucket", bucket).
		Str("key", key).
		Str("query", r.URL.RawQuery).
		Msg("s3 request")

	if bucket == "" {
		writeError(w, http.StatusBadRequest, "InvalidBucketName", "no bucket in path")
		return
	}
	bucketDir := filepath.Join(s.root, bucket)

	switch {
	case r.Method == http.MethodPut && key == "":
		if err := os.MkdirAll(bucketDir, fs.ModePerm); err != nil {
			writeError(w, http.StatusInternalServerError, "InternalError", err.Error())
			return
		}
		w.Header().Set("Location", fmt.Sprintf("/%s", bucket))
	case r.Method == http.MethodPut:
		if _, err := os.Stat(bucketDir); err != nil {
			writeError(w, http.StatusNotFound, "NoSuchBucket", "The specified bucket does not exist")
			return
		}
		if r.URL.Query().Get(deploy.ExtractArchiveParam) == "tar.gz" {
			if _, err := deploy.Extract(r.Body, bucketDir); err != nil {
				writeError(w, http.StatusBadRequest, "InvalidArchive", err.Error())
				return
			}
			return
		}
		if err := writeObject(filepath.Join(bucketDir, key), r.Body); err != nil {
			writeError(w, http.StatusInternalServerError, "InternalError", err.Error())
			return
		}
	case r.Method == http.MethodGet && key != "":
		fileBytes, err := os.ReadFile(filepath.Join(bucketDir, key))
		if err != nil {
			writeError(w, http.StatusNotFound, "NoSuchKey", "The specified key does not exist")
			return
		}
		w.Write(fileBytes)
	default:
		writeError(w, http.StatusNotImplemented, "NotImplemented", r.Method+" is not supported")
	}
}

func writeObject(p string, body io.Reader) error {
	if err := os.MkdirAll(filepath.Dir(p), fs.ModePerm); err != nil {
		return err
	}
	f, err := os.Create(p)
	if err != nil {
		return err
	}
	if _, err := io.Copy(f, body); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

type errorResponse struct {
	XMLName xml.Name `xml:"Error"`
	Code    string   `xml:"Code"`
	Message string   `xml:"Message"`
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/xml")
	w.WriteHeader(status)
	io.WriteString(w, xml.Header)
	xml.NewEncoder(w).Encode(errorResponse{Code: code, Message: message})
}

// bucketKey splits a path-style request path. The key is cleaned so objects
// always stay inside the bucket directory.
func bucketKey(r *http.Request) (string, string) {
	p := strings.TrimPrefix(r.URL.Path, "/")
	slashIdx := strings.IndexByte(p, '/')
	if slashIdx == -1 {
		return p, ""
	}
	key := strings.TrimPrefix(path.Clean("/"+p[slashIdx+1:]), "/")
	return p[:slashIdx], key
}
