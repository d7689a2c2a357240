package transport

import (
	"fmt"
	"io"
	"log"
	"net/http"

	"httpmsg/internal/http/message"
)

// Writer serialises responses onto w. It implements message.Sender.
type Writer struct {
	w   io.Writer
	cgi bool
}

// NewWriter writes a full HTTP/1.x status line.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// NewCGIWriter writes a CGI "Status:" line instead, for responders whose
// output is framed by the web server.
func NewCGIWriter(w io.Writer) *Writer {
	return &Writer{w: w, cgi: true}
}

func (wr *Writer) statusLine(s message.Snapshot) string {
	if wr.cgi {
		return fmt.Sprintf("Status: %d %s", s.StatusCode, http.StatusText(s.StatusCode))
	}
	return fmt.Sprintf("HTTP/%s %d %s", s.ProtocolVersion, s.StatusCode, http.StatusText(s.StatusCode))
}

func (wr *Writer) Send(s message.Snapshot) error {
	if _, err := wr.w.Write(s.Headers.Finalize(wr.statusLine(s))); err != nil {
		return fmt.Errorf("failed to write headers: %w", err)
	}

	if s.Body == nil {
		return nil
	}
	if closer, ok := s.Body.(io.Closer); ok {
		defer func() {
			if err := closer.Close(); err != nil {
				log.Printf("Error closing response body: %v", err)
			}
		}()
	}

	if _, err := io.Copy(wr.w, s.Body); err != nil {
		return fmt.Errorf("failed to write body: %w", err)
	}
	return nil
}
